package domain

import "time"

// Domain contains the core models shared across the harvester.

// RecordKind identifies what a harvested text record was extracted from.
type RecordKind string

const (
	KindArticle RecordKind = "article"
	KindComment RecordKind = "comment"
)

// Record is one unit of extracted text, ready for persistence. Records
// carry no identity beyond their text and are stored append-only.
type Record struct {
	Kind        RecordKind `json:"kind"`
	SourceURL   string     `json:"source_url"`
	Text        string     `json:"text"`
	CollectedAt time.Time  `json:"collected_at"`
}

// NewRecord builds a Record stamped with the collection time.
func NewRecord(kind RecordKind, sourceURL, text string) Record {
	return Record{
		Kind:        kind,
		SourceURL:   sourceURL,
		Text:        text,
		CollectedAt: time.Now().UTC(),
	}
}

// StageStats aggregates the outcome of one crawl stage.
type StageStats struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Records   int `json:"records"`
}

// Add folds the outcome of one fan-out task into the stats.
func (s *StageStats) Add(records int, err error) {
	s.Attempted++
	if err != nil {
		s.Failed++
		return
	}
	s.Succeeded++
	s.Records += records
}

// RunSummary is the externally observable result of one crawl run.
// A run with failures still completes; the counts are the only place
// partial failure shows up outside the logs.
type RunSummary struct {
	LastPage int        `json:"last_page"`
	Pages    StageStats `json:"pages"`
	Articles StageStats `json:"articles"`
	Comments StageStats `json:"comments"`
}

// TotalRecords returns the number of records persisted across all stages.
func (r RunSummary) TotalRecords() int {
	return r.Articles.Records + r.Comments.Records
}
