package crawler

import "github.com/samovar-labs/habr-harvester/internal/domain"

// RecordSink is the persistence boundary accepting extracted text
// records. It must tolerate concurrent callers; the returned count says
// how many of the given texts were actually persisted.
type RecordSink interface {
	AppendRecords(kind domain.RecordKind, sourceURL string, texts ...string) (int, error)
}
