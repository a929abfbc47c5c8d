package app

import (
	"context"

	"github.com/samovar-labs/habr-harvester/internal/domain"
	"github.com/samovar-labs/habr-harvester/internal/logger"
	"github.com/samovar-labs/habr-harvester/internal/storage"
	"github.com/samovar-labs/habr-harvester/pkg/sinks"
)

// recordSink persists texts to the local store and fans each record out
// to the configured downstream sinks. Fanout failures are logged and
// never fail the append: the local store is the source of truth.
type recordSink struct {
	ctx    context.Context
	store  storage.Store
	fanout *sinks.Fanout
	log    logger.Logger
}

func newRecordSink(ctx context.Context, store storage.Store, fanout *sinks.Fanout, log logger.Logger) *recordSink {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &recordSink{ctx: ctx, store: store, fanout: fanout, log: log}
}

func (r *recordSink) AppendRecords(kind domain.RecordKind, sourceURL string, texts ...string) (int, error) {
	stored, err := r.store.AppendRecords(texts...)
	if err != nil {
		return stored, err
	}

	if r.fanout.Size() > 0 {
		for _, text := range texts {
			evt := sinks.NewEvent(domain.NewRecord(kind, sourceURL, text))
			if _, err := r.fanout.Send(r.ctx, evt); err != nil {
				r.log.WarnObj("downstream sink delivery failed", "fanout_error", map[string]any{
					"kind":       kind,
					"source_url": sourceURL,
					"error":      err.Error(),
				})
			}
		}
	}

	return stored, nil
}
