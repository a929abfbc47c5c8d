package sinks

import "context"

// logSink writes every record event to the structured log. Useful as a
// development sink and as a smoke test for the fanout wiring.
type logSink struct {
	id  string
	log Logger
}

func newLogSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	return &logSink{id: cfg.ID, log: ensureLogger(log)}, nil
}

func (l *logSink) ID() string   { return l.id }
func (l *logSink) Type() string { return TypeLog }

func (l *logSink) Send(_ context.Context, evt Event) error {
	l.log.InfoObj("record harvested", "record_event", map[string]any{
		"kind":       evt.Record.Kind,
		"source_url": evt.Record.SourceURL,
		"chars":      len(evt.Record.Text),
	})
	return nil
}
