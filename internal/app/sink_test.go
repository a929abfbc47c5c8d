package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/samovar-labs/habr-harvester/internal/domain"
	"github.com/samovar-labs/habr-harvester/pkg/sinks"
)

type memStore struct {
	texts   []string
	failAll bool
}

func (m *memStore) Close() error { return nil }

func (m *memStore) AppendRecords(texts ...string) (int, error) {
	if m.failAll {
		return 0, fmt.Errorf("append rejected")
	}
	m.texts = append(m.texts, texts...)
	return len(texts), nil
}

func (m *memStore) CountRecords() (int, error) { return len(m.texts), nil }

type captureSink struct {
	events []sinks.Event
	err    error
}

func (c *captureSink) ID() string   { return "capture" }
func (c *captureSink) Type() string { return "log" }

func (c *captureSink) Send(_ context.Context, evt sinks.Event) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, evt)
	return nil
}

func TestRecordSinkPersistsAndFansOut(t *testing.T) {
	store := &memStore{}
	capture := &captureSink{}
	sink := newRecordSink(context.Background(), store, sinks.NewFanout([]sinks.Sink{capture}), nil)

	stored, err := sink.AppendRecords(domain.KindComment, "https://habr.com/ru/articles/1/comments/", "first", "second")
	if err != nil {
		t.Fatalf("AppendRecords() error = %v", err)
	}
	if stored != 2 {
		t.Fatalf("stored = %d, want 2", stored)
	}
	if len(store.texts) != 2 {
		t.Fatalf("store got %d texts, want 2", len(store.texts))
	}
	if len(capture.events) != 2 {
		t.Fatalf("sink got %d events, want 2", len(capture.events))
	}
	evt := capture.events[0]
	if evt.Record.Kind != domain.KindComment {
		t.Fatalf("event kind = %q, want %q", evt.Record.Kind, domain.KindComment)
	}
	if evt.Record.SourceURL != "https://habr.com/ru/articles/1/comments/" {
		t.Fatalf("event source url = %q", evt.Record.SourceURL)
	}
	if evt.Record.Text != "first" {
		t.Fatalf("event text = %q, want %q", evt.Record.Text, "first")
	}
}

func TestRecordSinkStoreFailureSurfaces(t *testing.T) {
	capture := &captureSink{}
	sink := newRecordSink(context.Background(), &memStore{failAll: true}, sinks.NewFanout([]sinks.Sink{capture}), nil)

	if _, err := sink.AppendRecords(domain.KindArticle, "https://habr.com/ru/articles/1/", "body"); err == nil {
		t.Fatal("expected store failure to surface")
	}
	if len(capture.events) != 0 {
		t.Fatalf("sink got %d events, want 0 after store failure", len(capture.events))
	}
}

func TestRecordSinkToleratesSinkFailure(t *testing.T) {
	store := &memStore{}
	failing := &captureSink{err: fmt.Errorf("broker unavailable")}
	sink := newRecordSink(context.Background(), store, sinks.NewFanout([]sinks.Sink{failing}), nil)

	stored, err := sink.AppendRecords(domain.KindArticle, "https://habr.com/ru/articles/1/", "body")
	if err != nil {
		t.Fatalf("AppendRecords() error = %v, want sink failures swallowed", err)
	}
	if stored != 1 {
		t.Fatalf("stored = %d, want 1", stored)
	}
}

func TestRecordSinkWithoutFanout(t *testing.T) {
	store := &memStore{}
	sink := newRecordSink(context.Background(), store, sinks.NewFanout(nil), nil)

	stored, err := sink.AppendRecords(domain.KindArticle, "https://habr.com/ru/articles/1/", "body")
	if err != nil {
		t.Fatalf("AppendRecords() error = %v", err)
	}
	if stored != 1 {
		t.Fatalf("stored = %d, want 1", stored)
	}
}
