package sinks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/samovar-labs/habr-harvester/internal/domain"
)

// fakeSink records events and can inject errors.
type fakeSink struct {
	mu     sync.Mutex
	id     string
	events []Event
	err    error
}

func (f *fakeSink) ID() string   { return f.id }
func (f *fakeSink) Type() string { return "fake" }
func (f *fakeSink) Send(_ context.Context, evt Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return f.err
}

func TestFanoutSendCountsSuccesses(t *testing.T) {
	good := &fakeSink{id: "good"}
	bad := &fakeSink{id: "bad", err: errors.New("down")}
	fanout := NewFanout([]Sink{good, bad, nil})

	if fanout.Size() != 2 {
		t.Fatalf("nil sinks must be dropped, size=%d", fanout.Size())
	}

	evt := NewEvent(domain.NewRecord(domain.KindArticle, "https://habr.com/a/1/", "text"))
	delivered, err := fanout.Send(context.Background(), evt)
	if delivered != 1 {
		t.Fatalf("expected 1 delivery, got %d", delivered)
	}
	if err == nil {
		t.Fatalf("expected aggregated error from failing sink")
	}
	if len(good.events) != 1 || len(bad.events) != 1 {
		t.Fatalf("every sink must see the event")
	}
}

func TestFanoutSendEmptyIsNoop(t *testing.T) {
	var fanout *Fanout
	delivered, err := fanout.Send(context.Background(), Event{})
	if delivered != 0 || err != nil {
		t.Fatalf("nil fanout must be a no-op, got %d %v", delivered, err)
	}
}
