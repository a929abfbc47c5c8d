package sinks

import (
	"time"

	"github.com/samovar-labs/habr-harvester/internal/domain"
)

// Event is the payload delivered downstream for every persisted record.
type Event struct {
	Record    domain.Record `json:"record"`
	EmittedAt time.Time     `json:"emitted_at"`
}

// NewEvent wraps a record for delivery.
func NewEvent(rec domain.Record) Event {
	return Event{
		Record:    rec,
		EmittedAt: time.Now().UTC(),
	}
}
