package sinks

import "context"

// Sink delivers harvested record events to a downstream system
// (HTTP endpoint, SQS, SNS, Pub/Sub, log).
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, evt Event) error
}
