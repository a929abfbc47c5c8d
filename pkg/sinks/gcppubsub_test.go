package sinks

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"

	"github.com/samovar-labs/habr-harvester/internal/domain"
)

func TestPubSubSinkPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "records"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	sink, err := newPubSubSink(ctx, SinkConfig{
		ID:   "records-pubsub",
		Type: TypePubSub,
		PubSub: &PubSubSinkConfig{
			ProjectID: "test-project",
			Topic:     "records",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubSink: %v", err)
	}

	evt := NewEvent(domain.NewRecord(domain.KindArticle, "https://habr.com/a/1/", "body"))
	if err := sink.Send(ctx, evt); err != nil {
		t.Fatalf("Send: %v", err)
	}
}
