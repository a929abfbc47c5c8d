package sinks

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/samovar-labs/habr-harvester/internal/domain"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSSinkSendSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &snsSink{
		id:       "records-topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::records",
		client:   client,
		log:      noopLogger{},
	}

	evt := NewEvent(domain.NewRecord(domain.KindComment, "https://habr.com/a/1/comments/", "first!"))
	if err := sink.Send(context.Background(), evt); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if client.input == nil || *client.input.TopicArn != sink.topicARN {
		t.Fatalf("event not published to configured topic")
	}
	attr, ok := client.input.MessageAttributes["record_kind"]
	if !ok || *attr.StringValue != string(domain.KindComment) {
		t.Fatalf("record_kind attribute missing or wrong")
	}
}

func TestSNSSinkSendFailure(t *testing.T) {
	sink := &snsSink{
		id:       "records-topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::records",
		client:   &fakeSNSClient{err: errors.New("denied")},
		log:      noopLogger{},
	}

	if err := sink.Send(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error from failing client")
	}
}
