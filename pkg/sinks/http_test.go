package sinks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/samovar-labs/habr-harvester/internal/domain"
)

func TestHTTPSinkPostsEventJSON(t *testing.T) {
	var gotBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody.Store(body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), SinkConfig{
		ID:   "api",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{URL: srv.URL, Method: "POST", TimeoutSeconds: 5},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	evt := NewEvent(domain.NewRecord(domain.KindComment, "https://habr.com/a/1/comments/", "hello"))
	if err := sink.Send(context.Background(), evt); err != nil {
		t.Fatalf("Send: %v", err)
	}

	raw, _ := gotBody.Load().([]byte)
	var decoded Event
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal delivered body: %v", err)
	}
	if decoded.Record.Text != "hello" || decoded.Record.Kind != domain.KindComment {
		t.Fatalf("unexpected delivered event %+v", decoded)
	}
}

func TestHTTPSinkErrorStatusSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), SinkConfig{
		ID:   "api",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{URL: srv.URL, Method: "POST", TimeoutSeconds: 5},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	if err := sink.Send(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}
