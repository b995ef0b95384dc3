package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewMessage(t *testing.T) {
	msg := NewMessage(Event{Type: TypeLogin, KeyID: 42, SessionID: "s1"})

	if msg.Key != "42" {
		t.Errorf("Key = %q, want 42", msg.Key)
	}
	e, ok := msg.Value.(Event)
	if !ok {
		t.Fatalf("Value type = %T", msg.Value)
	}
	if e.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	raw, err := json.Marshal(msg.Value)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["type"] != "login" || decoded["session_id"] != "s1" {
		t.Errorf("payload = %s", raw)
	}
}

func TestProducerReusesWriters(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "test", zap.NewNop())
	defer p.Close()

	a := p.getWriter("logins")
	b := p.getWriter("logins")
	c := p.getWriter("watchlists")

	if a != b {
		t.Error("expected the same writer for one topic")
	}
	if a == c {
		t.Error("expected distinct writers per topic")
	}
}

func TestProducerPublishUnreachableBroker(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "test", zap.NewNop())
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := p.Publish(ctx, "logins", NewMessage(Event{Type: TypeLogin, KeyID: 1})); err == nil {
		t.Error("expected error publishing to an unreachable broker")
	}
}

func TestNoopPublisher(t *testing.T) {
	var pub Publisher = NoopPublisher{}
	if err := pub.Publish(context.Background(), "any", Message{}); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
}
