package kafka

import (
	"testing"
	"time"
)

type testEvent struct {
	BookingID string `json:"bookingId"`
	Email     string `json:"email"`
}

func TestMessageBuilderRoundTrip(t *testing.T) {
	payload := testEvent{BookingID: "64f000000000000000000001", Email: "alice@example.com"}

	msg := NewMessage().
		WithKey("alice@example.com").
		WithEventType("booking.created").
		WithCorrelationID("req-123").
		WithSource("rentwheels-api").
		WithHeader("tenant", "eu").
		WithValue(payload).
		Build()

	if msg.Key != "alice@example.com" {
		t.Errorf("key = %q, want partition key by email", msg.Key)
	}
	if msg.GetEventType() != "booking.created" {
		t.Errorf("event type = %q, want booking.created", msg.GetEventType())
	}
	if correlation, ok := msg.GetHeader(HeaderCorrelationID); !ok || correlation != "req-123" {
		t.Errorf("correlation id = %q (present=%v), want req-123", correlation, ok)
	}
	if tenant, ok := msg.GetHeader("tenant"); !ok || tenant != "eu" {
		t.Errorf("custom header = %q (present=%v), want eu", tenant, ok)
	}

	var decoded testEvent
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("DecodeValue failed: %v", err)
	}
	if decoded != payload {
		t.Errorf("decoded = %+v, want %+v", decoded, payload)
	}
}

func TestMessageBuilderAssignsEventMetadata(t *testing.T) {
	msg := NewMessage().
		WithKey("k").
		WithValue(testEvent{BookingID: "b"}).
		Build()

	if msg.GetEventID() == "" {
		t.Error("expected an auto-assigned event id")
	}
	stamp, ok := msg.GetHeader(HeaderTimestamp)
	if !ok {
		t.Fatal("expected an auto-assigned timestamp header")
	}
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Errorf("timestamp header %q is not RFC3339: %v", stamp, err)
	}
}
