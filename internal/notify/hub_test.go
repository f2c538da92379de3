package notify

import (
	"errors"
	"testing"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	first, err := hub.Subscribe()
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	second, err := hub.Subscribe()
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	hub.Broadcast(domain.Order{OrderID: "axn_1"})

	for _, sub := range []*Subscriber{first, second} {
		select {
		case order := <-sub.Updates():
			if order.OrderID != "axn_1" {
				t.Fatalf("expected axn_1, got %s", order.OrderID)
			}
		default:
			t.Fatalf("expected a buffered update")
		}
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	sub, err := hub.Subscribe()
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	hub.Unsubscribe(sub)

	if _, open := <-sub.Updates(); open {
		t.Fatalf("expected channel closed after unsubscribe")
	}
	if got := hub.SubscriberCount(); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}

	// A second unsubscribe must be a no-op, not a double close.
	hub.Unsubscribe(sub)
}

func TestHub_SubscriberLimit(t *testing.T) {
	t.Parallel()

	hub := NewHub(WithMaxSubscribers(2))
	if _, err := hub.Subscribe(); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sub, err := hub.Subscribe()
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if _, err := hub.Subscribe(); !errors.Is(err, ErrTooManySubscribers) {
		t.Fatalf("expected ErrTooManySubscribers, got %v", err)
	}

	// Freeing a slot makes room again.
	hub.Unsubscribe(sub)
	if _, err := hub.Subscribe(); err != nil {
		t.Fatalf("subscribe after unsubscribe: %v", err)
	}
}

func TestHub_SlowSubscriberDropsUpdates(t *testing.T) {
	t.Parallel()

	hub := NewHub(WithSubscriberBuffer(1))
	sub, err := hub.Subscribe()
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	hub.Broadcast(domain.Order{OrderID: "axn_1"})
	hub.Broadcast(domain.Order{OrderID: "axn_2"})

	order := <-sub.Updates()
	if order.OrderID != "axn_1" {
		t.Fatalf("expected axn_1, got %s", order.OrderID)
	}
	select {
	case order := <-sub.Updates():
		t.Fatalf("expected second update dropped, got %s", order.OrderID)
	default:
	}
}
