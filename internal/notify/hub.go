package notify

import (
	"errors"
	"sync"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

var ErrTooManySubscribers = errors.New("too many subscribers")

const (
	defaultMaxSubscribers   = 256
	defaultSubscriberBuffer = 16
)

// Subscriber is one attached observer. Updates delivers order snapshots until
// the subscriber is removed from the hub, at which point the channel closes.
type Subscriber struct {
	ch chan domain.Order
}

func (s *Subscriber) Updates() <-chan domain.Order {
	return s.ch
}

// Hub owns the set of active subscribers and fans order snapshots out to all
// of them. Delivery is best-effort: a subscriber that cannot keep up has
// updates dropped rather than stalling the broadcast.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	max    int
	buffer int
}

type HubOption func(*Hub)

// WithMaxSubscribers bounds the subscriber set.
func WithMaxSubscribers(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.max = n
		}
	}
}

// WithSubscriberBuffer sets the per-subscriber channel depth.
func WithSubscriberBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:   make(map[*Subscriber]struct{}),
		max:    defaultMaxSubscribers,
		buffer: defaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Subscribe() (*Subscriber, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.subs) >= h.max {
		return nil, ErrTooManySubscribers
	}
	sub := &Subscriber{ch: make(chan domain.Order, h.buffer)}
	h.subs[sub] = struct{}{}
	return sub, nil
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// Broadcast delivers the snapshot to every current subscriber without
// blocking. Sends and channel closes share the hub lock, so a broadcast can
// never hit a closed channel.
func (h *Hub) Broadcast(order domain.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.ch <- order:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
