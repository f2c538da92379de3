package notify

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

// OrderSource yields the authoritative snapshot for an order id.
type OrderSource interface {
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
}

// Sink receives every published snapshot in addition to hub subscribers,
// e.g. a message broker for downstream consumers.
type Sink interface {
	Send(ctx context.Context, order domain.Order) error
	Close() error
}

const (
	defaultQueueSize      = 1024
	defaultPublishTimeout = 5 * time.Second
)

// Notifier turns order ids into snapshot broadcasts. Publish enqueues and
// returns immediately; a single Run loop drains the queue so successive
// events for the same order are always delivered in order.
type Notifier struct {
	source  OrderSource
	hub     *Hub
	sinks   []Sink
	logger  *log.Logger
	timeout time.Duration
	queue   chan string
}

type NotifierOption func(*Notifier)

// WithSinks attaches broker sinks that receive every published snapshot.
func WithSinks(sinks ...Sink) NotifierOption {
	return func(n *Notifier) {
		n.sinks = append(n.sinks, sinks...)
	}
}

// WithQueueSize bounds the pending-publish queue.
func WithQueueSize(size int) NotifierOption {
	return func(n *Notifier) {
		if size > 0 {
			n.queue = make(chan string, size)
		}
	}
}

func WithNotifierLogger(logger *log.Logger) NotifierOption {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

func NewNotifier(source OrderSource, hub *Hub, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		source:  source,
		hub:     hub,
		logger:  log.Default(),
		timeout: defaultPublishTimeout,
		queue:   make(chan string, defaultQueueSize),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Publish schedules a snapshot broadcast for the order. It never blocks and
// never reports failure to the caller; when the queue is full the update is
// dropped and logged.
func (n *Notifier) Publish(orderID string) {
	select {
	case n.queue <- orderID:
	default:
		n.logger.Printf("notify: queue full, dropping update for %s", orderID)
	}
}

// Run drains the publish queue until the context is canceled.
func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case orderID := <-n.queue:
			n.publish(ctx, orderID)
		}
	}
}

func (n *Notifier) publish(ctx context.Context, orderID string) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	order, err := n.source.GetOrder(ctx, orderID)
	if errors.Is(err, domain.ErrOrderNotFound) {
		// Order vanished between mutation and publish; nothing to emit.
		return
	}
	if err != nil {
		n.logger.Printf("notify: load %s: %v", orderID, err)
		return
	}

	n.hub.Broadcast(order)

	for _, sink := range n.sinks {
		if err := sink.Send(ctx, order); err != nil {
			n.logger.Printf("notify: sink send %s: %v", orderID, err)
		}
	}
}
