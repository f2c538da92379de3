package worker

import (
	"context"
	"log"
	"time"

	"github.com/hyperitsme/axion-backend/internal/clock"
	"github.com/hyperitsme/axion-backend/internal/domain"
)

// OrderStore is the slice of the order store the settlement worker needs.
// The Mark methods are conditional: they advance an order only when it is
// still in the expected prior status, report whether a row changed, and set
// the tx reference only if it was not already set. That makes each per-order
// read-modify-write atomic with respect to concurrent writers.
type OrderStore interface {
	ListSettling(ctx context.Context) ([]domain.Order, error)
	MarkAttested(ctx context.Context, orderID, srcTx string) (bool, error)
	MarkFinalized(ctx context.Context, orderID, dstTx string) (bool, error)
}

type EventPublisher interface {
	Publish(orderID string)
}

const (
	defaultScanInterval  = 5 * time.Second
	defaultAttestAfter   = 15 * time.Second
	defaultFinalizeAfter = 35 * time.Second
)

// Settler is the background process that advances in-flight orders through
// attestation and finalization based on their wall-clock age. It stands in
// for real confirmation monitoring so the rest of the system can run without
// chain connectivity.
type Settler struct {
	store         OrderStore
	clock         clock.Clock
	events        EventPublisher
	logger        *log.Logger
	interval      time.Duration
	attestAfter   time.Duration
	finalizeAfter time.Duration
}

type SettlerOption func(*Settler)

// WithInterval overrides the scan cadence.
func WithInterval(d time.Duration) SettlerOption {
	return func(s *Settler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithThresholds overrides the attestation and finalization ages.
func WithThresholds(attestAfter, finalizeAfter time.Duration) SettlerOption {
	return func(s *Settler) {
		if attestAfter > 0 {
			s.attestAfter = attestAfter
		}
		if finalizeAfter > 0 {
			s.finalizeAfter = finalizeAfter
		}
	}
}

func WithLogger(logger *log.Logger) SettlerOption {
	return func(s *Settler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewSettler(store OrderStore, clk clock.Clock, events EventPublisher, opts ...SettlerOption) *Settler {
	s := &Settler{
		store:         store,
		clock:         clk,
		events:        events,
		logger:        log.Default(),
		interval:      defaultScanInterval,
		attestAfter:   defaultAttestAfter,
		finalizeAfter: defaultFinalizeAfter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scans until the context is canceled. Ticks never overlap: the next
// scan is scheduled only after the previous one has finished.
func (s *Settler) Run(ctx context.Context) {
	s.logger.Printf("settler: started interval=%s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("settler: stopped")
			return
		case <-ticker.C:
			s.scanOnce(ctx)
		}
	}
}

// scanOnce evaluates every non-terminal order against both age thresholds.
// Both thresholds are checked against the same age, so an order older than
// the finalization threshold passes through attestation and finalization in
// a single scan, emitting one event per transition. A failure on one order
// is logged and does not stop the rest of the batch.
func (s *Settler) scanOnce(ctx context.Context) {
	orders, err := s.store.ListSettling(ctx)
	if err != nil {
		s.logger.Printf("settler: list settling orders: %v", err)
		return
	}

	now := s.clock.Now()
	for _, order := range orders {
		s.advance(ctx, order, now)
	}
}

func (s *Settler) advance(ctx context.Context, order domain.Order, now time.Time) {
	age := now.Sub(order.CreatedAt)

	if order.Status == domain.OrderStatusInitiated && age > s.attestAfter {
		advanced, err := s.store.MarkAttested(ctx, order.OrderID, "SRC_"+order.OrderID)
		if err != nil {
			s.logger.Printf("settler: attest %s: %v", order.OrderID, err)
			return
		}
		if !advanced {
			// Another writer got there first; re-evaluate next tick.
			return
		}
		order.Status = domain.OrderStatusAttested
		s.events.Publish(order.OrderID)
	}

	if order.Status == domain.OrderStatusAttested && age > s.finalizeAfter {
		advanced, err := s.store.MarkFinalized(ctx, order.OrderID, "DST_"+order.OrderID)
		if err != nil {
			s.logger.Printf("settler: finalize %s: %v", order.OrderID, err)
			return
		}
		if !advanced {
			return
		}
		s.events.Publish(order.OrderID)
	}
}
