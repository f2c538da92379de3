package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hyperitsme/axion-backend/internal/clock"
	"github.com/hyperitsme/axion-backend/internal/domain"
)

func TestOrderService_CreateOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	validIntent := domain.TransferIntent{
		FromChain: "solana",
		ToChain:   "ethereum",
		Token:     "USDC",
		Amount:    100,
		Mode:      domain.PricingModeFixed,
	}

	makeSvc := func() (*OrderService, *fakeOrderRepo, *stubPublisher) {
		repo := newFakeOrderRepo()
		events := &stubPublisher{}
		svc := NewOrderService(repo, clock.NewFixed(now), events)
		return svc, repo, events
	}

	t.Run("creates initiated order with defaults", func(t *testing.T) {
		svc, repo, events := makeSvc()

		result, err := svc.CreateOrder(context.Background(), CreateOrderInput{
			Intent:    validIntent,
			Recipient: "0xabc123",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		order := result.Order
		if !strings.HasPrefix(order.OrderID, "axn_") {
			t.Fatalf("expected axn_ prefix, got %q", order.OrderID)
		}
		if order.Status != domain.OrderStatusInitiated {
			t.Fatalf("expected status INITIATED, got %s", order.Status)
		}
		if order.Sender != "unknown" {
			t.Fatalf("expected sender to default to unknown, got %q", order.Sender)
		}
		if order.SrcTx != nil || order.DstTx != nil {
			t.Fatalf("expected tx refs unset, got %v %v", order.SrcTx, order.DstTx)
		}
		if !order.CreatedAt.Equal(now) {
			t.Fatalf("expected createdAt %v, got %v", now, order.CreatedAt)
		}
		if result.DepositChain != "solana" {
			t.Fatalf("expected deposit chain solana, got %q", result.DepositChain)
		}
		if result.DepositAddress != "DEPOSIT_SOLANA" {
			t.Fatalf("expected deposit address DEPOSIT_SOLANA, got %q", result.DepositAddress)
		}
		if len(repo.orders) != 1 {
			t.Fatalf("expected 1 persisted order, got %d", len(repo.orders))
		}
		if len(events.published) != 1 || events.published[0] != order.OrderID {
			t.Fatalf("expected one publish for %s, got %v", order.OrderID, events.published)
		}
	})

	t.Run("keeps explicit sender", func(t *testing.T) {
		svc, _, _ := makeSvc()

		result, err := svc.CreateOrder(context.Background(), CreateOrderInput{
			Intent:    validIntent,
			Recipient: "0xabc123",
			Sender:    "alice",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Order.Sender != "alice" {
			t.Fatalf("expected sender alice, got %q", result.Order.Sender)
		}
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		svc, _, _ := makeSvc()

		seen := make(map[string]struct{})
		for i := 0; i < 50; i++ {
			result, err := svc.CreateOrder(context.Background(), CreateOrderInput{
				Intent:    validIntent,
				Recipient: "0xabc123",
			})
			if err != nil {
				t.Fatalf("create %d: %v", i, err)
			}
			if _, dup := seen[result.Order.OrderID]; dup {
				t.Fatalf("duplicate order id %s", result.Order.OrderID)
			}
			seen[result.Order.OrderID] = struct{}{}
		}
	})

	t.Run("short recipient rejected without persisting", func(t *testing.T) {
		svc, repo, events := makeSvc()

		_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
			Intent:    validIntent,
			Recipient: "abc",
		})
		if err != domain.ErrRecipientTooShort {
			t.Fatalf("expected ErrRecipientTooShort, got %v", err)
		}
		if len(repo.orders) != 0 {
			t.Fatalf("expected no persisted orders, got %d", len(repo.orders))
		}
		if len(events.published) != 0 {
			t.Fatalf("expected no publishes, got %v", events.published)
		}
	})

	t.Run("invalid intent rejected", func(t *testing.T) {
		svc, repo, _ := makeSvc()

		bad := validIntent
		bad.Amount = 0
		_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
			Intent:    bad,
			Recipient: "0xabc123",
		})
		if err != domain.ErrInvalidAmount {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if len(repo.orders) != 0 {
			t.Fatalf("expected no persisted orders, got %d", len(repo.orders))
		}
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("normalizes status case", func(t *testing.T) {
		repo := newFakeOrderRepo()
		svc := NewOrderService(repo, clock.NewFixed(now), &stubPublisher{})

		if _, err := svc.ListOrders(context.Background(), ListOrdersInput{Status: "finalized"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo.lastFilter.Status != domain.OrderStatusFinalized {
			t.Fatalf("expected FINALIZED filter, got %q", repo.lastFilter.Status)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := newFakeOrderRepo()
		svc := NewOrderService(repo, clock.NewFixed(now), &stubPublisher{})

		_, err := svc.ListOrders(context.Background(), ListOrdersInput{Status: "done"})
		if err != domain.ErrInvalidStatus {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("applies default limit", func(t *testing.T) {
		repo := newFakeOrderRepo()
		svc := NewOrderService(repo, clock.NewFixed(now), &stubPublisher{})

		if _, err := svc.ListOrders(context.Background(), ListOrdersInput{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo.lastFilter.Limit != 100 {
			t.Fatalf("expected default limit 100, got %d", repo.lastFilter.Limit)
		}
	})

	t.Run("passes filters through", func(t *testing.T) {
		repo := newFakeOrderRepo()
		svc := NewOrderService(repo, clock.NewFixed(now), &stubPublisher{})

		_, err := svc.ListOrders(context.Background(), ListOrdersInput{
			SrcChain: "solana",
			DstChain: "ethereum",
			Query:    "alice",
			Limit:    25,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := domain.OrderFilter{SrcChain: "solana", DstChain: "ethereum", Query: "alice", Limit: 25}
		if repo.lastFilter != want {
			t.Fatalf("expected filter %+v, got %+v", want, repo.lastFilter)
		}
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeOrderRepo()
	repo.orders["axn_1"] = domain.Order{OrderID: "axn_1", Status: domain.OrderStatusInitiated}
	svc := NewOrderService(repo, clock.NewFixed(now), &stubPublisher{})

	order, err := svc.GetOrder(context.Background(), "axn_1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.OrderID != "axn_1" {
		t.Fatalf("expected axn_1, got %q", order.OrderID)
	}

	if _, err := svc.GetOrder(context.Background(), "axn_missing"); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

type fakeOrderRepo struct {
	orders     map[string]domain.Order
	lastFilter domain.OrderFilter
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]domain.Order)}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order domain.Order) error {
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakeOrderRepo) GetOrder(_ context.Context, orderID string) (domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	f.lastFilter = filter
	out := make([]domain.Order, 0, len(f.orders))
	for _, order := range f.orders {
		out = append(out, order)
	}
	return out, nil
}

type stubPublisher struct {
	published []string
}

func (s *stubPublisher) Publish(orderID string) {
	s.published = append(s.published, orderID)
}
