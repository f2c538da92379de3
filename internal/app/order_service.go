package app

import (
	"context"
	"strings"

	"github.com/hyperitsme/axion-backend/internal/clock"
	"github.com/hyperitsme/axion-backend/internal/domain"
)

// The sender is optional on creation; orders without one carry this sentinel.
const senderUnknown = "unknown"

const defaultListLimit = 100

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

// EventPublisher is notified after every committed order mutation. Publishing
// is best-effort: implementations must never block the caller or surface
// delivery failures back to it.
type EventPublisher interface {
	Publish(orderID string)
}

type OrderService struct {
	repo   OrderRepository
	clock  clock.Clock
	events EventPublisher
}

func NewOrderService(repo OrderRepository, clk clock.Clock, events EventPublisher) *OrderService {
	return &OrderService{
		repo:   repo,
		clock:  clk,
		events: events,
	}
}

type CreateOrderInput struct {
	Intent    domain.TransferIntent
	Recipient string
	Sender    string
}

type CreateOrderResult struct {
	Order          domain.Order
	DepositChain   string
	DepositAddress string
}

// CreateOrder validates the request, persists a new INITIATED order and
// returns the deposit target for the source chain. A creation event is
// published after the write commits; the caller does not wait on delivery.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error) {
	if err := in.Intent.Validate(); err != nil {
		return CreateOrderResult{}, err
	}
	if len(in.Recipient) < 4 {
		return CreateOrderResult{}, domain.ErrRecipientTooShort
	}

	sender := in.Sender
	if sender == "" {
		sender = senderUnknown
	}

	order := domain.Order{
		OrderID:   newOrderID(),
		SrcChain:  in.Intent.FromChain,
		DstChain:  in.Intent.ToChain,
		Token:     in.Intent.Token,
		Amount:    in.Intent.Amount,
		Sender:    sender,
		Recipient: in.Recipient,
		Status:    domain.OrderStatusInitiated,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return CreateOrderResult{}, err
	}

	s.events.Publish(order.OrderID)

	return CreateOrderResult{
		Order:          order,
		DepositChain:   in.Intent.FromChain,
		DepositAddress: "DEPOSIT_" + strings.ToUpper(in.Intent.FromChain),
	}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

type ListOrdersInput struct {
	Status   string
	SrcChain string
	DstChain string
	Query    string
	Limit    int
}

// ListOrders returns matching orders, newest first. The status filter is
// case-insensitive; an unknown status is a validation error rather than an
// empty result.
func (s *OrderService) ListOrders(ctx context.Context, in ListOrdersInput) ([]domain.Order, error) {
	filter := domain.OrderFilter{
		SrcChain: in.SrcChain,
		DstChain: in.DstChain,
		Query:    in.Query,
		Limit:    in.Limit,
	}
	if in.Status != "" {
		status, err := domain.ParseOrderStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.repo.ListOrders(ctx, filter)
}
