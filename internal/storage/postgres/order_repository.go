package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `order_id, src_chain, dst_chain, token, amount, sender, recipient, status, src_tx, dst_tx, created_at`

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const stmt = `
INSERT INTO orders (order_id, src_chain, dst_chain, token, amount, sender, recipient, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, stmt,
		order.OrderID,
		order.SrcChain,
		order.DstChain,
		order.Token,
		order.Amount,
		order.Sender,
		order.Recipient,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SrcChain != "" {
		args = append(args, filter.SrcChain)
		conds = append(conds, fmt.Sprintf("src_chain = $%d", len(args)))
	}
	if filter.DstChain != "" {
		args = append(args, filter.DstChain)
		conds = append(conds, fmt.Sprintf("dst_chain = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(sender LIKE $%d OR recipient LIKE $%d OR order_id LIKE $%d)", n, n, n))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListSettling returns every order still in flight, oldest first so the
// settlement worker advances long-waiting orders before fresh ones.
func (r *OrderRepository) ListSettling(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status IN ($1, $2) ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, domain.OrderStatusInitiated, domain.OrderStatusAttested)
	if err != nil {
		return nil, fmt.Errorf("list settling: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan settling order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list settling: %w", err)
	}
	return orders, nil
}

// MarkAttested advances an INITIATED order to ATTESTED in one statement.
// COALESCE keeps an already-set src_tx; the status guard makes concurrent
// attempts idempotent. Reports whether this call performed the transition.
func (r *OrderRepository) MarkAttested(ctx context.Context, orderID, srcTx string) (bool, error) {
	const stmt = `
UPDATE orders
SET status = $3, src_tx = COALESCE(src_tx, $2)
WHERE order_id = $1 AND status = $4`

	tag, err := r.pool.Exec(ctx, stmt, orderID, srcTx, domain.OrderStatusAttested, domain.OrderStatusInitiated)
	if err != nil {
		return false, fmt.Errorf("mark attested: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFinalized advances an ATTESTED order to the terminal FINALIZED status.
func (r *OrderRepository) MarkFinalized(ctx context.Context, orderID, dstTx string) (bool, error) {
	const stmt = `
UPDATE orders
SET status = $3, dst_tx = COALESCE(dst_tx, $2)
WHERE order_id = $1 AND status = $4`

	tag, err := r.pool.Exec(ctx, stmt, orderID, dstTx, domain.OrderStatusFinalized, domain.OrderStatusAttested)
	if err != nil {
		return false, fmt.Errorf("mark finalized: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrderRepository) CountOrdersSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *OrderRepository) CountFinalizedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1 AND status = $2`,
		since, domain.OrderStatusFinalized,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count finalized: %w", err)
	}
	return count, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.OrderID,
		&o.SrcChain,
		&o.DstChain,
		&o.Token,
		&o.Amount,
		&o.Sender,
		&o.Recipient,
		&o.Status,
		&o.SrcTx,
		&o.DstTx,
		&o.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// escapeLike keeps user input from acting as LIKE wildcards.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
