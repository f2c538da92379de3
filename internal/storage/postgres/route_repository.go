package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

type RouteRepository struct {
	pool *pgxpool.Pool
}

func NewRouteRepository(pool *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{pool: pool}
}

func (r *RouteRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	const query = `
SELECT id, src_chain, dst_chain, token, fee_bps, paused, p95_sec
FROM routes
ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(
			&route.ID,
			&route.SrcChain,
			&route.DstChain,
			&route.Token,
			&route.FeeBps,
			&route.Paused,
			&route.P95Sec,
		); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}

type ValidatorRepository struct {
	pool *pgxpool.Pool
}

func NewValidatorRepository(pool *pgxpool.Pool) *ValidatorRepository {
	return &ValidatorRepository{pool: pool}
}

func (r *ValidatorRepository) ListValidators(ctx context.Context) ([]domain.Validator, error) {
	const query = `
SELECT id, name, region, quorum, missed, epoch, health
FROM validators
ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list validators: %w", err)
	}
	defer rows.Close()

	validators := make([]domain.Validator, 0)
	for rows.Next() {
		var v domain.Validator
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Region,
			&v.Quorum,
			&v.Missed,
			&v.Epoch,
			&v.Health,
		); err != nil {
			return nil, fmt.Errorf("scan validator: %w", err)
		}
		validators = append(validators, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list validators: %w", err)
	}
	return validators, nil
}
