package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

// UpsertSubscription создаёт либо обновляет подписку арендатора.
// У каждого арендатора не более одной подписки (уникальный tenant_id).
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (tenant_id, plan, status)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (tenant_id) DO UPDATE
			      SET plan = EXCLUDED.plan, status = EXCLUDED.status`
	if _, err := s.DB.ExecContext(ctx, query, sub.TenantID, sub.Plan, sub.Status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscriptionByTenant возвращает подписку арендатора.
func (s *Storage) GetSubscriptionByTenant(ctx context.Context, tenantID string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByTenant"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, tenant_id, plan, status FROM subscriptions WHERE tenant_id = $1`
	var sub models.Subscription
	row := s.DB.QueryRowContext(ctx, query, tenantID)
	if err := row.Scan(&sub.ID, &sub.TenantID, &sub.Plan, &sub.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}
