package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

// CreateTenant сохраняет арендатора и возвращает его ID. Повторный вызов
// с тем же slug не создаёт дубликат.
func (s *Storage) CreateTenant(ctx context.Context, tenant models.Tenant) (string, error) {
	const op = "storage.CreateTenant"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO tenants (name, slug, plan)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		tenant.Name, tenant.Slug, tenant.Plan).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTenantBySlug возвращает арендатора по slug.
func (s *Storage) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	const op = "storage.GetTenantBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, slug, plan FROM tenants WHERE slug = $1`
	var t models.Tenant
	row := s.DB.QueryRowContext(ctx, query, slug)
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Plan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// UpgradeTenant переводит арендатора на тариф PRO и в той же транзакции
// создаёт либо обновляет его подписку. Частичное применение (план обновился,
// подписка — нет) снаружи не наблюдаемо.
func (s *Storage) UpgradeTenant(ctx context.Context, slug string) (*models.Tenant, error) {
	const op = "storage.UpgradeTenant"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var t models.Tenant
	query := `UPDATE tenants SET plan = $1 WHERE slug = $2
			  RETURNING id, name, slug, plan`
	if err = tx.QueryRowContext(ctx, query, models.PlanPro, slug).
		Scan(&t.ID, &t.Name, &t.Slug, &t.Plan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO subscriptions (tenant_id, plan, status)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (tenant_id) DO UPDATE
			     SET plan = EXCLUDED.plan, status = EXCLUDED.status`
	if _, err = tx.ExecContext(ctx, query,
		t.ID, models.PlanPro, models.SubscriptionStatusActive); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}
