package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

// CreateUser сохраняет пользователя и возвращает его ID. Повторный вызов
// с тем же email обновляет запись (идемпотентное провижинирование).
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (email, password_hash, role, tenant_id)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (email) DO UPDATE
			      SET password_hash = EXCLUDED.password_hash,
			          role = EXCLUDED.role,
			          tenant_id = EXCLUDED.tenant_id
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Role, user.TenantID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя вместе с его арендатором.
// Возвращает ErrNotFound, если пользователь не существует или его
// арендатор отсутствует.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.UserWithTenant, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT u.id, u.email, u.password_hash, u.role, u.tenant_id,
			      t.id, t.name, t.slug, t.plan
			  FROM users u
			  JOIN tenants t ON t.id = u.tenant_id
			  WHERE u.email = $1`
	return s.scanUserWithTenant(ctx, op, query, email)
}

// GetUserWithTenant возвращает пользователя по ID вместе с его арендатором.
// Используется слоем аутентификации: токен — кэшированный снимок, и он
// не должен переживать удаление аккаунта или арендатора.
func (s *Storage) GetUserWithTenant(ctx context.Context, userID string) (*models.UserWithTenant, error) {
	const op = "storage.GetUserWithTenant"

	query := `SELECT u.id, u.email, u.password_hash, u.role, u.tenant_id,
			      t.id, t.name, t.slug, t.plan
			  FROM users u
			  JOIN tenants t ON t.id = u.tenant_id
			  WHERE u.id = $1`
	return s.scanUserWithTenant(ctx, op, query, userID)
}

func (s *Storage) scanUserWithTenant(ctx context.Context, op, query string, arg any) (*models.UserWithTenant, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var res models.UserWithTenant
	row := s.DB.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&res.User.ID, &res.User.Email, &res.User.PasswordHash,
		&res.User.Role, &res.User.TenantID,
		&res.Tenant.ID, &res.Tenant.Name, &res.Tenant.Slug, &res.Tenant.Plan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}
