// Package services содержит бизнес-логику администрирования арендатора:
// перевод собственного арендатора на тариф PRO.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
	"github.com/magabrotheeeer/tenant-notes/internal/storage/repository"
)

var (
	// ErrTenantNotFound возвращается, если арендатор с таким slug не существует.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrNotAdmin возвращается, если принципал не имеет роли ADMIN.
	ErrNotAdmin = errors.New("admin access required")
	// ErrForeignTenant возвращается, если администратор пытается обновить
	// чужого арендатора, угадав его slug. Арендатор при этом существует,
	// поэтому ответ — forbidden, а не not found.
	ErrForeignTenant = errors.New("access denied")
)

// TenantRepository определяет методы для работы с арендаторами в хранилище.
type TenantRepository interface {
	// GetTenantBySlug возвращает арендатора по slug.
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	// UpgradeTenant атомарно переводит арендатора на PRO и обновляет подписку.
	UpgradeTenant(ctx context.Context, slug string) (*models.Tenant, error)
}

// TenantService реализует операции администрирования арендатора.
type TenantService struct {
	repo TenantRepository
	log  *slog.Logger
}

// NewTenantService создает новый TenantService.
func NewTenantService(repo TenantRepository, log *slog.Logger) *TenantService {
	return &TenantService{
		repo: repo,
		log:  log,
	}
}

// Upgrade переводит арендатора на тариф PRO. Доступно только администратору
// и только для его собственного арендатора. План и подписка обновляются
// в одной транзакции хранилища.
func (s *TenantService) Upgrade(ctx context.Context, p models.Principal, slug string) (*models.Tenant, error) {
	if p.Role != models.RoleAdmin {
		return nil, ErrNotAdmin
	}

	tenant, err := s.repo.GetTenantBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	if tenant.ID != p.TenantID {
		return nil, ErrForeignTenant
	}

	upgraded, err := s.repo.UpgradeTenant(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	s.log.Info("tenant upgraded to pro", slog.String("tenant_slug", slug))
	return upgraded, nil
}
