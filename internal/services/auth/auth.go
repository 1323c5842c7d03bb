// Package services содержит логику бизнес-уровня для аутентификации пользователей.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/tenant-notes/internal/lib/jwt"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/password"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
	"github.com/magabrotheeeer/tenant-notes/internal/storage/repository"
)

// ErrInvalidCredentials возвращается и для неизвестного email, и для
// неверного пароля: ответ не должен раскрывать, какое из полей не подошло.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated возвращается, когда токен не прошёл проверку либо
// стоящий за ним аккаунт или арендатор перестали существовать.
var ErrUnauthenticated = errors.New("unauthenticated")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByEmail возвращает пользователя с его арендатором по email.
	GetUserByEmail(ctx context.Context, email string) (*models.UserWithTenant, error)

	// GetUserWithTenant возвращает пользователя с его арендатором по ID.
	GetUserWithTenant(ctx context.Context, userID string) (*models.UserWithTenant, error)
}

// AuthService отвечает за вход по паролю и проверку JWT на каждом запросе.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и выпускает JWT со снимком
// {userId, email, role, tenantId, tenantSlug}.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.UserWithTenant, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.User.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(models.Principal{
		UserID:     user.User.ID,
		Email:      user.User.Email,
		Role:       user.User.Role,
		TenantID:   user.User.TenantID,
		TenantSlug: user.Tenant.Slug,
	})
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// Authenticate проверяет токен и перепроверяет, что стоящие за ним
// пользователь и арендатор всё ещё существуют. Токен — кэшированный снимок,
// он не должен переживать удаление аккаунта. Возвращаемый принципал берётся
// из клеймов токена, а не из базы: изменения роли и плана после выпуска
// токена отражаются только после перелогина.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*models.Principal, error) {
	const op = "auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if _, err := s.users.GetUserWithTenant(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	principal := claims.Principal()
	return &principal, nil
}
