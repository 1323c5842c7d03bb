package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

// Service описывает интерфейс сервиса аутентификации запроса.
type Service interface {
	// Authenticate проверяет токен и актуальность стоящего за ним аккаунта,
	// возвращая принципала из клеймов токена.
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
}
