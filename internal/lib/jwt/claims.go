// Package jwt реализует выпуск и проверку JWT токенов с данными
// принципала: пользователь, его роль и привязка к арендатору.
//
// Claims расширяет стандартные клеймы JWT снимком {userId, email, role,
// tenantId, tenantSlug} на момент выпуска. Снимок намеренно не обновляется
// до перелогина: проверка актуальности аккаунта выполняется отдельно,
// на каждом запросе, слоем аутентификации.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

// Claims описывает данные принципала, хранящиеся в JWT.
type Claims struct {
	UserID               string `json:"userId"`
	Email                string `json:"email"`
	Role                 string `json:"role"`
	TenantID             string `json:"tenantId"`
	TenantSlug           string `json:"tenantSlug"`
	jwt.RegisteredClaims        // Стандартные клеймы (ExpiresAt, IssuedAt и пр.)
}

// Principal собирает models.Principal из клеймов токена.
func (c *Claims) Principal() models.Principal {
	return models.Principal{
		UserID:     c.UserID,
		Email:      c.Email,
		Role:       c.Role,
		TenantID:   c.TenantID,
		TenantSlug: c.TenantSlug,
	}
}

// GenerateToken создает JWT для принципала, подписывая его секретным ключом.
// Время жизни токена определяется полем tokenTTL (по умолчанию 7 дней).
func (j *MakerImpl) GenerateToken(p models.Principal) (string, error) {
	claims := Claims{
		UserID:     p.UserID,
		Email:      p.Email,
		Role:       p.Role,
		TenantID:   p.TenantID,
		TenantSlug: p.TenantSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT, проверяет подпись и срок действия.
// Любая ошибка (битый токен, чужая подпись, истёкший срок) возвращается
// обычным значением err — наружу паника не выходит.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
