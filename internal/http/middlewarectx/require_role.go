package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tenant-notes/internal/http/response"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

// RequireRole возвращает middleware, пропускающее запрос только при наличии
// у принципала нужной роли. Ставится после JWTMiddleware: роль берётся из
// снимка в токене, а не из базы.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := Principal(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}
			if principal.Role != role {
				log.Warn("role check failed",
					slog.String("required", role),
					slog.String("actual", principal.Role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Forbidden - Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin — сокращение для RequireRole(models.RoleAdmin, log).
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return RequireRole(models.RoleAdmin, log)
}
