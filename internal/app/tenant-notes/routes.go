// Package tenantnotes предоставляет маршруты для основного приложения.
package tenantnotes

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/tenant-notes/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/tenant-notes/internal/http/handlers/health"
	"github.com/magabrotheeeer/tenant-notes/internal/http/handlers/note/create"
	"github.com/magabrotheeeer/tenant-notes/internal/http/handlers/note/list"
	"github.com/magabrotheeeer/tenant-notes/internal/http/handlers/note/read"
	"github.com/magabrotheeeer/tenant-notes/internal/http/handlers/note/remove"
	"github.com/magabrotheeeer/tenant-notes/internal/http/handlers/note/update"
	"github.com/magabrotheeeer/tenant-notes/internal/http/handlers/tenant/upgrade"
	"github.com/magabrotheeeer/tenant-notes/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/tenant-notes/internal/services/auth"
	noteservice "github.com/magabrotheeeer/tenant-notes/internal/services/note"
	tenantservice "github.com/magabrotheeeer/tenant-notes/internal/services/tenant"
	"github.com/magabrotheeeer/tenant-notes/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.AuthService, noteService *noteservice.NoteService,
	tenantService *tenantservice.TenantService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, rate.Limit(10), 20))
			r.Get("/notes", list.New(logger, noteService).ServeHTTP)
			r.Post("/notes", create.New(logger, noteService).ServeHTTP)
			r.Get("/notes/{id}", read.New(logger, noteService).ServeHTTP)
			r.Put("/notes/{id}", update.New(logger, noteService).ServeHTTP)
			r.Delete("/notes/{id}", remove.New(logger, noteService).ServeHTTP)

			// Перевод арендатора на PRO доступен только администратору
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Post("/tenants/{slug}/upgrade", upgrade.New(logger, tenantService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
