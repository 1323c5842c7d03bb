// Package tenantnotes собирает приложение: хранилище, миграции, сервисы,
// маршрутизатор и HTTP-сервер.
package tenantnotes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/tenant-notes/internal/config"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/jwt"
	"github.com/magabrotheeeer/tenant-notes/internal/migrations"
	authservice "github.com/magabrotheeeer/tenant-notes/internal/services/auth"
	noteservice "github.com/magabrotheeeer/tenant-notes/internal/services/note"
	tenantservice "github.com/magabrotheeeer/tenant-notes/internal/services/tenant"
	"github.com/magabrotheeeer/tenant-notes/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	noteService := noteservice.NewNoteService(db, logger, cfg.FreePlanLimit)
	tenantService := tenantservice.NewTenantService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db, authService, noteService, tenantService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.Close()
		return err
	}
}
