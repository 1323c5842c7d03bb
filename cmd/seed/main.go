// Package main заполняет базу тестовыми арендаторами и пользователями.
//
// Запуск идемпотентен: повторное выполнение не создает дубликатов.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/tenant-notes/internal/config"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/password"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-notes/internal/migrations"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
	"github.com/magabrotheeeer/tenant-notes/internal/storage/repository"
)

type seedUser struct {
	email string
	role  string
}

type seedTenant struct {
	name  string
	slug  string
	users []seedUser
	notes []models.Note
}

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	ctx := context.Background()

	hash, err := password.GetHash("password")
	if err != nil {
		logger.Error("failed to hash password", sl.Err(err))
		os.Exit(1)
	}

	tenants := []seedTenant{
		{
			name: "Acme",
			slug: "acme",
			users: []seedUser{
				{email: "admin@acme.test", role: models.RoleAdmin},
				{email: "user@acme.test", role: models.RoleMember},
			},
			notes: []models.Note{
				{Title: "Welcome to Acme", Content: "First note of the Acme workspace."},
				{Title: "Onboarding checklist", Content: "Invite teammates and create your notes."},
			},
		},
		{
			name: "Globex",
			slug: "globex",
			users: []seedUser{
				{email: "admin@globex.test", role: models.RoleAdmin},
				{email: "user@globex.test", role: models.RoleMember},
			},
			notes: []models.Note{
				{Title: "Welcome to Globex", Content: "First note of the Globex workspace."},
			},
		},
	}

	for _, t := range tenants {
		tenantID, err := db.CreateTenant(ctx, models.Tenant{
			Name: t.name,
			Slug: t.slug,
			Plan: models.PlanFree,
		})
		if err != nil {
			logger.Error("failed to seed tenant", slog.String("slug", t.slug), sl.Err(err))
			os.Exit(1)
		}

		if err := db.UpsertSubscription(ctx, models.Subscription{
			TenantID: tenantID,
			Plan:     models.PlanFree,
			Status:   models.SubscriptionStatusActive,
		}); err != nil {
			logger.Error("failed to seed subscription", slog.String("slug", t.slug), sl.Err(err))
			os.Exit(1)
		}

		var authorID string
		for _, u := range t.users {
			userID, err := db.CreateUser(ctx, models.User{
				Email:        u.email,
				PasswordHash: hash,
				Role:         u.role,
				TenantID:     tenantID,
			})
			if err != nil {
				logger.Error("failed to seed user", slog.String("email", u.email), sl.Err(err))
				os.Exit(1)
			}
			authorID = userID
			logger.Info("seeded user",
				slog.String("email", u.email),
				slog.String("role", u.role),
				slog.String("tenant", t.slug))
		}

		// Заметки создаются только в пустом арендаторе, чтобы повторный
		// запуск не плодил дубликаты.
		count, err := db.CountNotes(ctx, tenantID)
		if err != nil {
			logger.Error("failed to count notes", slog.String("slug", t.slug), sl.Err(err))
			os.Exit(1)
		}
		if count == 0 {
			for _, n := range t.notes {
				n.TenantID = tenantID
				n.UserID = authorID
				if _, err := db.CreateNote(ctx, n, cfg.FreePlanLimit); err != nil {
					logger.Error("failed to seed note", slog.String("title", n.Title), sl.Err(err))
					os.Exit(1)
				}
			}
		}

		logger.Info("seeded tenant", slog.String("slug", t.slug))
	}

	logger.Info("seed completed")
}
