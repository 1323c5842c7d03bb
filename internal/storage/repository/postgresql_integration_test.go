package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

const testFreeLimit = 3

func TestStorage_CreateNote(t *testing.T) {
	tests := []struct {
		name    string
		note    func(tenantID, userID string) models.Note
		prepare func(t *testing.T, factory *TestDataFactory, tenantID, userID string)
		wantErr error
	}{
		{
			name: "успешное создание на тарифе FREE",
			note: func(tenantID, userID string) models.Note {
				return models.Note{
					Title:    "First note",
					Content:  "hello",
					TenantID: tenantID,
					UserID:   userID,
				}
			},
			prepare: func(_ *testing.T, _ *TestDataFactory, _, _ string) {},
		},
		{
			name: "лимит тарифа FREE исчерпан",
			note: func(tenantID, userID string) models.Note {
				return models.Note{
					Title:    "One too many",
					TenantID: tenantID,
					UserID:   userID,
				}
			},
			prepare: func(t *testing.T, factory *TestDataFactory, tenantID, userID string) {
				for i := range testFreeLimit {
					factory.CreateNote(t, fmt.Sprintf("note %d", i), "", tenantID, userID)
				}
			},
			wantErr: ErrNoteLimitExceeded,
		},
		{
			name: "несуществующий арендатор",
			note: func(_, userID string) models.Note {
				return models.Note{
					Title:    "orphan",
					TenantID: uuid.New().String(),
					UserID:   userID,
				}
			},
			prepare: func(_ *testing.T, _ *TestDataFactory, _, _ string) {},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tenantID, userID := factory.SeedTenantWithUser(t, "acme", models.PlanFree, "user@acme.test", models.RoleMember)
			tt.prepare(t, factory, tenantID, userID)

			got, err := storage.CreateNote(context.Background(), tt.note(tenantID, userID), testFreeLimit)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tenantID, got.TenantID)
			assert.Equal(t, "user@acme.test", got.Author.Email)
			assert.False(t, got.CreatedAt.IsZero())
		})
	}
}

// Два конкурентных создания не должны одновременно пройти проверку лимита.
func TestStorage_CreateNote_ConcurrentLimit(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	tenantID, userID := factory.SeedTenantWithUser(t, "acme", models.PlanFree, "user@acme.test", models.RoleMember)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := storage.CreateNote(context.Background(), models.Note{
				Title:    fmt.Sprintf("concurrent %d", i),
				TenantID: tenantID,
				UserID:   userID,
			}, testFreeLimit)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var succeeded, limited int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrNoteLimitExceeded)
			limited++
		}
	}

	assert.Equal(t, testFreeLimit, succeeded)
	assert.Equal(t, attempts-testFreeLimit, limited)
	NewTestVerification(storage).VerifyNoteCount(t, tenantID, testFreeLimit)
}

func TestStorage_CreateNote_AfterUpgrade(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	tenantID, userID := factory.SeedTenantWithUser(t, "acme", models.PlanFree, "admin@acme.test", models.RoleAdmin)

	ctx := context.Background()
	for i := range testFreeLimit {
		_, err := storage.CreateNote(ctx, models.Note{
			Title:    fmt.Sprintf("note %d", i),
			TenantID: tenantID,
			UserID:   userID,
		}, testFreeLimit)
		require.NoError(t, err)
	}

	_, err := storage.CreateNote(ctx, models.Note{
		Title:    "over the limit",
		TenantID: tenantID,
		UserID:   userID,
	}, testFreeLimit)
	require.ErrorIs(t, err, ErrNoteLimitExceeded)

	_, err = storage.UpgradeTenant(ctx, "acme")
	require.NoError(t, err)

	got, err := storage.CreateNote(ctx, models.Note{
		Title:    "unlimited now",
		TenantID: tenantID,
		UserID:   userID,
	}, testFreeLimit)
	require.NoError(t, err)
	assert.Equal(t, "unlimited now", got.Title)
	NewTestVerification(storage).VerifyNoteCount(t, tenantID, testFreeLimit+1)
}

// Заметки одного арендатора не видны и не достижимы из другого.
func TestStorage_TenantIsolation(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	acmeID, acmeUser := factory.SeedTenantWithUser(t, "acme", models.PlanPro, "user@acme.test", models.RoleMember)
	globexID, globexUser := factory.SeedTenantWithUser(t, "globex", models.PlanPro, "user@globex.test", models.RoleMember)

	acmeNote := factory.CreateNote(t, "acme secret", "internal", acmeID, acmeUser)
	factory.CreateNote(t, "globex note", "", globexID, globexUser)

	ctx := context.Background()

	got, err := storage.GetNote(ctx, acmeNote, acmeID)
	require.NoError(t, err)
	assert.Equal(t, "acme secret", got.Title)

	// Чтение, обновление и удаление чужой заметки дают ErrNotFound
	_, err = storage.GetNote(ctx, acmeNote, globexID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = storage.UpdateNote(ctx, acmeNote, globexID, "hijacked", "")
	require.ErrorIs(t, err, ErrNotFound)

	err = storage.RemoveNote(ctx, acmeNote, globexID)
	require.ErrorIs(t, err, ErrNotFound)

	// Заметка не изменилась и не удалилась
	got, err = storage.GetNote(ctx, acmeNote, acmeID)
	require.NoError(t, err)
	assert.Equal(t, "acme secret", got.Title)

	notes, err := storage.ListNotes(ctx, globexID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "globex note", notes[0].Title)
}

func TestStorage_ListNotes_Order(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	tenantID, userID := factory.SeedTenantWithUser(t, "acme", models.PlanPro, "user@acme.test", models.RoleMember)

	_, err := storage.DB.Exec(`INSERT INTO notes (title, content, tenant_id, user_id, created_at)
		VALUES
			('oldest', '', $1, $2, NOW() - INTERVAL '2 hours'),
			('middle', '', $1, $2, NOW() - INTERVAL '1 hour'),
			('newest', '', $1, $2, NOW())`,
		tenantID, userID)
	require.NoError(t, err)

	notes, err := storage.ListNotes(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "newest", notes[0].Title)
	assert.Equal(t, "middle", notes[1].Title)
	assert.Equal(t, "oldest", notes[2].Title)
	assert.Equal(t, "user@acme.test", notes[0].Author.Email)
}

func TestStorage_UpgradeTenant(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		prepare func(t *testing.T, storage *Storage, tenantID string)
		wantErr error
	}{
		{
			name:    "перевод без существующей подписки",
			slug:    "acme",
			prepare: func(_ *testing.T, _ *Storage, _ string) {},
		},
		{
			name: "перевод с обновлением подписки",
			slug: "acme",
			prepare: func(t *testing.T, storage *Storage, tenantID string) {
				err := storage.UpsertSubscription(context.Background(), models.Subscription{
					TenantID: tenantID,
					Plan:     models.PlanFree,
					Status:   models.SubscriptionStatusActive,
				})
				require.NoError(t, err)
			},
		},
		{
			name:    "несуществующий slug",
			slug:    "unknown",
			prepare: func(_ *testing.T, _ *Storage, _ string) {},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tenantID := factory.CreateTenant(t, "Acme", "acme", models.PlanFree)
			tt.prepare(t, storage, tenantID)

			got, err := storage.UpgradeTenant(context.Background(), tt.slug)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				NewTestVerification(storage).VerifyTenantPlan(t, tenantID, models.PlanFree)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.PlanPro, got.Plan)
			assert.Equal(t, tt.slug, got.Slug)

			verify := NewTestVerification(storage)
			verify.VerifyTenantPlan(t, tenantID, models.PlanPro)
			verify.VerifySubscription(t, tenantID, models.Subscription{
				Plan:   models.PlanPro,
				Status: models.SubscriptionStatusActive,
			})

			var subCount int
			err = storage.DB.QueryRow("SELECT COUNT(*) FROM subscriptions WHERE tenant_id = $1", tenantID).Scan(&subCount)
			require.NoError(t, err)
			assert.Equal(t, 1, subCount)
		})
	}
}

func TestStorage_GetUserByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	tenantID, userID := factory.SeedTenantWithUser(t, "acme", models.PlanFree, "admin@acme.test", models.RoleAdmin)

	ctx := context.Background()

	got, err := storage.GetUserByEmail(ctx, "admin@acme.test")
	require.NoError(t, err)
	assert.Equal(t, userID, got.User.ID)
	assert.Equal(t, models.RoleAdmin, got.User.Role)
	assert.Equal(t, tenantID, got.Tenant.ID)
	assert.Equal(t, "acme", got.Tenant.Slug)

	_, err = storage.GetUserByEmail(ctx, "ghost@acme.test")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_GetUserWithTenant(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	_, userID := factory.SeedTenantWithUser(t, "acme", models.PlanFree, "user@acme.test", models.RoleMember)

	ctx := context.Background()

	got, err := storage.GetUserWithTenant(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "user@acme.test", got.User.Email)
	assert.Equal(t, "acme", got.Tenant.Slug)

	// Удаленный пользователь больше не находится
	_, err = storage.DB.Exec("DELETE FROM users WHERE id = $1", userID)
	require.NoError(t, err)

	_, err = storage.GetUserWithTenant(ctx, userID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_CreateTenant_Idempotent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	firstID, err := storage.CreateTenant(ctx, models.Tenant{Name: "Acme", Slug: "acme", Plan: models.PlanFree})
	require.NoError(t, err)

	secondID, err := storage.CreateTenant(ctx, models.Tenant{Name: "Acme Inc", Slug: "acme", Plan: models.PlanFree})
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	var count int
	err = storage.DB.QueryRow("SELECT COUNT(*) FROM tenants WHERE slug = 'acme'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_CreateUser_Idempotent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	tenantID := factory.CreateTenant(t, "Acme", "acme", models.PlanFree)

	ctx := context.Background()

	firstID, err := storage.CreateUser(ctx, models.User{
		Email:        "user@acme.test",
		PasswordHash: "hash-one",
		Role:         models.RoleMember,
		TenantID:     tenantID,
	})
	require.NoError(t, err)

	secondID, err := storage.CreateUser(ctx, models.User{
		Email:        "user@acme.test",
		PasswordHash: "hash-two",
		Role:         models.RoleAdmin,
		TenantID:     tenantID,
	})
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	got, err := storage.GetUserByEmail(ctx, "user@acme.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.User.Role)
	assert.Equal(t, "hash-two", got.User.PasswordHash)
}
