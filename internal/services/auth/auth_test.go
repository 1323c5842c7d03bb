package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tenant-notes/internal/lib/jwt"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/password"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
	"github.com/magabrotheeeer/tenant-notes/internal/storage/repository"
)

// MockUserRepository реализует интерфейс UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.UserWithTenant, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*models.UserWithTenant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserWithTenant(ctx context.Context, userID string) (*models.UserWithTenant, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.UserWithTenant), args.Error(1)
	}
	return nil, args.Error(1)
}

func testUser(t *testing.T) *models.UserWithTenant {
	t.Helper()
	hash, err := password.GetHash("password")
	require.NoError(t, err)
	return &models.UserWithTenant{
		User: models.User{
			ID:           "8b2e7bfa-3f4c-4a13-9a50-1f6a9f2f2b7e",
			Email:        "admin@acme.test",
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			TenantID:     "d3f1c2aa-51f0-4de2-9c1e-0a1b2c3d4e5f",
		},
		Tenant: models.Tenant{
			ID:   "d3f1c2aa-51f0-4de2-9c1e-0a1b2c3d4e5f",
			Name: "Acme Corporation",
			Slug: "acme",
			Plan: models.PlanFree,
		},
	}
}

func TestAuthService_Login(t *testing.T) {
	user := testUser(t)

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:     "успешный вход",
			email:    "admin@acme.test",
			password: "password",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByEmail", mock.Anything, "admin@acme.test").Return(user, nil)
			},
		},
		{
			name:     "неверный пароль",
			email:    "admin@acme.test",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByEmail", mock.Anything, "admin@acme.test").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "несуществующий email",
			email:    "ghost@acme.test",
			password: "password",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByEmail", mock.Anything, "ghost@acme.test").
					Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, jwt.NewJWTMaker("test_secret", 7*24*time.Hour))
			token, got, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, user.User.Email, got.User.Email)
				assert.Equal(t, "acme", got.Tenant.Slug)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

// Одинаковая ошибка для неизвестного email и неверного пароля:
// ответ не должен подсказывать, какое поле не подошло.
func TestAuthService_Login_NoCredentialLeak(t *testing.T) {
	user := testUser(t)
	maker := jwt.NewJWTMaker("test_secret", time.Hour)

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetUserByEmail", mock.Anything, "admin@acme.test").Return(user, nil)
	mockRepo.On("GetUserByEmail", mock.Anything, "ghost@acme.test").
		Return(nil, repository.ErrNotFound)

	svc := NewAuthService(mockRepo, maker)

	_, _, errWrongPassword := svc.Login(context.Background(), "admin@acme.test", "nope")
	_, _, errUnknownEmail := svc.Login(context.Background(), "ghost@acme.test", "password")

	assert.Equal(t, errWrongPassword, errUnknownEmail)
}

func TestAuthService_Authenticate(t *testing.T) {
	user := testUser(t)
	maker := jwt.NewJWTMaker("test_secret", time.Hour)

	principal := models.Principal{
		UserID:     user.User.ID,
		Email:      user.User.Email,
		Role:       user.User.Role,
		TenantID:   user.User.TenantID,
		TenantSlug: user.Tenant.Slug,
	}
	validToken, err := maker.GenerateToken(principal)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		setupMock func(*MockUserRepository)
		wantErr   bool
	}{
		{
			name:  "валидный токен существующего пользователя",
			token: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserWithTenant", mock.Anything, user.User.ID).Return(user, nil)
			},
		},
		{
			name:  "валидный токен удалённого пользователя",
			token: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserWithTenant", mock.Anything, user.User.ID).
					Return(nil, repository.ErrNotFound)
			},
			wantErr: true,
		},
		{
			name:      "битый токен",
			token:     "invalid.token.here",
			setupMock: func(_ *MockUserRepository) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, maker)
			got, err := svc.Authenticate(context.Background(), tt.token)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnauthenticated)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, principal, *got)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate_StoreFailure(t *testing.T) {
	user := testUser(t)
	maker := jwt.NewJWTMaker("test_secret", time.Hour)

	token, err := maker.GenerateToken(models.Principal{UserID: user.User.ID})
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetUserWithTenant", mock.Anything, user.User.ID).
		Return(nil, errors.New("db down"))

	svc := NewAuthService(mockRepo, maker)
	_, err = svc.Authenticate(context.Background(), token)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}
