package remove

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/tenant-notes/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
	noteservice "github.com/magabrotheeeer/tenant-notes/internal/services/note"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, p models.Principal, noteID string) error {
	args := m.Called(ctx, p, noteID)
	return args.Error(0)
}

var testPrincipal = models.Principal{
	UserID:     "0d9e5a11-7c2b-4f6d-8e3a-aa55bb66cc77",
	Email:      "user@acme.test",
	Role:       models.RoleMember,
	TenantID:   "d3f1c2aa-51f0-4de2-9c1e-0a1b2c3d4e5f",
	TenantSlug: "acme",
}

const noteID = "f0a1b2c3-d4e5-4f60-8172-93a4b5c6d7e8"

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		noteID         string
		withPrincipal  bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:          "успешное удаление",
			noteID:        noteID,
			withPrincipal: true,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, testPrincipal, noteID).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Note deleted successfully"`,
		},
		{
			name:          "заметка не найдена",
			noteID:        noteID,
			withPrincipal: true,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, testPrincipal, noteID).
					Return(noteservice.ErrNoteNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"Note not found"`,
		},
		{
			name:           "невалидный id в URL",
			noteID:         "not-a-uuid",
			withPrincipal:  true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"Note not found"`,
		},
		{
			name:           "нет принципала",
			noteID:         noteID,
			withPrincipal:  false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"Unauthorized"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/notes/"+tt.noteID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.noteID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.withPrincipal {
				req = req.WithContext(context.WithValue(req.Context(),
					middlewarectx.PrincipalKey, testPrincipal))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
