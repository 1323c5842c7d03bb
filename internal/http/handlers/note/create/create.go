// Package create реализует HTTP-обработчик создания заметки.
//
// Заметка создаётся от имени принципала запроса и привязывается к его
// арендатору. На тарифе FREE действует лимит количества заметок: при его
// превышении возвращается 403 с подсказкой обновить тариф.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tenant-notes/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-notes/internal/http/response"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
	noteservice "github.com/magabrotheeeer/tenant-notes/internal/services/note"
)

// Request — структура входных данных для создания заметки.
// Content необязателен: отсутствующее содержимое сохраняется пустой строкой.
type Request struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// Service описывает интерфейс бизнес-логики создания заметки.
type Service interface {
	Create(ctx context.Context, p models.Principal, title, content string) (*models.Note, error)
}

// Handler обрабатывает запросы на создание заметки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание заметки
// @Description Создает заметку в арендаторе принципала. На тарифе FREE — не более 3 заметок.
// @Tags Notes
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные заметки"
// @Success 201 {object} models.Note "Созданная заметка"
// @Failure 400 {object} response.ErrorResponse "Отсутствует заголовок"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Достигнут лимит тарифа"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /notes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal, ok := middlewarectx.Principal(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Title is required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Title is required"))
		return
	}

	note, err := h.service.Create(r.Context(), principal, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, noteservice.ErrNoteLimitReached) {
			log.Info("note limit reached", slog.String("tenant_id", principal.TenantID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Note limit reached. Upgrade to Pro for unlimited notes."))
			return
		}
		log.Error("failed to create note", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	log.Info("note created", slog.String("note_id", note.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, note)
}
