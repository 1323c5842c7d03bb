// Package update реализует HTTP-обработчик обновления заметки.
//
// Меняются только заголовок и содержимое; принадлежность заметки арендатору
// и автору не изменяется. Проверка существования та же, что и при чтении:
// чужая заметка неотличима от несуществующей.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/tenant-notes/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-notes/internal/http/response"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
	noteservice "github.com/magabrotheeeer/tenant-notes/internal/services/note"
)

// Request — структура входных данных для обновления заметки.
type Request struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// Service описывает интерфейс бизнес-логики обновления заметки.
type Service interface {
	Update(ctx context.Context, p models.Principal, noteID, title, content string) (*models.Note, error)
}

// Handler обрабатывает запросы на обновление заметки.
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
// @Summary Обновление заметки
// @Description Обновляет заголовок и содержимое заметки в пределах арендатора принципала.
// @Tags Notes
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path string true "ID заметки"
// @Param request body Request true "Новые данные заметки"
// @Success 200 {object} models.Note "Обновленная заметка"
// @Failure 400 {object} response.ErrorResponse "Отсутствует заголовок"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /notes/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.update"

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

	noteID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(noteID); err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Note not found"))
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

	note, err := h.service.Update(r.Context(), principal, noteID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, noteservice.ErrNoteNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Note not found"))
			return
		}
		log.Error("failed to update note", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	log.Info("note updated", slog.String("note_id", note.ID))
	render.JSON(w, r, note)
}
