// Package remove реализует HTTP-обработчик удаления заметки.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/tenant-notes/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-notes/internal/http/response"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
	noteservice "github.com/magabrotheeeer/tenant-notes/internal/services/note"
)

// Service описывает интерфейс бизнес-логики удаления заметки.
type Service interface {
	Remove(ctx context.Context, p models.Principal, noteID string) error
}

// Handler обрабатывает запросы на удаление заметки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление заметки
// @Description Удаляет заметку по ID в пределах арендатора принципала.
// @Tags Notes
// @Security BearerAuth
// @Produce  json
// @Param id path string true "ID заметки"
// @Success 200 {object} response.MessageResponse "Заметка удалена"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /notes/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.remove"

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

	if err := h.service.Remove(r.Context(), principal, noteID); err != nil {
		if errors.Is(err, noteservice.ErrNoteNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Note not found"))
			return
		}
		log.Error("failed to remove note", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	log.Info("note removed", slog.String("note_id", noteID))
	render.JSON(w, r, response.Message("Note deleted successfully"))
}
