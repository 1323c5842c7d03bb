// Package read реализует HTTP-обработчик получения заметки по ID.
//
// Заметка ищется строго в пределах арендатора принципала: заметка чужого
// арендатора даёт тот же ответ 404, что и несуществующий ID.
package read

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

// Service описывает интерфейс бизнес-логики чтения заметки.
type Service interface {
	Get(ctx context.Context, p models.Principal, noteID string) (*models.Note, error)
}

// Handler обрабатывает запросы на получение заметки по ID.
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
// @Summary Получение заметки
// @Description Возвращает заметку по ID в пределах арендатора принципала.
// @Tags Notes
// @Security BearerAuth
// @Produce  json
// @Param id path string true "ID заметки"
// @Success 200 {object} models.Note "Заметка"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /notes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.read"

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
		// Невалидный ID неотличим от несуществующего.
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Note not found"))
		return
	}

	note, err := h.service.Get(r.Context(), principal, noteID)
	if err != nil {
		if errors.Is(err, noteservice.ErrNoteNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Note not found"))
			return
		}
		log.Error("failed to read note", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}

	log.Info("note read", slog.String("note_id", note.ID))
	render.JSON(w, r, note)
}
