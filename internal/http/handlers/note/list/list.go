// Package list реализует HTTP-обработчик списка заметок арендатора.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tenant-notes/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-notes/internal/http/response"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

// Service описывает интерфейс бизнес-логики списка заметок.
type Service interface {
	List(ctx context.Context, p models.Principal) ([]*models.Note, error)
}

// Handler обрабатывает запросы на получение списка заметок.
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
// @Summary Список заметок
// @Description Возвращает все заметки арендатора принципала, новые первыми, с email автора.
// @Tags Notes
// @Security BearerAuth
// @Produce  json
// @Success 200 {array} models.Note "Заметки арендатора"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.list"

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

	notes, err := h.service.List(r.Context(), principal)
	if err != nil {
		log.Error("failed to list notes", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	log.Info("notes listed", slog.Int("count", len(notes)))
	render.JSON(w, r, notes)
}
