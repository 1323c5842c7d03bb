// Package upgrade реализует HTTP-обработчик перевода арендатора на тариф PRO.
//
// Операция доступна только администратору и только для его собственного
// арендатора: попытка обновить чужой существующий арендатор по slug даёт
// forbidden, а не not found.
package upgrade

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tenant-notes/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-notes/internal/http/response"
	"github.com/magabrotheeeer/tenant-notes/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-notes/internal/models"
	tenantservice "github.com/magabrotheeeer/tenant-notes/internal/services/tenant"
)

// ResponseBody — тело успешного ответа об обновлении тарифа.
type ResponseBody struct {
	Message string        `json:"message"`
	Tenant  models.Tenant `json:"tenant"`
}

// Service описывает интерфейс бизнес-логики обновления тарифа.
type Service interface {
	Upgrade(ctx context.Context, p models.Principal, slug string) (*models.Tenant, error)
}

// Handler обрабатывает запросы на обновление тарифа арендатора.
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
// @Summary Перевод арендатора на PRO
// @Description Переводит собственного арендатора администратора на тариф PRO и обновляет подписку.
// @Tags Tenants
// @Security BearerAuth
// @Produce  json
// @Param slug path string true "Slug арендатора"
// @Success 200 {object} ResponseBody "Арендатор обновлен"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Не администратор либо чужой арендатор"
// @Failure 404 {object} response.ErrorResponse "Арендатор не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /tenants/{slug}/upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tenant.upgrade"

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

	slug := chi.URLParam(r, "slug")

	tenant, err := h.service.Upgrade(r.Context(), principal, slug)
	if err != nil {
		switch {
		case errors.Is(err, tenantservice.ErrNotAdmin):
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Forbidden - Admin access required"))
		case errors.Is(err, tenantservice.ErrForeignTenant):
			log.Warn("cross-tenant upgrade attempt",
				slog.String("principal_tenant", principal.TenantSlug),
				slog.String("target_slug", slug))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Forbidden - Access denied"))
		case errors.Is(err, tenantservice.ErrTenantNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Tenant not found"))
		default:
			log.Error("failed to upgrade tenant", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Internal server error"))
		}
		return
	}

	log.Info("tenant upgraded", slog.String("tenant_slug", tenant.Slug))
	render.JSON(w, r, ResponseBody{
		Message: "Tenant upgraded to Pro successfully",
		Tenant:  *tenant,
	})
}
