// Package revenue реализует HTTP-обработчик административной сводки выручки.
// Маршрут доступен только роли ADMIN.
package revenue

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/models"
)

// Handler управляет HTTP-запросами на сводку выручки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс построения сводки.
type Service interface {
	BuildReport(ctx context.Context) (models.RevenueReport, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка выручки платформы
// @Description Возвращает сводку по четырем потокам выручки: комиссии бронирований, продвижение бизнесов, дополнение акций и подписки владельцев. Только для администратора.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.RevenueReport "Сводка выручки"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/revenue [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.revenue"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	role, _ := r.Context().Value(middlewarectx.Role).(string)
	if role != string(models.RoleAdmin) {
		log.Info("revenue report denied", slog.String("role", role))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("admin role required"))
		return
	}

	report, err := h.service.BuildReport(r.Context())
	if err != nil {
		log.Error("failed to build revenue report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build revenue report"))
		return
	}

	render.JSON(w, r, response.OKWithData(report))
}
