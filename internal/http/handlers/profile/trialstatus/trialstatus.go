// Package trialstatus реализует HTTP-обработчик сводки по пробному периоду.
// Сводка вычисляется на момент запроса и нигде не хранится, поэтому маршрут
// доступен заблокированным пользователям: клиент показывает по ней экран оплаты.
package trialstatus

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

// Handler управляет HTTP-запросами на сводку пробного периода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	TrialStatus(ctx context.Context, userUID string) (models.TrialStatus, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка пробного периода
// @Description Возвращает возраст триала, оставшиеся дни по границам владельца и бизнеса и флаг блокировки.
// @Tags Profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.TrialStatus "Сводка пробного периода"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /profile/trial-status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.trialstatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("failed to get user uid from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	status, err := h.service.TrialStatus(r.Context(), userUID)
	if err != nil {
		log.Error("failed to compute trial status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to compute trial status"))
		return
	}

	render.JSON(w, r, response.OKWithData(status))
}
