// Package daily реализует HTTP-обработчик совета дня по уходу за собакой.
// Обработчик никогда не отдает ошибку: при недоступности внешнего API
// сервис возвращает запасной совет.
package daily

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/godogapp/godog/internal/http/response"
)

// Handler управляет HTTP-запросами на совет дня.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс источника советов.
type Service interface {
	DailyTip(ctx context.Context) string
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.advice.daily"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tip := h.service.DailyTip(r.Context())

	log.Info("daily tip served")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"tip": tip,
	}))
}
