// Package remove реализует HTTP-обработчик снятия акции с публикации.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
)

// Handler управляет HTTP-запросами на снятие акции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики снятия акции.
type Service interface {
	Remove(ctx context.Context, businessUID, dealID string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deal.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	businessUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || businessUID == "" {
		log.Error("failed to get user uid from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	dealID := chi.URLParam(r, "id")
	if dealID == "" {
		log.Error("missing deal id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing deal id"))
		return
	}

	removed, err := h.service.Remove(r.Context(), businessUID, dealID)
	if err != nil {
		log.Error("failed to remove deal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove deal"))
		return
	}

	log.Info("deal removed", slog.String("deal_id", dealID), slog.Int("removed_count", removed))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"removed_count": removed,
	}))
}
