// Package remove реализует HTTP-обработчик удаления собаки вместе с её
// галереей и альбомами.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/services/dog"
)

// Handler управляет HTTP-запросами на удаление собаки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления собаки.
type Service interface {
	Remove(ctx context.Context, userUID, dogID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dog.remove"

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

	dogID := chi.URLParam(r, "dogID")
	if dogID == "" {
		log.Error("missing dog id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing dog id"))
		return
	}

	if err := h.service.Remove(r.Context(), userUID, dogID); err != nil {
		if errors.Is(err, dog.ErrDogNotFound) {
			log.Info("dog not found", slog.String("dog_id", dogID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("dog not found"))
			return
		}
		log.Error("failed to remove dog", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove dog"))
		return
	}

	log.Info("dog removed", slog.String("dog_id", dogID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"dog_id": dogID,
	}))
}
