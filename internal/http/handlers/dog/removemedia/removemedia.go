// Package removemedia реализует HTTP-обработчик удаления вложения из галереи.
// Ссылки на вложение в альбомах намеренно не чистятся: альбом допускает
// висячие идентификаторы.
package removemedia

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

// Handler управляет HTTP-запросами на удаление вложения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики галереи.
type Service interface {
	RemoveMedia(ctx context.Context, userUID, dogID, mediaID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dog.removemedia"

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
	mediaID := chi.URLParam(r, "mediaID")
	if dogID == "" || mediaID == "" {
		log.Error("missing dog id or media id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing dog id or media id"))
		return
	}

	if err := h.service.RemoveMedia(r.Context(), userUID, dogID, mediaID); err != nil {
		if errors.Is(err, dog.ErrDogNotFound) {
			log.Info("dog not found", slog.String("dog_id", dogID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("dog not found"))
			return
		}
		log.Error("failed to remove media", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove media"))
		return
	}

	log.Info("media removed", slog.String("dog_id", dogID), slog.String("media_id", mediaID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"media_id": mediaID,
	}))
}
