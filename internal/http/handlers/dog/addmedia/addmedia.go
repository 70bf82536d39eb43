// Package addmedia реализует HTTP-обработчик добавления вложения в галерею собаки.
package addmedia

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/models"
	"github.com/godogapp/godog/internal/services/dog"
)

// Handler управляет HTTP-запросами на добавление вложения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики галереи.
type Service interface {
	AddMedia(ctx context.Context, userUID, dogID string, req models.DummyMedia) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dog.addmedia"

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

	var req models.DummyMedia
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	mediaID, err := h.service.AddMedia(r.Context(), userUID, dogID, req)
	if err != nil {
		if errors.Is(err, dog.ErrDogNotFound) {
			log.Info("dog not found", slog.String("dog_id", dogID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("dog not found"))
			return
		}
		log.Error("failed to add media", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add media"))
		return
	}

	log.Info("media added", slog.String("dog_id", dogID), slog.String("media_id", mediaID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"media_id": mediaID,
	}))
}
