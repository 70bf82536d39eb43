// Package update реализует HTTP-обработчик обновления данных собаки.
// Галерея и альбомы при обновлении анкетных полей сохраняются.
package update

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

// Handler управляет HTTP-запросами на обновление собаки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления собаки.
type Service interface {
	Update(ctx context.Context, userUID, dogID string, req models.DummyDog) error
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
	const op = "handlers.dog.update"

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

	var req models.DummyDog
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

	if err := h.service.Update(r.Context(), userUID, dogID, req); err != nil {
		if errors.Is(err, dog.ErrDogNotFound) {
			log.Info("dog not found", slog.String("dog_id", dogID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("dog not found"))
			return
		}
		log.Error("failed to update dog", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update dog"))
		return
	}

	log.Info("dog updated", slog.String("dog_id", dogID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"dog_id": dogID,
	}))
}
