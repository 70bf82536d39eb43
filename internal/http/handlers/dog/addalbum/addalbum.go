// Package addalbum реализует HTTP-обработчик создания альбома воспоминаний.
// Альбом хранит идентификаторы вложений галереи; существование каждого
// идентификатора не проверяется.
package addalbum

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

// Handler управляет HTTP-запросами на создание альбома.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики альбомов.
type Service interface {
	AddAlbum(ctx context.Context, userUID, dogID string, req models.DummyAlbum) (string, error)
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
	const op = "handlers.dog.addalbum"

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

	var req models.DummyAlbum
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

	albumID, err := h.service.AddAlbum(r.Context(), userUID, dogID, req)
	if err != nil {
		if errors.Is(err, dog.ErrDogNotFound) {
			log.Info("dog not found", slog.String("dog_id", dogID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("dog not found"))
			return
		}
		log.Error("failed to add album", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add album"))
		return
	}

	log.Info("album added", slog.String("dog_id", dogID), slog.String("album_id", albumID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"album_id": albumID,
	}))
}
