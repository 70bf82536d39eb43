// Package create реализует HTTP-обработчик публикации акции бизнес-аккаунта.
// На бизнес действует лимит активных акций; превышение отклоняется.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/models"
	"github.com/godogapp/godog/internal/services/deal"
)

// Handler управляет HTTP-запросами на публикацию акции.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики акций.
type Service interface {
	Create(ctx context.Context, businessUID, businessName string, req models.DummyDeal) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Опубликовать акцию
// @Description Публикует акцию от имени текущего бизнес-аккаунта. При достижении лимита акций возвращает 409.
// @Tags Deals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyDeal true "Данные акции"
// @Success 200 {object} map[string]any "Успешная публикация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Достигнут лимит акций"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /deals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deal.create"

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
	businessName, _ := r.Context().Value(middlewarectx.User).(string)

	var req models.DummyDeal
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

	dealID, err := h.service.Create(r.Context(), businessUID, businessName, req)
	if err != nil {
		if errors.Is(err, deal.ErrDealLimit) {
			log.Info("deal limit reached", slog.String("business_uid", businessUID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("deal limit reached"))
			return
		}
		log.Error("failed to create deal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create deal"))
		return
	}

	log.Info("deal created", slog.String("business_uid", businessUID), slog.String("deal_id", dealID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deal_id": dealID,
	}))
}
