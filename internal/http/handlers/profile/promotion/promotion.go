// Package promotion реализует HTTP-обработчик покупки уровня продвижения
// бизнес-аккаунта. Продвижение — отдельная ось от подписки владельца и
// не влияет на триальную блокировку, поэтому маршрут доступен
// заблокированным пользователям.
package promotion

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/models"
)

// Handler управляет HTTP-запросами на покупку продвижения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики продвижения.
type Service interface {
	PurchasePromotion(ctx context.Context, userUID string, tier models.PromotionTier) (*models.UserProfile, error)
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
// @Summary Купить продвижение бизнеса
// @Description Устанавливает уровень продвижения бизнес-аккаунта. Повторная покупка того же уровня идемпотентна.
// @Tags Promotion
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyPromotion true "Уровень продвижения"
// @Success 200 {object} models.UserProfile "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /profile/promotion [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.promotion"

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

	var req models.DummyPromotion
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

	profile, err := h.service.PurchasePromotion(r.Context(), userUID, models.PromotionTier(req.Tier))
	if err != nil {
		log.Error("failed to purchase promotion", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to purchase promotion"))
		return
	}

	log.Info("promotion purchased", slog.String("user_uid", userUID), slog.String("tier", req.Tier))
	render.JSON(w, r, response.OKWithData(profile))
}
