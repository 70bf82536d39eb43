// Package subscribe реализует HTTP-обработчик оформления платной подписки
// владельца. Успешная оплата переводит подписку в статус ACTIVE и снимает
// триальную блокировку, поэтому маршрут намеренно доступен заблокированным
// пользователям.
package subscribe

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

// Handler управляет HTTP-запросами на оформление подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подписки.
type Service interface {
	Subscribe(ctx context.Context, userUID string, tier models.SubscriptionTier) (*models.UserProfile, error)
	Quote(ctx context.Context, userUID string, tier models.SubscriptionTier) (float64, error)
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
// @Summary Оформить подписку владельца
// @Description Переводит подписку текущего пользователя в статус ACTIVE с выбранным тарифом. Повторный вызов с тем же тарифом идемпотентен.
// @Tags Subscription
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummySubscribe true "Тариф подписки"
// @Success 200 {object} map[string]any "Обновленный профиль и месячная стоимость"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /profile/subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.subscribe"

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

	var req models.DummySubscribe
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

	tier := models.SubscriptionTier(req.Tier)
	profile, err := h.service.Subscribe(r.Context(), userUID, tier)
	if err != nil {
		log.Error("failed to subscribe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to subscribe"))
		return
	}

	quote, err := h.service.Quote(r.Context(), userUID, tier)
	if err != nil {
		log.Error("failed to compute quote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to compute quote"))
		return
	}

	log.Info("subscription activated",
		slog.String("user_uid", userUID),
		slog.String("tier", req.Tier),
		slog.Float64("monthly_quote", quote))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"profile":       profile,
		"monthly_quote": quote,
	}))
}
