// Package quote реализует HTTP-обработчик предварительного расчета месячной
// стоимости подписки владельца по выбранному тарифу, без оформления.
package quote

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/models"
)

// Handler управляет HTTP-запросами на расчет стоимости.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчета.
type Service interface {
	Quote(ctx context.Context, userUID string, tier models.SubscriptionTier) (float64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Рассчитать стоимость подписки
// @Description Возвращает месячную стоимость подписки владельца по тарифу из query-параметра tier с учетом лестницы собак и доплаты за коллабораторов.
// @Tags Subscription
// @Produce  json
// @Security BearerAuth
// @Param tier query string true "Тариф подписки" Enums(MONTHLY, ANNUAL)
// @Success 200 {object} map[string]any "Месячная стоимость"
// @Failure 400 {object} response.ErrorResponse "Неподдерживаемый тариф"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /profile/quote [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.quote"

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

	tier := models.SubscriptionTier(r.URL.Query().Get("tier"))
	if tier != models.TierMonthly && tier != models.TierAnnual {
		log.Error("unsupported tier", slog.String("tier", string(tier)))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unsupported tier"))
		return
	}

	quote, err := h.service.Quote(r.Context(), userUID, tier)
	if err != nil {
		log.Error("failed to compute quote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to compute quote"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"tier":          tier,
		"monthly_quote": quote,
	}))
}
