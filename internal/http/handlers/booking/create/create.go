// Package create реализует HTTP-обработчик создания бронирования услуги.
//
// Handler принимает JSON-запрос с данными бронирования, валидирует их,
// извлекает имя владельца из контекста и вызывает бизнес-логику, которая
// фиксирует комиссию платформы в момент создания. Возвращает созданную
// запись вместе с разбиением суммы.
package create

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

// Handler управляет HTTP-запросами на создание бронирования.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики бронирований.
type Service interface {
	Create(ctx context.Context, ownerName string, req models.DummyBooking) (*models.Booking, error)
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
// @Summary Создать бронирование
// @Description Создает бронирование услуги и фиксирует комиссию платформы в момент создания. Возвращает запись с разбиением суммы на комиссию и выплату исполнителю.
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyBooking true "Данные бронирования"
// @Success 200 {object} models.Booking "Созданное бронирование"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /bookings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerName, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || ownerName == "" {
		log.Error("failed to get username from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	var req models.DummyBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("service_type", req.ServiceType))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	booking, err := h.service.Create(r.Context(), ownerName, req)
	if err != nil {
		log.Error("failed to create booking", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create booking"))
		return
	}

	log.Info("booking created",
		slog.String("booking_id", booking.ID),
		slog.Float64("total_amount", booking.TotalAmount),
		slog.Float64("platform_fee", booking.PlatformFee))
	render.JSON(w, r, response.OKWithData(booking))
}
