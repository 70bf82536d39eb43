// Package updatestatus реализует HTTP-обработчик смены статуса бронирования.
// Статус движется только вперед: pending, confirmed, completed. Попытка
// отката отклоняется, повтор текущего статуса проходит без изменений.
package updatestatus

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

	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/models"
	"github.com/godogapp/godog/internal/services/booking"
	"github.com/godogapp/godog/internal/storage/repository"
)

// Handler управляет HTTP-запросами на смену статуса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, id string, next models.BookingStatus) error
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
// @Summary Сменить статус бронирования
// @Description Переводит бронирование в следующий статус. Откат назад запрещен.
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID бронирования"
// @Param request body models.DummyBookingStatus true "Новый статус"
// @Success 200 {object} map[string]any "Статус обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Бронирование не найдено"
// @Failure 409 {object} response.ErrorResponse "Откат статуса запрещен"
// @Router /bookings/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.updatestatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing booking id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing booking id"))
		return
	}

	var req models.DummyBookingStatus
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

	err := h.service.UpdateStatus(r.Context(), id, models.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			log.Info("booking not found", slog.String("booking_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("booking not found"))
		case errors.Is(err, booking.ErrStatusRegression):
			log.Info("status regression rejected",
				slog.String("booking_id", id),
				slog.String("requested", req.Status))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("booking status cannot move backwards"))
		default:
			log.Error("failed to update booking status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update booking status"))
		}
		return
	}

	log.Info("booking status updated", slog.String("booking_id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"booking_id": id,
		"status":     req.Status,
	}))
}
