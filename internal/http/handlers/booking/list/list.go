// Package list реализует HTTP-обработчик списка бронирований исполнителя.
// Исполнитель видит только свои бронирования; walker_id берется из контекста.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/models"
)

// Handler управляет HTTP-запросами на список бронирований.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка бронирований.
type Service interface {
	ListByWalker(ctx context.Context, walkerID string, limit, offset int) ([]models.Booking, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ServeHTTP godoc
// @Summary Список бронирований исполнителя
// @Description Возвращает бронирования текущего исполнителя с пагинацией через query-параметры limit и offset.
// @Tags Bookings
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение выборки"
// @Success 200 {array} models.Booking "Список бронирований"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /bookings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	walkerID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || walkerID == "" {
		log.Error("failed to get user uid from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxLimit {
			log.Error("invalid limit", slog.String("limit", v))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Error("invalid offset", slog.String("offset", v))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid offset"))
			return
		}
		offset = n
	}

	bookings, err := h.service.ListByWalker(r.Context(), walkerID, limit, offset)
	if err != nil {
		log.Error("failed to list bookings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list bookings"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"bookings": bookings,
		"count":    len(bookings),
	}))
}
