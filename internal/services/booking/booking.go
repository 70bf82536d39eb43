// Package booking содержит бизнес-логику бронирований: создание с расчетом
// комиссии платформы, форвардные переходы статуса и выборки для исполнителя.
// Производные поля бронирования считает движок комиссии, поэтому равенство
// total == fee + net выполняется точно.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/godogapp/godog/internal/commission"
	"github.com/godogapp/godog/internal/lib/ident"
	"github.com/godogapp/godog/internal/metrics"
	"github.com/godogapp/godog/internal/models"
	"github.com/godogapp/godog/internal/rabbitmq"
)

// ErrStatusRegression возвращается при попытке откатить статус бронирования.
var ErrStatusRegression = errors.New("booking status cannot move backwards")

// Repository определяет методы хранилища бронирований.
type Repository interface {
	CreateBooking(ctx context.Context, b models.Booking) (string, error)
	ReadBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (int, error)
	ListBookingsByWalker(ctx context.Context, walkerID string, limit, offset int) ([]models.Booking, error)
}

// EventPublisher публикует доменные события в брокер.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Event сообщение о подтвержденном бронировании для очереди уведомлений.
type Event struct {
	BookingID      string    `json:"booking_id"`
	WalkerID       string    `json:"walker_id"`
	OwnerName      string    `json:"owner_name"`
	DogName        string    `json:"dog_name"`
	ServiceType    string    `json:"service_type"`
	StartTime      time.Time `json:"start_time"`
	TotalAmount    float64   `json:"total_amount"`
	WalkerEarnings float64   `json:"walker_earnings"`
}

// Service реализует операции над бронированиями.
type Service struct {
	repo           Repository
	publisher      EventPublisher
	ids            ident.Generator
	commissionRate float64
	log            *slog.Logger
}

// New создает новый Service с фиксированной ставкой комиссии.
func New(repo Repository, publisher EventPublisher, ids ident.Generator, commissionRate float64, log *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		publisher:      publisher,
		ids:            ids,
		commissionRate: commissionRate,
		log:            log,
	}
}

// Create создает подтвержденное бронирование: сумма делится на сбор
// платформы и заработок исполнителя, событие уходит в очередь уведомлений.
func (s *Service) Create(ctx context.Context, ownerName string, req models.DummyBooking) (*models.Booking, error) {
	const op = "booking.Create"

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start time: %w", op, err)
	}

	split, err := commission.SplitPayment(req.TotalAmount, s.commissionRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b := models.Booking{
		ID:             s.ids.NewID(),
		WalkerID:       req.WalkerID,
		OwnerName:      ownerName,
		DogID:          req.DogID,
		DogName:        req.DogName,
		ServiceType:    req.ServiceType,
		StartTime:      startTime,
		TotalAmount:    req.TotalAmount,
		PlatformFee:    split.Fee,
		WalkerEarnings: split.Net,
		Status:         models.BookingConfirmed,
	}

	if _, err := s.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	metrics.CommissionCollected.Add(split.Fee)
	s.log.Info("booking created",
		slog.String("id", b.ID),
		slog.String("walker_id", b.WalkerID),
		slog.Float64("total", b.TotalAmount),
		slog.Float64("fee", b.PlatformFee))

	event := Event{
		BookingID:      b.ID,
		WalkerID:       b.WalkerID,
		OwnerName:      b.OwnerName,
		DogName:        b.DogName,
		ServiceType:    b.ServiceType,
		StartTime:      b.StartTime,
		TotalAmount:    b.TotalAmount,
		WalkerEarnings: b.WalkerEarnings,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingBookingConfirmed, event); err != nil {
		s.log.Warn("failed to publish booking event", slog.String("id", b.ID), slog.Any("err", err))
	}

	return &b, nil
}

// UpdateStatus переводит бронирование в новый статус. Допускаются только
// движения вперед по цепочке pending -> confirmed -> completed.
func (s *Service) UpdateStatus(ctx context.Context, id string, next models.BookingStatus) error {
	const op = "booking.UpdateStatus"

	current, err := s.repo.ReadBooking(ctx, id)
	if err != nil {
		return err
	}
	if next.Rank() < current.Status.Rank() {
		return fmt.Errorf("%s: %w: %s -> %s", op, ErrStatusRegression, current.Status, next)
	}
	if next == current.Status {
		return nil
	}

	if _, err := s.repo.UpdateBookingStatus(ctx, id, next); err != nil {
		return err
	}
	s.log.Info("booking status updated", slog.String("id", id), slog.String("status", string(next)))
	return nil
}

// ListByWalker возвращает бронирования исполнителя с пагинацией.
func (s *Service) ListByWalker(ctx context.Context, walkerID string, limit, offset int) ([]models.Booking, error) {
	return s.repo.ListBookingsByWalker(ctx, walkerID, limit, offset)
}
