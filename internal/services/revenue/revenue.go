// Package revenue собирает административную сводку выручки платформы
// из четырех независимых потоков: комиссии бронирований, фиксированные
// сборы за продвижение бизнесов, сборы за дополнение акций и выручка
// подписок владельцев.
package revenue

import (
	"context"
	"log/slog"

	"github.com/godogapp/godog/internal/commission"
	"github.com/godogapp/godog/internal/config"
	"github.com/godogapp/godog/internal/models"
)

// Repository определяет выборки, нужные для сводки.
type Repository interface {
	ListAllBookings(ctx context.Context, limit, offset int) ([]models.Booking, error)
	CountPromotedBusinesses(ctx context.Context) (int, error)
	CountAddonBusinesses(ctx context.Context) (int, error)
	SumActiveOwnerQuotes(ctx context.Context) (float64, error)
}

// Service реализует построение сводки.
type Service struct {
	repo  Repository
	rules config.Billing
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, rules config.Billing, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		rules: rules,
		log:   log,
	}
}

// reportBookingLimit верхняя граница выборки бронирований для сводки.
const reportBookingLimit = 10000

// BuildReport собирает сводку выручки на текущий момент.
func (s *Service) BuildReport(ctx context.Context) (models.RevenueReport, error) {
	bookings, err := s.repo.ListAllBookings(ctx, reportBookingLimit, 0)
	if err != nil {
		return models.RevenueReport{}, err
	}
	promoted, err := s.repo.CountPromotedBusinesses(ctx)
	if err != nil {
		return models.RevenueReport{}, err
	}
	addons, err := s.repo.CountAddonBusinesses(ctx)
	if err != nil {
		return models.RevenueReport{}, err
	}
	ownerRevenue, err := s.repo.SumActiveOwnerQuotes(ctx)
	if err != nil {
		return models.RevenueReport{}, err
	}

	report := commission.BuildReport(commission.ReportInput{
		Bookings:           bookings,
		PromotedBusinesses: promoted,
		AddonBusinesses:    addons,
		PromotionMonthly:   s.rules.BusinessPromotionMonthly,
		AddonMonthly:       s.rules.AddonPriceMonthly,
		OwnerRevenue:       ownerRevenue,
	})
	s.log.Info("revenue report built",
		slog.Float64("total", report.Total),
		slog.Int("bookings", len(bookings)))
	return report, nil
}
