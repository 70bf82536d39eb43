// Package deal содержит бизнес-логику маркетинговых акций бизнеса.
// На бизнес допускается ограниченное число живых акций; лимит проверяется
// до вставки, мутация при нарушении не происходит.
package deal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/godogapp/godog/internal/lib/ident"
	"github.com/godogapp/godog/internal/models"
)

// ErrDealLimit возвращается при попытке создать акцию сверх лимита.
var ErrDealLimit = errors.New("deal limit reached for business")

// Repository определяет методы хранилища акций.
type Repository interface {
	CreateDeal(ctx context.Context, businessUID string, deal models.Deal) (string, error)
	CountDealsByBusiness(ctx context.Context, businessUID string) (int, error)
	ListDealsByBusiness(ctx context.Context, businessUID string) ([]models.Deal, error)
	RemoveDeal(ctx context.Context, businessUID, dealID string) (int, error)
}

// Service реализует операции над акциями.
type Service struct {
	repo     Repository
	ids      ident.Generator
	maxDeals int
	log      *slog.Logger
}

// New создает новый Service с лимитом живых акций на бизнес.
func New(repo Repository, ids ident.Generator, maxDeals int, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		ids:      ids,
		maxDeals: maxDeals,
		log:      log,
	}
}

// Create создает акцию бизнеса, если лимит живых акций не исчерпан,
// и возвращает её ID.
func (s *Service) Create(ctx context.Context, businessUID, businessName string, req models.DummyDeal) (string, error) {
	const op = "deal.Create"

	count, err := s.repo.CountDealsByBusiness(ctx, businessUID)
	if err != nil {
		return "", err
	}
	if count >= s.maxDeals {
		return "", fmt.Errorf("%s: %w: %d", op, ErrDealLimit, count)
	}

	d := models.Deal{
		ID:           s.ids.NewID(),
		Title:        req.Title,
		Description:  req.Description,
		Images:       req.Images,
		BusinessID:   businessUID,
		BusinessName: businessName,
		Category:     req.Category,
		City:         req.City,
	}

	id, err := s.repo.CreateDeal(ctx, businessUID, d)
	if err != nil {
		return "", err
	}
	s.log.Info("deal created", slog.String("business_uid", businessUID), slog.String("deal_id", id))
	return id, nil
}

// List возвращает акции бизнеса в порядке создания.
func (s *Service) List(ctx context.Context, businessUID string) ([]models.Deal, error) {
	return s.repo.ListDealsByBusiness(ctx, businessUID)
}

// Remove удаляет акцию бизнеса.
func (s *Service) Remove(ctx context.Context, businessUID, dealID string) (int, error) {
	return s.repo.RemoveDeal(ctx, businessUID, dealID)
}
