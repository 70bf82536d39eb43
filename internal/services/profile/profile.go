// Package profile содержит бизнес-логику работы с профилем пользователя:
// чтение и обновление снимка, оформление подписки владельца, покупка
// продвижения и дополнения акций для бизнеса, сводка пробного периода.
// Все мутации проходят через машину состояний жизненного цикла, блокировка
// считается политикой на каждое обращение и нигде не хранится.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/godogapp/godog/internal/lib/clock"
	"github.com/godogapp/godog/internal/lifecycle"
	"github.com/godogapp/godog/internal/metrics"
	"github.com/godogapp/godog/internal/models"
	"github.com/godogapp/godog/internal/policy"
	"github.com/godogapp/godog/internal/rabbitmq"
)

// trialExpiryNoticeDays за сколько дней до конца пробного периода
// уходит событие trial.expiring.
const trialExpiryNoticeDays = 7

// Repository определяет методы хранилища профилей. Снимок заменяется
// целиком, последняя запись побеждает.
type Repository interface {
	// GetProfile возвращает профиль по UUID пользователя.
	GetProfile(ctx context.Context, userUID string) (*models.UserProfile, error)
	// PutProfile сохраняет профиль полной заменой.
	PutProfile(ctx context.Context, userUID string, profile models.UserProfile) error
	// GetDogs возвращает домохозяйство пользователя.
	GetDogs(ctx context.Context, userUID string) ([]models.Dog, error)
	// RecordOwnerQuote фиксирует месячную котировку активной подписки.
	RecordOwnerQuote(ctx context.Context, userUID string, monthlyQuote float64) error
}

// Cache описывает методы для кэширования снимков профиля.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventPublisher публикует доменные события в брокер.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует операции над профилем.
type Service struct {
	repo      Repository
	cache     Cache
	publisher EventPublisher
	policy    *policy.Policy
	lifecycle *lifecycle.Lifecycle
	clock     clock.Clock
	log       *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, publisher EventPublisher, p *policy.Policy, lc *lifecycle.Lifecycle, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		policy:    p,
		lifecycle: lc,
		clock:     clk,
		log:       log,
	}
}

func cacheKey(userUID string) string {
	return fmt.Sprintf("profile:%s", userUID)
}

// Get возвращает профиль пользователя, используя кеш или репозиторий.
func (s *Service) Get(ctx context.Context, userUID string) (*models.UserProfile, error) {
	var cached *models.UserProfile
	found, err := s.cache.Get(cacheKey(userUID), &cached)
	if err != nil {
		s.log.Warn("profile cache read failed", slog.String("key", cacheKey(userUID)), slog.Any("err", err))
	}
	if found && cached != nil {
		return cached, nil
	}

	profile, err := s.repo.GetProfile(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(userUID), profile, time.Hour); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", cacheKey(userUID)), slog.Any("err", err))
	}
	return profile, nil
}

// save сохраняет новый снимок профиля и инвалидирует кеш.
func (s *Service) save(ctx context.Context, userUID string, profile models.UserProfile) error {
	if err := s.repo.PutProfile(ctx, userUID, profile); err != nil {
		return err
	}
	if err := s.cache.Invalidate(cacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("key", cacheKey(userUID)), slog.Any("err", err))
	}
	return nil
}

// Update обновляет анкетные поля профиля. Роль, даты регистрации и
// статусные поля запросом не меняются.
func (s *Service) Update(ctx context.Context, userUID string, req models.DummyProfileUpdate) (*models.UserProfile, error) {
	current, err := s.Get(ctx, userUID)
	if err != nil {
		return nil, err
	}

	next := *current
	next.FirstName = req.FirstName
	next.LastName = req.LastName
	next.City = req.City
	next.Collaborators = req.Collaborators

	if err := s.save(ctx, userUID, next); err != nil {
		return nil, err
	}
	s.log.Info("profile updated", slog.String("user_uid", userUID))
	return &next, nil
}

// Subscribe оформляет подписку владельца: статус становится ACTIVE,
// тариф фиксируется, месячная котировка записывается в выручку владельцев.
// Повторный вызов с тем же тарифом безопасен.
func (s *Service) Subscribe(ctx context.Context, userUID string, tier models.SubscriptionTier) (*models.UserProfile, error) {
	current, err := s.Get(ctx, userUID)
	if err != nil {
		return nil, err
	}

	next := s.lifecycle.Subscribe(*current, tier)
	if err := s.save(ctx, userUID, next); err != nil {
		return nil, err
	}

	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		s.log.Warn("failed to load dogs for quote", slog.String("user_uid", userUID), slog.Any("err", err))
		dogs = nil
	}
	quote := s.policy.SubscriptionQuote(next, len(dogs), tier)
	if err := s.repo.RecordOwnerQuote(ctx, userUID, quote); err != nil {
		s.log.Warn("failed to record owner quote", slog.String("user_uid", userUID), slog.Any("err", err))
	}

	metrics.Subscriptions.WithLabelValues(string(tier)).Inc()
	s.log.Info("owner subscribed",
		slog.String("user_uid", userUID),
		slog.String("tier", string(tier)),
		slog.Float64("monthly_quote", quote))
	return &next, nil
}

// PurchasePromotion поднимает уровень продвижения бизнес-профиля.
func (s *Service) PurchasePromotion(ctx context.Context, userUID string, tier models.PromotionTier) (*models.UserProfile, error) {
	current, err := s.Get(ctx, userUID)
	if err != nil {
		return nil, err
	}

	next := s.lifecycle.PurchasePromotion(*current, tier)
	if err := s.save(ctx, userUID, next); err != nil {
		return nil, err
	}
	s.log.Info("promotion purchased", slog.String("user_uid", userUID), slog.String("tier", string(tier)))
	return &next, nil
}

// PurchaseAddon включает дополнение "куб акций". Уровень продвижения
// не проверяется: покупка разрешена и на FREE.
func (s *Service) PurchaseAddon(ctx context.Context, userUID string, tier models.AddonTier) (*models.UserProfile, error) {
	current, err := s.Get(ctx, userUID)
	if err != nil {
		return nil, err
	}

	next := s.lifecycle.PurchaseAddon(*current, tier)
	if err := s.save(ctx, userUID, next); err != nil {
		return nil, err
	}
	s.log.Info("promotions addon purchased", slog.String("user_uid", userUID), slog.String("tier", string(tier)))
	return &next, nil
}

// TrialStatus возвращает сводку пробного периода на текущий момент.
// Когда до конца триала остается мало дней, в брокер уходит событие
// trial.expiring; сбой публикации не ломает ответ.
func (s *Service) TrialStatus(ctx context.Context, userUID string) (models.TrialStatus, error) {
	current, err := s.Get(ctx, userUID)
	if err != nil {
		return models.TrialStatus{}, err
	}
	status, err := s.policy.TrialStatus(*current, s.clock.Now())
	if err != nil {
		return models.TrialStatus{}, err
	}

	if remaining, expiring := trialRemaining(*current, status); expiring && remaining <= trialExpiryNoticeDays {
		event := map[string]any{
			"user_uid":       userUID,
			"role":           current.UserRole,
			"remaining_days": remaining,
		}
		if err := s.publisher.Publish(rabbitmq.RoutingTrialExpiring, event); err != nil {
			s.log.Warn("failed to publish trial expiring event",
				slog.String("user_uid", userUID), slog.Any("err", err))
		}
	}
	return status, nil
}

// trialRemaining возвращает оставшиеся дни по оси, которая управляет
// блокировкой роли, и флаг, что триал вообще идет.
func trialRemaining(profile models.UserProfile, status models.TrialStatus) (int, bool) {
	switch {
	case profile.UserRole.IsBusiness() && profile.PromotionTier == models.PromotionFree:
		return status.RemainingBusinessDays, !status.Blocked
	case profile.UserRole == models.RoleOwner && profile.SubscriptionStatus == models.StatusTrial:
		return status.RemainingOwnerDays, !status.Blocked
	default:
		return 0, false
	}
}

// BlockStatus отвечает, закрыт ли пользователю доступ, и возвращает роль
// для метрики отказов. Ошибка дат трактуется как блокировка.
func (s *Service) BlockStatus(ctx context.Context, userUID string) (bool, models.UserRole, error) {
	current, err := s.Get(ctx, userUID)
	if err != nil {
		return false, "", err
	}
	blocked, err := s.lifecycle.BlockCheck(*current, s.clock.Now())
	if err != nil {
		s.log.Error("block check failed closed", slog.String("user_uid", userUID), slog.Any("err", err))
	}
	return blocked, current.UserRole, nil
}

// Quote возвращает месячную стоимость подписки для профиля и его
// домохозяйства по выбранному тарифу.
func (s *Service) Quote(ctx context.Context, userUID string, tier models.SubscriptionTier) (float64, error) {
	current, err := s.Get(ctx, userUID)
	if err != nil {
		return 0, err
	}
	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		return 0, err
	}
	return s.policy.SubscriptionQuote(*current, len(dogs), tier), nil
}
