package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/godogapp/godog/internal/config"
	"github.com/godogapp/godog/internal/lib/clock"
	"github.com/godogapp/godog/internal/lifecycle"
	"github.com/godogapp/godog/internal/models"
	"github.com/godogapp/godog/internal/policy"
	"github.com/godogapp/godog/internal/rabbitmq"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetProfile(ctx context.Context, userUID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}
func (m *RepoMock) PutProfile(ctx context.Context, userUID string, profile models.UserProfile) error {
	return m.Called(ctx, userUID, profile).Error(0)
}
func (m *RepoMock) GetDogs(ctx context.Context, userUID string) ([]models.Dog, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dog), args.Error(1)
}
func (m *RepoMock) RecordOwnerQuote(ctx context.Context, userUID string, monthlyQuote float64) error {
	return m.Called(ctx, userUID, monthlyQuote).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testRules() config.Billing {
	return config.Billing{
		CommissionRate:        0.20,
		OwnerTrialDays:        90,
		BusinessTrialDays:     180,
		OwnerPriceMonthly:     19.9,
		OwnerPriceAnnual:      14.9,
		IncludedCollaborators: 3,
		ExtraPersonMonthly:    1.5,
		ExtraPersonAnnual:     1.0,
		MaxDealsPerBusiness:   5,
	}
}

func newTestService(repo *RepoMock, cache *CacheMock, now time.Time) *Service {
	p := policy.New(testRules())
	return New(repo, cache, new(PublisherMock), p, lifecycle.New(p), clock.Fixed{Moment: now}, newNoopLogger())
}

func newTestServiceWithPublisher(repo *RepoMock, cache *CacheMock, publisher *PublisherMock, now time.Time) *Service {
	p := policy.New(testRules())
	return New(repo, cache, publisher, p, lifecycle.New(p), clock.Fixed{Moment: now}, newNoopLogger())
}

func TestGet_CacheMiss(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stored := &models.UserProfile{ID: "uid-1", UserRole: models.RoleOwner}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-1", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-1").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-1", stored, time.Hour).Return(nil).Once()

	svc := newTestService(repo, cache, now)
	got, err := svc.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGet_RepoError(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-1", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-1").Return(nil, errors.New("db down")).Once()

	svc := newTestService(repo, cache, now)
	_, err := svc.Get(context.Background(), "uid-1")
	require.Error(t, err)
}

func TestSubscribe(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stored := &models.UserProfile{
		ID:                 "uid-1",
		UserRole:           models.RoleOwner,
		RegistrationDate:   now.AddDate(0, 0, -100),
		SubscriptionStatus: models.StatusTrial,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-1", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-1").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-1", stored, time.Hour).Return(nil).Once()
	repo.On("PutProfile", mock.Anything, "uid-1", mock.MatchedBy(func(p models.UserProfile) bool {
		return p.SubscriptionStatus == models.StatusActive && p.SubscriptionTier == models.TierMonthly
	})).Return(nil).Once()
	cache.On("Invalidate", "profile:uid-1").Return(nil).Once()
	repo.On("GetDogs", mock.Anything, "uid-1").Return([]models.Dog{{ID: "d1"}}, nil).Once()
	repo.On("RecordOwnerQuote", mock.Anything, "uid-1", 19.9).Return(nil).Once()

	svc := newTestService(repo, cache, now)
	got, err := svc.Subscribe(context.Background(), "uid-1", models.TierMonthly)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.SubscriptionStatus)
	assert.Equal(t, models.TierMonthly, got.SubscriptionTier)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSubscribe_UnblocksExpiredOwner(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stored := &models.UserProfile{
		ID:                 "uid-1",
		UserRole:           models.RoleOwner,
		RegistrationDate:   now.AddDate(0, 0, -200),
		SubscriptionStatus: models.StatusTrial,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-1", mock.Anything).Return(false, nil)
	repo.On("GetProfile", mock.Anything, "uid-1").Return(stored, nil)
	cache.On("Set", "profile:uid-1", mock.Anything, time.Hour).Return(nil)
	repo.On("PutProfile", mock.Anything, "uid-1", mock.Anything).Return(nil)
	cache.On("Invalidate", "profile:uid-1").Return(nil)
	repo.On("GetDogs", mock.Anything, "uid-1").Return([]models.Dog{}, nil)
	repo.On("RecordOwnerQuote", mock.Anything, "uid-1", mock.Anything).Return(nil)

	svc := newTestService(repo, cache, now)

	blocked, _, err := svc.BlockStatus(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.True(t, blocked, "expired trial must block before payment")

	next, err := svc.Subscribe(context.Background(), "uid-1", models.TierAnnual)
	require.NoError(t, err)

	blockedAfter, err := policy.New(testRules()).IsBlocked(*next, now)
	require.NoError(t, err)
	assert.False(t, blockedAfter, "payment must lift the block")
}

func TestPurchasePromotion(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stored := &models.UserProfile{
		ID:               "uid-2",
		UserRole:         models.RoleWalker,
		RegistrationDate: now.AddDate(0, 0, -10),
		PromotionTier:    models.PromotionFree,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-2", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-2").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-2", stored, time.Hour).Return(nil).Once()
	repo.On("PutProfile", mock.Anything, "uid-2", mock.MatchedBy(func(p models.UserProfile) bool {
		return p.PromotionTier == models.PromotionMonthly
	})).Return(nil).Once()
	cache.On("Invalidate", "profile:uid-2").Return(nil).Once()

	svc := newTestService(repo, cache, now)
	got, err := svc.PurchasePromotion(context.Background(), "uid-2", models.PromotionMonthly)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionMonthly, got.PromotionTier)

	repo.AssertExpectations(t)
}

func TestPurchaseAddon_AllowedOnFreeTier(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stored := &models.UserProfile{
		ID:               "uid-3",
		UserRole:         models.RoleStoreOwner,
		RegistrationDate: now.AddDate(0, 0, -10),
		PromotionTier:    models.PromotionFree,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-3", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-3").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-3", stored, time.Hour).Return(nil).Once()
	repo.On("PutProfile", mock.Anything, "uid-3", mock.MatchedBy(func(p models.UserProfile) bool {
		return p.HasPromotionsAddon &&
			p.PromotionsAddonTier == models.AddonAnnualCube &&
			p.PromotionTier == models.PromotionFree
	})).Return(nil).Once()
	cache.On("Invalidate", "profile:uid-3").Return(nil).Once()

	svc := newTestService(repo, cache, now)
	got, err := svc.PurchaseAddon(context.Background(), "uid-3", models.AddonAnnualCube)
	require.NoError(t, err)
	assert.True(t, got.HasPromotionsAddon)

	repo.AssertExpectations(t)
}

func TestBlockStatus_FailsClosedOnBadDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	// Профиль без единой пригодной даты.
	stored := &models.UserProfile{
		ID:                 "uid-4",
		UserRole:           models.RoleOwner,
		SubscriptionStatus: models.StatusTrial,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-4", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-4").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-4", stored, time.Hour).Return(nil).Once()

	svc := newTestService(repo, cache, now)
	blocked, role, err := svc.BlockStatus(context.Background(), "uid-4")
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Equal(t, models.RoleOwner, role)
}

func TestUpdate_KeepsStatusFields(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stored := &models.UserProfile{
		ID:                 "uid-5",
		UserRole:           models.RoleOwner,
		FirstName:          "Дана",
		RegistrationDate:   now.AddDate(0, 0, -5),
		SubscriptionStatus: models.StatusActive,
		SubscriptionTier:   models.TierMonthly,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-5", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-5").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-5", stored, time.Hour).Return(nil).Once()
	repo.On("PutProfile", mock.Anything, "uid-5", mock.MatchedBy(func(p models.UserProfile) bool {
		return p.FirstName == "Номи" &&
			p.SubscriptionStatus == models.StatusActive &&
			p.UserRole == models.RoleOwner
	})).Return(nil).Once()
	cache.On("Invalidate", "profile:uid-5").Return(nil).Once()

	svc := newTestService(repo, cache, now)
	got, err := svc.Update(context.Background(), "uid-5", models.DummyProfileUpdate{
		FirstName: "Номи",
		LastName:  "Леви",
		City:      "Тель-Авив",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.SubscriptionStatus)

	repo.AssertExpectations(t)
}

func TestQuote(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stored := &models.UserProfile{ID: "uid-6", UserRole: models.RoleOwner}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-6", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-6").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-6", stored, time.Hour).Return(nil).Once()
	repo.On("GetDogs", mock.Anything, "uid-6").Return([]models.Dog{{ID: "d1"}}, nil).Once()

	svc := newTestService(repo, cache, now)
	quote, err := svc.Quote(context.Background(), "uid-6", models.TierAnnual)
	require.NoError(t, err)
	assert.InDelta(t, 14.9, quote, 0.0001)
}

func TestTrialStatus_PublishesExpiringEvent(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	registration := now.AddDate(0, 0, -85) // осталось 5 дней из 90

	stored := &models.UserProfile{
		ID:                 "uid-7",
		UserRole:           models.RoleOwner,
		RegistrationDate:   registration,
		SubscriptionStatus: models.StatusTrial,
		PromotionTier:      models.PromotionFree,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)
	cache.On("Get", "profile:uid-7", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-7").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-7", stored, time.Hour).Return(nil).Once()
	publisher.On("Publish", rabbitmq.RoutingTrialExpiring, mock.Anything).Return(nil).Once()

	svc := newTestServiceWithPublisher(repo, cache, publisher, now)
	status, err := svc.TrialStatus(context.Background(), "uid-7")
	require.NoError(t, err)
	assert.Equal(t, 5, status.RemainingOwnerDays)
	assert.False(t, status.Blocked)

	publisher.AssertExpectations(t)
}

func TestTrialStatus_NoEventFarFromExpiry(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	registration := now.AddDate(0, 0, -10)

	stored := &models.UserProfile{
		ID:                 "uid-8",
		UserRole:           models.RoleOwner,
		RegistrationDate:   registration,
		SubscriptionStatus: models.StatusTrial,
		PromotionTier:      models.PromotionFree,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)
	cache.On("Get", "profile:uid-8", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-8").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-8", stored, time.Hour).Return(nil).Once()

	svc := newTestServiceWithPublisher(repo, cache, publisher, now)
	status, err := svc.TrialStatus(context.Background(), "uid-8")
	require.NoError(t, err)
	assert.Equal(t, 80, status.RemainingOwnerDays)

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestTrialStatus_NoEventForActiveSubscriber(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	registration := now.AddDate(0, 0, -89)

	stored := &models.UserProfile{
		ID:                 "uid-9",
		UserRole:           models.RoleOwner,
		RegistrationDate:   registration,
		SubscriptionStatus: models.StatusActive,
		SubscriptionTier:   models.TierMonthly,
		PromotionTier:      models.PromotionFree,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)
	cache.On("Get", "profile:uid-9", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-9").Return(stored, nil).Once()
	cache.On("Set", "profile:uid-9", stored, time.Hour).Return(nil).Once()

	svc := newTestServiceWithPublisher(repo, cache, publisher, now)
	_, err := svc.TrialStatus(context.Background(), "uid-9")
	require.NoError(t, err)

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
