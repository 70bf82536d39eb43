package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/godogapp/godog/internal/lib/clock"
	"github.com/godogapp/godog/internal/lib/ident"
	"github.com/godogapp/godog/internal/lib/jwt"
	"github.com/godogapp/godog/internal/lib/password"
	"github.com/godogapp/godog/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type ProfilesMock struct{ mock.Mock }

func (m *ProfilesMock) PutProfile(ctx context.Context, userUID string, profile models.UserProfile) error {
	return m.Called(ctx, userUID, profile).Error(0)
}
func (m *ProfilesMock) PutDogs(ctx context.Context, userUID string, dogs []models.Dog) error {
	return m.Called(ctx, userUID, dogs).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(users *UsersMock, profiles *ProfilesMock) *Service {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	return New(users, profiles, maker, &ident.Sequence{}, clock.Fixed{Moment: now}, newNoopLogger())
}

func TestRegister_Owner(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	users := new(UsersMock)
	profiles := new(ProfilesMock)
	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "dana" && u.Role == "OWNER" && u.PasswordHash != "secret123"
	})).Return("id-1", nil).Once()
	profiles.On("PutProfile", mock.Anything, "id-1", mock.MatchedBy(func(p models.UserProfile) bool {
		return p.SubscriptionStatus == models.StatusTrial &&
			p.PromotionTier == models.PromotionFree &&
			p.PromotionsAddonTier == models.AddonNone &&
			p.TrialStartDate != nil && p.TrialStartDate.Equal(now) &&
			p.RegistrationDate.Equal(now)
	})).Return(nil).Once()

	svc := newTestService(users, profiles)
	uid, err := svc.Register(context.Background(), models.DummyRegister{
		Username:  "dana",
		Email:     "dana@example.com",
		Password:  "secret123",
		FirstName: "Дана",
		LastName:  "Леви",
		UserRole:  "OWNER",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", uid)

	users.AssertExpectations(t)
	profiles.AssertExpectations(t)
	profiles.AssertNotCalled(t, "PutDogs", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_OwnerWithInitialDog(t *testing.T) {
	users := new(UsersMock)
	profiles := new(ProfilesMock)
	users.On("RegisterUser", mock.Anything, mock.Anything).Return("id-1", nil).Once()
	profiles.On("PutProfile", mock.Anything, "id-1", mock.Anything).Return(nil).Once()
	profiles.On("PutDogs", mock.Anything, "id-1", mock.MatchedBy(func(dogs []models.Dog) bool {
		return len(dogs) == 1 && dogs[0].Name == "Рекс"
	})).Return(nil).Once()

	svc := newTestService(users, profiles)
	_, err := svc.Register(context.Background(), models.DummyRegister{
		Username:  "dana",
		Email:     "dana@example.com",
		Password:  "secret123",
		FirstName: "Дана",
		LastName:  "Леви",
		UserRole:  "OWNER",
		InitialDog: &models.DummyDog{
			Name: "Рекс", Breed: "лабрадор", Age: 2, Gender: "MALE",
		},
	})
	require.NoError(t, err)
	profiles.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hashed, err := password.GetHash("secret123")
	require.NoError(t, err)

	user := &models.User{
		UUID:         "uid-1",
		Username:     "dana",
		PasswordHash: hashed,
		Role:         "OWNER",
	}

	t.Run("success returns parseable token", func(t *testing.T) {
		users := new(UsersMock)
		users.On("GetUserByUsername", mock.Anything, "dana").Return(user, nil).Once()

		svc := newTestService(users, new(ProfilesMock))
		token, role, err := svc.Login(context.Background(), "dana", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "OWNER", role)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "dana", claims.Username)
		assert.Equal(t, "uid-1", claims.UserUID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(UsersMock)
		users.On("GetUserByUsername", mock.Anything, "dana").Return(user, nil).Once()

		svc := newTestService(users, new(ProfilesMock))
		_, _, err := svc.Login(context.Background(), "dana", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
