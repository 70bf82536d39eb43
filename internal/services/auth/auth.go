// Package auth содержит логику регистрации и входа. При регистрации
// заводится учетная запись, доменный профиль с запущенным триальным
// часами и, опционально, первая собака владельца.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/godogapp/godog/internal/lib/clock"
	"github.com/godogapp/godog/internal/lib/ident"
	"github.com/godogapp/godog/internal/lib/jwt"
	"github.com/godogapp/godog/internal/lib/password"
	"github.com/godogapp/godog/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с учетными записями.
type UserRepository interface {
	// RegisterUser сохраняет новую учетную запись и возвращает её UUID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername возвращает учетную запись по имени или ошибку, если не найдена.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// ProfileRepository описывает запись начального профиля и домохозяйства.
type ProfileRepository interface {
	PutProfile(ctx context.Context, userUID string, profile models.UserProfile) error
	PutDogs(ctx context.Context, userUID string, dogs []models.Dog) error
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	profiles ProfileRepository
	jwtMaker jwt.Maker
	ids      ident.Generator
	clock    clock.Clock
	log      *slog.Logger
}

// New создает новый Service.
func New(users UserRepository, profiles ProfileRepository, jwtMaker jwt.Maker, ids ident.Generator, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		jwtMaker: jwtMaker,
		ids:      ids,
		clock:    clk,
		log:      log,
	}
}

// Register создает учетную запись и доменный профиль. Часы пробного
// периода запускаются датой регистрации; владелец с ролью OWNER стартует
// в статусе TRIAL, бизнес — на уровне продвижения FREE.
func (s *Service) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}

	now := s.clock.Now().UTC()
	uid := s.ids.NewID()

	user := models.User{
		UUID:         uid,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         req.UserRole,
	}
	if _, err := s.users.RegisterUser(ctx, user); err != nil {
		return "", err
	}

	trialStart := now
	profile := models.UserProfile{
		ID:                  uid,
		Username:            req.Username,
		Email:               req.Email,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		City:                req.City,
		UserRole:            models.UserRole(req.UserRole),
		RegistrationDate:    now,
		TrialStartDate:      &trialStart,
		SubscriptionStatus:  models.StatusTrial,
		PromotionTier:       models.PromotionFree,
		PromotionsAddonTier: models.AddonNone,
	}
	if err := s.profiles.PutProfile(ctx, uid, profile); err != nil {
		return "", err
	}

	if req.InitialDog != nil {
		firstDog := models.Dog{
			ID:     s.ids.NewID(),
			Name:   req.InitialDog.Name,
			Breed:  req.InitialDog.Breed,
			Age:    req.InitialDog.Age,
			Gender: req.InitialDog.Gender,
			Notes:  req.InitialDog.Notes,
			Media:  []models.DogMedia{},
		}
		if err := s.profiles.PutDogs(ctx, uid, []models.Dog{firstDog}); err != nil {
			return "", err
		}
	}

	s.log.Info("user registered", slog.String("user_uid", uid), slog.String("role", req.UserRole))
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает данные пользователя.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
