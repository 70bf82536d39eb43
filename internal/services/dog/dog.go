// Package dog содержит бизнес-логику домохозяйства: добавление и удаление
// собак, пополнение галереи и альбомов. Списки медиа и альбомов растут
// только операциями добавления; удаление собаки — целиком. Удаление
// отдельного вложения поддерживается, ссылки из альбомов при этом могут
// остаться висячими — это принятый компромисс, а не повод для ошибки.
package dog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/godogapp/godog/internal/lib/clock"
	"github.com/godogapp/godog/internal/lib/ident"
	"github.com/godogapp/godog/internal/models"
)

// ErrDogNotFound возвращается, когда собаки с данным ID нет в домохозяйстве.
var ErrDogNotFound = errors.New("dog not found")

// Repository определяет методы хранилища домохозяйств.
type Repository interface {
	GetDogs(ctx context.Context, userUID string) ([]models.Dog, error)
	PutDogs(ctx context.Context, userUID string, dogs []models.Dog) error
}

// Cache описывает методы кэширования списка собак.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции над домохозяйством.
type Service struct {
	repo  Repository
	cache Cache
	ids   ident.Generator
	clock clock.Clock
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, ids ident.Generator, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ids:   ids,
		clock: clk,
		log:   log,
	}
}

func cacheKey(userUID string) string {
	return fmt.Sprintf("dogs:%s", userUID)
}

// List возвращает собак домохозяйства в порядке добавления.
func (s *Service) List(ctx context.Context, userUID string) ([]models.Dog, error) {
	var cached []models.Dog
	found, err := s.cache.Get(cacheKey(userUID), &cached)
	if err != nil {
		s.log.Warn("dogs cache read failed", slog.String("key", cacheKey(userUID)), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(userUID), dogs, time.Hour); err != nil {
		s.log.Warn("failed to cache dogs", slog.String("key", cacheKey(userUID)), slog.Any("err", err))
	}
	return dogs, nil
}

// save сохраняет домохозяйство целиком и инвалидирует кеш.
func (s *Service) save(ctx context.Context, userUID string, dogs []models.Dog) error {
	if err := s.repo.PutDogs(ctx, userUID, dogs); err != nil {
		return err
	}
	if err := s.cache.Invalidate(cacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate dogs cache", slog.String("key", cacheKey(userUID)), slog.Any("err", err))
	}
	return nil
}

// Add добавляет собаку в конец списка (позиция определяет множитель цены)
// и возвращает её ID.
func (s *Service) Add(ctx context.Context, userUID string, req models.DummyDog) (string, error) {
	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		return "", err
	}

	newDog := models.Dog{
		ID:     s.ids.NewID(),
		Name:   req.Name,
		Breed:  req.Breed,
		Age:    req.Age,
		Gender: req.Gender,
		Notes:  req.Notes,
		Media:  []models.DogMedia{},
	}
	dogs = append(dogs, newDog)

	if err := s.save(ctx, userUID, dogs); err != nil {
		return "", err
	}
	s.log.Info("dog added", slog.String("user_uid", userUID), slog.String("dog_id", newDog.ID))
	return newDog.ID, nil
}

// Update обновляет анкетные поля собаки, не трогая галерею и альбомы.
func (s *Service) Update(ctx context.Context, userUID, dogID string, req models.DummyDog) error {
	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		return err
	}

	idx, err := findDog(dogs, dogID)
	if err != nil {
		return err
	}
	dogs[idx].Name = req.Name
	dogs[idx].Breed = req.Breed
	dogs[idx].Age = req.Age
	dogs[idx].Gender = req.Gender
	dogs[idx].Notes = req.Notes

	return s.save(ctx, userUID, dogs)
}

// Remove удаляет собаку целиком вместе с галереей и альбомами.
func (s *Service) Remove(ctx context.Context, userUID, dogID string) error {
	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		return err
	}

	idx, err := findDog(dogs, dogID)
	if err != nil {
		return err
	}
	dogs = append(dogs[:idx], dogs[idx+1:]...)

	if err := s.save(ctx, userUID, dogs); err != nil {
		return err
	}
	s.log.Info("dog removed", slog.String("user_uid", userUID), slog.String("dog_id", dogID))
	return nil
}

// AddMedia добавляет вложение в галерею собаки и возвращает его ID.
func (s *Service) AddMedia(ctx context.Context, userUID, dogID string, req models.DummyMedia) (string, error) {
	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		return "", err
	}

	idx, err := findDog(dogs, dogID)
	if err != nil {
		return "", err
	}
	media := models.DogMedia{
		ID:   s.ids.NewID(),
		Type: models.MediaType(req.Type),
		URL:  req.URL,
		Date: s.clock.Now(),
	}
	dogs[idx].Media = append(dogs[idx].Media, media)

	if err := s.save(ctx, userUID, dogs); err != nil {
		return "", err
	}
	return media.ID, nil
}

// RemoveMedia убирает вложение из галереи. Альбомы не перепроверяются:
// оставшиеся ссылки на удаленное вложение допустимы.
func (s *Service) RemoveMedia(ctx context.Context, userUID, dogID, mediaID string) error {
	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		return err
	}

	idx, err := findDog(dogs, dogID)
	if err != nil {
		return err
	}
	kept := dogs[idx].Media[:0]
	for _, m := range dogs[idx].Media {
		if m.ID != mediaID {
			kept = append(kept, m)
		}
	}
	dogs[idx].Media = kept

	return s.save(ctx, userUID, dogs)
}

// AddAlbum добавляет альбом воспоминаний и возвращает его ID.
// Ссылки MediaIDs на существование не проверяются.
func (s *Service) AddAlbum(ctx context.Context, userUID, dogID string, req models.DummyAlbum) (string, error) {
	dogs, err := s.repo.GetDogs(ctx, userUID)
	if err != nil {
		return "", err
	}

	idx, err := findDog(dogs, dogID)
	if err != nil {
		return "", err
	}
	album := models.DogAlbum{
		ID:        s.ids.NewID(),
		Title:     req.Title,
		Month:     req.Month,
		Year:      req.Year,
		Summary:   req.Summary,
		MediaIDs:  req.MediaIDs,
		CreatedAt: s.clock.Now(),
	}
	dogs[idx].Albums = append(dogs[idx].Albums, album)

	if err := s.save(ctx, userUID, dogs); err != nil {
		return "", err
	}
	return album.ID, nil
}

func findDog(dogs []models.Dog, dogID string) (int, error) {
	for i, d := range dogs {
		if d.ID == dogID {
			return i, nil
		}
	}
	return 0, ErrDogNotFound
}
