package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/godogapp/godog/internal/models"
)

// GetDogs возвращает список собак домохозяйства. Отсутствие записи —
// пустое домохозяйство, не ошибка.
func (s *Storage) GetDogs(ctx context.Context, userUID string) ([]models.Dog, error) {
	const op = "storage.GetDogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT data FROM dogs WHERE user_uid = $1`
	var raw []byte
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var dogs []models.Dog
	if err := json.Unmarshal(raw, &dogs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return dogs, nil
}

// PutDogs сохраняет список собак целиком, полной заменой.
// Порядок элементов значим: позиция определяет множитель цены.
func (s *Storage) PutDogs(ctx context.Context, userUID string, dogs []models.Dog) error {
	const op = "storage.PutDogs"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := json.Marshal(dogs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO dogs (user_uid, data, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (user_uid) DO UPDATE
			  SET data = EXCLUDED.data, updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, userUID, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
