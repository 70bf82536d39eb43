package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/godogapp/godog/internal/models"
)

// ErrProfileNotFound возвращается, когда профиль отсутствует в базе.
var ErrProfileNotFound = errors.New("profile not found")

// GetProfile возвращает профиль пользователя по его UUID.
func (s *Storage) GetProfile(ctx context.Context, userUID string) (*models.UserProfile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT data FROM profiles WHERE user_uid = $1`
	var raw []byte
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &profile, nil
}

// PutProfile сохраняет профиль целиком: полная замена, последняя запись
// побеждает. Оптимистической блокировки нет — состояние клиентское,
// одновременных писателей не бывает.
func (s *Storage) PutProfile(ctx context.Context, userUID string, profile models.UserProfile) error {
	const op = "storage.PutProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO profiles (user_uid, data, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (user_uid) DO UPDATE
			  SET data = EXCLUDED.data, updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, userUID, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountPromotedBusinesses возвращает число бизнес-профилей с платным
// уровнем продвижения. Используется в сводке выручки.
func (s *Storage) CountPromotedBusinesses(ctx context.Context) (int, error) {
	const op = "storage.CountPromotedBusinesses"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*) FROM profiles
			  WHERE data->>'user_role' IN ('WALKER', 'PROFESSIONAL', 'STORE_OWNER')
			    AND data->>'promotion_tier' <> 'FREE'`
	var count int
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountAddonBusinesses возвращает число бизнес-профилей с купленным
// дополнением акций.
func (s *Storage) CountAddonBusinesses(ctx context.Context) (int, error) {
	const op = "storage.CountAddonBusinesses"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*) FROM profiles
			  WHERE (data->>'has_promotions_addon')::boolean = true`
	var count int
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumActiveOwnerQuotes возвращает учитываемую выручку подписок владельцев:
// сумму зафиксированных месячных котировок активных подписчиков.
func (s *Storage) SumActiveOwnerQuotes(ctx context.Context) (float64, error) {
	const op = "storage.SumActiveOwnerQuotes"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT coalesce(sum(monthly_quote), 0) FROM owner_subscriptions`
	var total float64
	if err := s.DB.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// RecordOwnerQuote фиксирует месячную котировку активной подписки
// владельца для сводки выручки. Повторное оформление перезаписывает строку.
func (s *Storage) RecordOwnerQuote(ctx context.Context, userUID string, monthlyQuote float64) error {
	const op = "storage.RecordOwnerQuote"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO owner_subscriptions (user_uid, monthly_quote, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (user_uid) DO UPDATE
			  SET monthly_quote = EXCLUDED.monthly_quote, updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, userUID, monthlyQuote); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
