package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/godogapp/godog/internal/models"
)

// CreateDeal вставляет новую акцию бизнеса. Лимит живых акций
// проверяет сервисный слой до вставки.
func (s *Storage) CreateDeal(ctx context.Context, businessUID string, deal models.Deal) (string, error) {
	const op = "storage.CreateDeal"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	images, err := json.Marshal(deal.Images)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO deals (id, business_uid, business_name, title, description, images, category, city)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID string
	err = s.DB.QueryRowContext(ctx, query,
		deal.ID, businessUID, deal.BusinessName, deal.Title, deal.Description, images, deal.Category, deal.City).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CountDealsByBusiness возвращает число живых акций бизнеса.
func (s *Storage) CountDealsByBusiness(ctx context.Context, businessUID string) (int, error) {
	const op = "storage.CountDealsByBusiness"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*) FROM deals WHERE business_uid = $1`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, businessUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListDealsByBusiness возвращает акции бизнеса в порядке создания.
func (s *Storage) ListDealsByBusiness(ctx context.Context, businessUID string) ([]models.Deal, error) {
	const op = "storage.ListDealsByBusiness"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, business_uid, business_name, title, description, images, category, city
			  FROM deals WHERE business_uid = $1 ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, businessUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []models.Deal
	for rows.Next() {
		var d models.Deal
		var images []byte
		if err := rows.Scan(&d.ID, &d.BusinessID, &d.BusinessName, &d.Title,
			&d.Description, &images, &d.Category, &d.City); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(images, &d.Images); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveDeal удаляет акцию бизнеса и возвращает число удаленных строк.
func (s *Storage) RemoveDeal(ctx context.Context, businessUID, dealID string) (int, error) {
	const op = "storage.RemoveDeal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM deals WHERE business_uid = $1 AND id = $2`
	result, err := s.DB.ExecContext(ctx, query, businessUID, dealID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
