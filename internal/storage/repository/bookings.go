package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/godogapp/godog/internal/models"
)

// ErrBookingNotFound возвращается, когда бронирование отсутствует в базе.
var ErrBookingNotFound = errors.New("booking not found")

// CreateBooking вставляет новое бронирование и возвращает его ID.
func (s *Storage) CreateBooking(ctx context.Context, b models.Booking) (string, error) {
	const op = "storage.CreateBooking"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO bookings (id, walker_id, owner_name, dog_id, dog_name,
			      service_type, start_time, total_amount, platform_fee, walker_earnings, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		b.ID, b.WalkerID, b.OwnerName, b.DogID, b.DogName,
		b.ServiceType, b.StartTime, b.TotalAmount, b.PlatformFee, b.WalkerEarnings, b.Status).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadBooking возвращает бронирование по ID.
func (s *Storage) ReadBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.ReadBooking"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, walker_id, owner_name, dog_id, dog_name, service_type,
				start_time, total_amount, platform_fee, walker_earnings, status
			  FROM bookings WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var b models.Booking
	if err := row.Scan(&b.ID, &b.WalkerID, &b.OwnerName, &b.DogID, &b.DogName,
		&b.ServiceType, &b.StartTime, &b.TotalAmount, &b.PlatformFee, &b.WalkerEarnings, &b.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}

// UpdateBookingStatus меняет статус бронирования и возвращает число
// измененных строк. Направление перехода проверяет сервисный слой.
func (s *Storage) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (int, error) {
	const op = "storage.UpdateBookingStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE bookings SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListBookingsByWalker возвращает бронирования исполнителя с пагинацией.
func (s *Storage) ListBookingsByWalker(ctx context.Context, walkerID string, limit, offset int) ([]models.Booking, error) {
	const op = "storage.ListBookingsByWalker"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, walker_id, owner_name, dog_id, dog_name, service_type,
				start_time, total_amount, platform_fee, walker_earnings, status
			  FROM bookings
			  WHERE walker_id = $1
			  ORDER BY start_time DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, walkerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.WalkerID, &b.OwnerName, &b.DogID, &b.DogName,
			&b.ServiceType, &b.StartTime, &b.TotalAmount, &b.PlatformFee, &b.WalkerEarnings, &b.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllBookings возвращает все бронирования с пагинацией,
// используется в административной сводке.
func (s *Storage) ListAllBookings(ctx context.Context, limit, offset int) ([]models.Booking, error) {
	const op = "storage.ListAllBookings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, walker_id, owner_name, dog_id, dog_name, service_type,
				start_time, total_amount, platform_fee, walker_earnings, status
			  FROM bookings
			  ORDER BY start_time DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.WalkerID, &b.OwnerName, &b.DogID, &b.DogName,
			&b.ServiceType, &b.StartTime, &b.TotalAmount, &b.PlatformFee, &b.WalkerEarnings, &b.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
