package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepository{db: db}
}

// GetByDate implements calendar.HolidayRepository.
func (r *holidayRepository) GetByDate(ctx context.Context, date time.Time, country string) (*calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	var h calendar.Holiday
	err := q.QueryRow(ctx, `
		SELECT id, date, country, name, created_at
		FROM holidays
		WHERE date = $1 AND country = $2`,
		date, country,
	).Scan(&h.ID, &h.Date, &h.Country, &h.Name, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}

	return &h, nil
}

// Create implements calendar.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, holiday calendar.Holiday) (calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return calendar.Holiday{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}
	holiday.ID = id.String()

	err = q.QueryRow(ctx, `
		INSERT INTO holidays (id, date, country, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		holiday.ID, holiday.Date, holiday.Country, holiday.Name,
	).Scan(&holiday.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return calendar.Holiday{}, calendar.ErrHolidayExists
		}
		return calendar.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return holiday, nil
}

// Delete implements calendar.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return calendar.ErrHolidayNotFound
	}

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrHolidayNotFound
	}

	return nil
}

// ListByYear implements calendar.HolidayRepository.
func (r *holidayRepository) ListByYear(ctx context.Context, country string, year int) ([]calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	rows, err := q.Query(ctx, `
		SELECT id, date, country, name, created_at
		FROM holidays
		WHERE country = $1 AND date >= $2 AND date < $3
		ORDER BY date`,
		country, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := []calendar.Holiday{}
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Country, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}
