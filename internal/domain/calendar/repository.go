package calendar

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// GetByDate returns nil, nil when the date is not a holiday in country.
	GetByDate(ctx context.Context, date time.Time, country string) (*Holiday, error)
	// Create returns ErrHolidayExists on a duplicate (date, country).
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	ListByYear(ctx context.Context, country string, year int) ([]Holiday, error)
}
