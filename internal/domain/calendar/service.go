package calendar

import (
	"context"
	"time"
)

// Policy decides which dates are rest days.
type Policy interface {
	IsRestDay(ctx context.Context, date time.Time) (bool, error)
	Day(ctx context.Context, date time.Time) (Day, error)
}

type CalendarService interface {
	Policy

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
}
