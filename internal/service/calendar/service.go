package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/validator"
)

type CalendarServiceImpl struct {
	calendar.HolidayRepository
	weeklyRestDay time.Weekday
	country       string
}

func NewCalendarService(holidayRepository calendar.HolidayRepository, weeklyRestDay time.Weekday, country string) calendar.CalendarService {
	return &CalendarServiceImpl{
		HolidayRepository: holidayRepository,
		weeklyRestDay:     weeklyRestDay,
		country:           country,
	}
}

// Day implements calendar.Policy.
func (s *CalendarServiceImpl) Day(ctx context.Context, date time.Time) (calendar.Day, error) {
	date = clock.DateOf(date)
	day := calendar.Day{
		Date:       date,
		WeeklyRest: date.Weekday() == s.weeklyRestDay,
	}

	holiday, err := s.HolidayRepository.GetByDate(ctx, date, s.country)
	if err != nil {
		return calendar.Day{}, fmt.Errorf("failed to look up holiday: %w", err)
	}
	day.Holiday = holiday

	return day, nil
}

// IsRestDay implements calendar.Policy.
func (s *CalendarServiceImpl) IsRestDay(ctx context.Context, date time.Time) (bool, error) {
	day, err := s.Day(ctx, date)
	if err != nil {
		return false, err
	}
	return day.IsRestDay(), nil
}

// CreateHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) CreateHoliday(ctx context.Context, req calendar.CreateHolidayRequest) (calendar.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.HolidayResponse{}, err
	}

	holiday, err := s.HolidayRepository.Create(ctx, calendar.Holiday{
		Date:    req.ParsedDate(),
		Country: s.country,
		Name:    req.Name,
	})
	if err != nil {
		return calendar.HolidayResponse{}, err
	}

	return calendar.NewHolidayResponse(holiday), nil
}

// DeleteHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return calendar.ErrHolidayNotFound
	}
	return s.HolidayRepository.Delete(ctx, id)
}

// ListHolidays implements calendar.CalendarService.
func (s *CalendarServiceImpl) ListHolidays(ctx context.Context, year int) ([]calendar.HolidayResponse, error) {
	if year < 1970 || year > 9999 {
		return nil, validator.ValidationErrors{{Field: "year", Message: "year must be between 1970 and 9999"}}
	}

	holidays, err := s.HolidayRepository.ListByYear(ctx, s.country, year)
	if err != nil {
		return nil, err
	}

	responses := make([]calendar.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, calendar.NewHolidayResponse(h))
	}
	return responses, nil
}
