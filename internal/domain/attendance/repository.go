package attendance

import (
	"context"
	"time"
)

// AttendanceRepository stores at most one record per (employee, date).
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns nil, nil when there is no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CreateIfAbsent inserts the record unless one already exists for the same (employee, date).
	// It always returns the stored record; created is false when another writer got there first.
	CreateIfAbsent(ctx context.Context, attendance Attendance) (stored Attendance, created bool, err error)

	// Close sets check-out and location fields only if the record is still open.
	// closed is false when the record was already closed by someone else.
	Close(ctx context.Context, id string, checkOut time.Time, latitude, longitude *float64, mode LocationMode) (stored Attendance, closed bool, err error)

	HasCheckedIn(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

// AbsenceRepository stores at most one absence per (employee, date).
type AbsenceRepository interface {
	// GetOrCreate returns the existing absence or inserts a new one.
	GetOrCreate(ctx context.Context, employeeID string, date time.Time, source AbsenceSource) (stored Absence, created bool, err error)

	Exists(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// Delete reports whether a row was removed.
	Delete(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

// DayGuard serialises the writers of one (employee, date): the engine's check-in, the
// engine's late absence, the sweep and correction approval. fn runs in a transaction and
// the ctx it receives must be passed to the repositories.
type DayGuard interface {
	WithinDay(ctx context.Context, employeeID string, date time.Time, fn func(ctx context.Context) error) error
}
