package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const attendanceColumns = `
	id, employee_id, date, check_in, check_out, latitude, longitude,
	location_mode, location_verified, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut, &att.Latitude, &att.Longitude,
		&att.LocationMode, &att.LocationVerified, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &att, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in, latitude, longitude, location_mode, location_verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING ` + attendanceColumns

	stored, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(),
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.Latitude,
		newAttendance.Longitude,
		newAttendance.LocationMode,
		newAttendance.LocationVerified,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	// Lost the race: someone else holds the (employee_id, date) row.
	existing, err := a.GetByEmployeeAndDate(ctx, newAttendance.EmployeeID, newAttendance.Date)
	if err != nil {
		return attendance.Attendance{}, false, err
	}
	if existing == nil {
		return attendance.Attendance{}, false, fmt.Errorf("attendance for %s on %s vanished after conflict", newAttendance.EmployeeID, newAttendance.Date.Format("2006-01-02"))
	}
	return *existing, false, nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, id string, checkOut time.Time, latitude, longitude *float64, mode attendance.LocationMode) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $2, latitude = $3, longitude = $4, location_mode = $5, updated_at = now()
		WHERE id = $1 AND check_out IS NULL
		RETURNING ` + attendanceColumns

	stored, err := scanAttendance(q.QueryRow(ctx, query, id, checkOut, latitude, longitude, mode))
	if err == nil {
		return stored, true, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23514" {
		return attendance.Attendance{}, false, attendance.ErrCheckOutBeforeCheckIn
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, fmt.Errorf("failed to close attendance: %w", err)
	}

	current, err := scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to reload attendance: %w", err)
	}
	return current, false, nil
}

// HasCheckedIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) HasCheckedIn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendances WHERE employee_id = $1 AND date = $2)`,
		employeeID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}

	return exists, nil
}
