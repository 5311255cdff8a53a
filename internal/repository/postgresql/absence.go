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
)

type absenceRepository struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) attendance.AbsenceRepository {
	return &absenceRepository{db: db}
}

// GetOrCreate implements attendance.AbsenceRepository.
func (r *absenceRepository) GetOrCreate(ctx context.Context, employeeID string, date time.Time, source attendance.AbsenceSource) (attendance.Absence, bool, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Absence{}, false, fmt.Errorf("failed to generate absence id: %w", err)
	}

	var abs attendance.Absence
	err = q.QueryRow(ctx, `
		INSERT INTO absences (id, employee_id, date, source)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, employee_id, date, source, created_at`,
		id.String(), employeeID, date, source,
	).Scan(&abs.ID, &abs.EmployeeID, &abs.Date, &abs.Source, &abs.CreatedAt)
	if err == nil {
		return abs, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Absence{}, false, fmt.Errorf("failed to create absence: %w", err)
	}

	err = q.QueryRow(ctx, `
		SELECT id, employee_id, date, source, created_at
		FROM absences
		WHERE employee_id = $1 AND date = $2`,
		employeeID, date,
	).Scan(&abs.ID, &abs.EmployeeID, &abs.Date, &abs.Source, &abs.CreatedAt)
	if err != nil {
		return attendance.Absence{}, false, fmt.Errorf("failed to get absence: %w", err)
	}

	return abs, false, nil
}

// Exists implements attendance.AbsenceRepository.
func (r *absenceRepository) Exists(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM absences WHERE employee_id = $1 AND date = $2)`,
		employeeID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check absence: %w", err)
	}

	return exists, nil
}

// Delete implements attendance.AbsenceRepository.
func (r *absenceRepository) Delete(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM absences WHERE employee_id = $1 AND date = $2`, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to delete absence: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
