package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/correction"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const correctionColumns = `
	id, employee_id, date, reason, status, reviewer_id, reviewer_remark, reviewed_at, created_at, updated_at`

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.Repository {
	return &correctionRepository{db: db}
}

func scanCorrection(row pgx.Row) (correction.Request, error) {
	var c correction.Request
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.Date, &c.Reason, &c.Status,
		&c.ReviewerID, &c.ReviewerRemark, &c.ReviewedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Upsert implements correction.Repository.
func (r *correctionRepository) Upsert(ctx context.Context, employeeID string, date time.Time, reason string) (correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return correction.Request{}, fmt.Errorf("failed to generate correction id: %w", err)
	}

	query := `
		INSERT INTO attendance_corrections (id, employee_id, date, reason, status)
		VALUES ($1, $2, $3, $4, 'pending')
		ON CONFLICT (employee_id, date) DO UPDATE
		SET reason = EXCLUDED.reason,
			status = 'pending',
			reviewer_id = NULL,
			reviewer_remark = NULL,
			reviewed_at = NULL,
			updated_at = now()
		WHERE attendance_corrections.status <> 'approved'
		RETURNING ` + correctionColumns

	stored, err := scanCorrection(q.QueryRow(ctx, query, id.String(), employeeID, date, reason))
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return correction.Request{}, fmt.Errorf("failed to upsert correction: %w", err)
	}

	// The conflicting row is approved and was left untouched.
	stored, err = scanCorrection(q.QueryRow(ctx,
		`SELECT `+correctionColumns+` FROM attendance_corrections WHERE employee_id = $1 AND date = $2`,
		employeeID, date,
	))
	if err != nil {
		return correction.Request{}, fmt.Errorf("failed to get correction: %w", err)
	}
	return stored, nil
}

// GetByID implements correction.Repository.
func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return correction.Request{}, correction.ErrCorrectionNotFound
	}

	stored, err := scanCorrection(q.QueryRow(ctx,
		`SELECT `+correctionColumns+` FROM attendance_corrections WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Request{}, correction.ErrCorrectionNotFound
		}
		return correction.Request{}, fmt.Errorf("failed to get correction: %w", err)
	}

	return stored, nil
}

// Review implements correction.Repository.
func (r *correctionRepository) Review(ctx context.Context, id string, status correction.Status, reviewerID string, remark *string, reviewedAt time.Time) (correction.Request, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_corrections
		SET status = $2, reviewer_id = $3, reviewer_remark = $4, reviewed_at = $5, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + correctionColumns

	stored, err := scanCorrection(q.QueryRow(ctx, query, id, status, reviewerID, remark, reviewedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Request{}, false, nil
		}
		return correction.Request{}, false, fmt.Errorf("failed to review correction: %w", err)
	}

	return stored, true, nil
}

// ListPending implements correction.Repository.
func (r *correctionRepository) ListPending(ctx context.Context) ([]correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+correctionColumns+` FROM attendance_corrections WHERE status = 'pending' ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	requests := []correction.Request{}
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		requests = append(requests, c)
	}

	return requests, rows.Err()
}
