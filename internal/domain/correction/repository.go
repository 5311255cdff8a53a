package correction

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert creates a pending request, or resets an existing pending/rejected one for the same
	// (employee, date) to pending with the new reason. Approval is final: an approved request is
	// returned unchanged, because its attendance repair has already been committed and a new
	// pending cycle could be rejected on top of it. Callers report ErrCorrectionAlreadyApproved.
	Upsert(ctx context.Context, employeeID string, date time.Time, reason string) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	// Review moves a pending request to status. ok is false when the request was no longer pending.
	Review(ctx context.Context, id string, status Status, reviewerID string, remark *string, reviewedAt time.Time) (stored Request, ok bool, err error)

	ListPending(ctx context.Context) ([]Request, error)
}
