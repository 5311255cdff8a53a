package employee

import "context"

// Repository is the roster provider.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActiveIDs returns the ids of every active employee, ordered by id.
	ListActiveIDs(ctx context.Context) ([]string, error)
	// ListByIDs returns the matching employees; unknown ids are ignored.
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
}
