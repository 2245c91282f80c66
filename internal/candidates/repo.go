package candidates

import "context"

// Repo defines persistence operations for the candidate aggregate.
type Repo interface {
	// Upsert creates or updates the candidate identified by rec.Name,
	// fully replacing its relationship sets, as one atomic transaction.
	Upsert(ctx context.Context, rec Record) (int64, error)
	// GetByID returns the detail projection or ErrNotFound.
	GetByID(ctx context.Context, id int64) (Detail, error)
	// ListTable returns the flattened listing projection for all candidates.
	ListTable(ctx context.Context) ([]Row, error)
}
