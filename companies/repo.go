package companies

import "context"

// Repo defines the persistence contract for company records.
type Repo interface {
	// Upsert creates or updates a company. The row is matched by ID first,
	// falling back to Handle when no row carries the ID.
	Upsert(ctx context.Context, company *Company) error

	// Get retrieves a company by its platform ID.
	Get(ctx context.Context, id string) (*Company, error)

	// GetByHandle retrieves a company by its handle.
	GetByHandle(ctx context.Context, handle string) (*Company, error)

	// Delete removes a company by ID.
	Delete(ctx context.Context, id string) error

	// List returns companies ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*Company, error)
}
