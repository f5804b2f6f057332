package queue

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns a page of the filtered working set plus its total size,
	// ordered by arrival_time descending.
	List(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error)
	// ListAll returns the entire filtered working set for aggregation.
	ListAll(ctx context.Context, f Filter) ([]*Entry, error)
	// DeleteByVisit removes every entry owned by the visit and returns the
	// count removed. Used by the visit registry's cascade on visit deletion.
	DeleteByVisit(ctx context.Context, visitID uuid.UUID) (int, error)
}
