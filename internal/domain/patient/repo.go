package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the patient and fills in its generated ID and MRN.
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByMRN(ctx context.Context, mrn string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Exists reports whether the patient row is present without loading it.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// List matches the search term against name and MRN, newest first.
	List(ctx context.Context, search string, limit, offset int) ([]*Patient, int, error)
}
