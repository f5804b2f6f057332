package visit

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Visit, error)
	Update(ctx context.Context, v *Visit) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Exists reports whether the visit row is present without loading it.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// IDsByPatient returns the ids of every visit belonging to the patient.
	IDsByPatient(ctx context.Context, patientID uuid.UUID) ([]uuid.UUID, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error)
}
