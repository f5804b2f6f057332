package staff

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the member. A duplicate email yields a conflict error.
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	Update(ctx context.Context, m *Member) error
	List(ctx context.Context, limit, offset int) ([]*Member, int, error)
}
