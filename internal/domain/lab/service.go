package lab

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

// VisitRegistry mirrors the queue module's dependency: lab orders hang off an
// existing visit.
type VisitRegistry interface {
	VisitExists(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo   Repository
	visits VisitRegistry
}

func NewService(repo Repository, visits VisitRegistry) *Service {
	return &Service{repo: repo, visits: visits}
}

type CreateInput struct {
	TestName string  `json:"test_name"`
	Category *string `json:"category"`
	Priority string  `json:"priority"`
	Notes    *string `json:"notes"`
}

// Create places a lab order under the given visit. Priority defaults to
// routine; status always starts pending; the requester is the acting user.
func (s *Service) Create(ctx context.Context, actor auth.ActingUser, visitID uuid.UUID, in CreateInput) (*Order, error) {
	if visitID == uuid.Nil {
		return nil, apperr.New(apperr.Validation, "visit id is required to order a lab test")
	}
	if err := s.visits.VisitExists(ctx, visitID); err != nil {
		return nil, err
	}
	if in.TestName == "" {
		return nil, apperr.New(apperr.Validation, "test_name is required")
	}

	priority := PriorityRoutine
	if in.Priority != "" {
		var ok bool
		priority, ok = ParsePriority(in.Priority)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid priority: %q", in.Priority)
		}
	}

	requester := actor.ID
	o := &Order{
		VisitID:     visitID,
		TestName:    in.TestName,
		Category:    in.Category,
		RequestedBy: &requester,
		Priority:    priority,
		Status:      StatusPending,
		OrderedAt:   time.Now().UTC(),
		Notes:       in.Notes,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Order, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

type UpdateInput struct {
	TestName *string `json:"test_name"`
	Category *string `json:"category"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
	Result   *string `json:"result"`
	Notes    *string `json:"notes"`
}

// Update applies the supplied subset. Moving to completed stamps completed_at;
// any other status clears it.
func (s *Service) Update(ctx context.Context, actor auth.ActingUser, id uuid.UUID, in UpdateInput) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.TestName != nil {
		if *in.TestName == "" {
			return nil, apperr.New(apperr.Validation, "test_name cannot be empty")
		}
		o.TestName = *in.TestName
	}
	if in.Priority != nil {
		priority, ok := ParsePriority(*in.Priority)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid priority: %q", *in.Priority)
		}
		o.Priority = priority
	}
	if in.Status != nil {
		status, ok := ParseStatus(*in.Status)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid status: %q", *in.Status)
		}
		if status != o.Status {
			if status == StatusCompleted {
				now := time.Now().UTC()
				o.CompletedAt = &now
			} else {
				o.CompletedAt = nil
			}
		}
		o.Status = status
	}
	if in.Category != nil {
		o.Category = in.Category
	}
	if in.Result != nil {
		o.Result = in.Result
	}
	if in.Notes != nil {
		o.Notes = in.Notes
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, actor auth.ActingUser, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
