package queue

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

// VisitRegistry is the slice of the visit module the queue manager depends
// on: an entry may only be created under an existing visit.
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

// CreateInput carries caller-supplied fields for a new entry. Department is
// required; priority and status default to Normal/Waiting.
type CreateInput struct {
	Department string  `json:"department"`
	Priority   string  `json:"priority"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}

// Create routes a patient into a department queue under the given visit. The
// arrival time is stamped server-side and the entry is assigned to the acting
// user. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, actor auth.ActingUser, visitID uuid.UUID, in CreateInput) (*Entry, error) {
	if visitID == uuid.Nil {
		return nil, apperr.New(apperr.Validation, "visit id is required to add a patient to the queue")
	}
	if err := s.visits.VisitExists(ctx, visitID); err != nil {
		return nil, err
	}

	dept, ok := ParseDepartment(in.Department)
	if !ok {
		return nil, apperr.New(apperr.Validation, "invalid department: %q", in.Department)
	}

	priority := PriorityNormal
	if in.Priority != "" {
		priority, ok = ParsePriority(in.Priority)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid priority: %q", in.Priority)
		}
	}

	status := StatusWaiting
	if in.Status != "" {
		status, ok = ParseStatus(in.Status)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid status: %q", in.Status)
		}
	}

	assignee := actor.ID
	entry := &Entry{
		VisitID:     visitID,
		Department:  dept,
		AssignedTo:  &assignee,
		Priority:    priority,
		Status:      status,
		ArrivalTime: time.Now().UTC(),
		Notes:       in.Notes,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// UpdateInput carries the mutable subset of an entry. Visit reference and
// arrival time are read-only: the type has no fields for them, so requests
// carrying them are silently ignored rather than errored.
type UpdateInput struct {
	Department *string    `json:"department"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	Priority   *string    `json:"priority"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
}

// Update applies the supplied subset of fields. There is no status-transition
// guard: any status may follow any other.
func (s *Service) Update(ctx context.Context, actor auth.ActingUser, id uuid.UUID, in UpdateInput) (*Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Department != nil {
		dept, ok := ParseDepartment(*in.Department)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid department: %q", *in.Department)
		}
		entry.Department = dept
	}
	if in.Priority != nil {
		priority, ok := ParsePriority(*in.Priority)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid priority: %q", *in.Priority)
		}
		entry.Priority = priority
	}
	if in.Status != nil {
		status, ok := ParseStatus(*in.Status)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid status: %q", *in.Status)
		}
		entry.Status = status
	}
	if in.AssignedTo != nil {
		entry.AssignedTo = in.AssignedTo
	}
	if in.Notes != nil {
		entry.Notes = in.Notes
	}
	if in.StartTime != nil {
		entry.StartTime = in.StartTime
	}
	if in.EndTime != nil {
		entry.EndTime = in.EndTime
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry outright. The owning visit is unaffected.
func (s *Service) Delete(ctx context.Context, actor auth.ActingUser, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Stats aggregates the filtered working set for the queue dashboard. Average
// wait is the rounded mean of (start - arrival) in minutes over entries whose
// service has started; entries still waiting are excluded, and an empty set
// reports 0.
func (s *Service) Stats(ctx context.Context, f Filter) (*Stats, error) {
	entries, err := s.repo.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		FilteredQueueCount: len(entries),
		ByDepartment:       make(map[Department]int, 13),
		ByPriority:         make(map[Priority]int, 3),
		ByStatus:           make(map[Status]int, 7),
	}
	for _, d := range Departments() {
		stats.ByDepartment[d] = 0
	}
	for _, p := range Priorities() {
		stats.ByPriority[p] = 0
	}
	for _, st := range Statuses() {
		stats.ByStatus[st] = 0
	}

	var waitMinutes float64
	var started int
	for _, e := range entries {
		if e.Status == StatusWaiting {
			stats.TotalWaiting++
		}
		if e.StartTime != nil {
			waitMinutes += e.StartTime.Sub(e.ArrivalTime).Minutes()
			started++
		}
		stats.ByDepartment[e.Department]++
		stats.ByPriority[e.Priority]++
		stats.ByStatus[e.Status]++
	}

	if started > 0 {
		stats.AverageWaitTimeMinutes = int(math.Round(waitMinutes / float64(started)))
	}

	return stats, nil
}
