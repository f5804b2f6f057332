package visit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

// PatientDirectory is the slice of the patient module the visit service needs:
// a visit may only be opened for a registered patient.
type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// QueueRemover removes every queue entry owned by a visit. Visit deletion runs
// this cascade before removing the visit row.
type QueueRemover interface {
	DeleteByVisit(ctx context.Context, visitID uuid.UUID) (int, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	queue    QueueRemover
}

func NewService(repo Repository, patients PatientDirectory, queue QueueRemover) *Service {
	return &Service{repo: repo, patients: patients, queue: queue}
}

// VisitExists satisfies the queue module's registry dependency.
func (s *Service) VisitExists(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.New(apperr.NotFound, "visit %s not found", id)
	}
	return nil
}

type CreateInput struct {
	PatientID       uuid.UUID  `json:"patient_id"`
	VisitType       string     `json:"visit_type"`
	Status          string     `json:"status"`
	ReasonForVisit  *string    `json:"reason_for_visit"`
	ReferringDoctor *uuid.UUID `json:"referring_doctor"`
	Notes           *string    `json:"visit_notes"`
}

// Create opens a visit for an existing patient. Type defaults to OPD, status
// to scheduled, start time to now.
func (s *Service) Create(ctx context.Context, actor auth.ActingUser, in CreateInput) (*Visit, error) {
	if in.PatientID == uuid.Nil {
		return nil, apperr.New(apperr.Validation, "patient_id is required")
	}
	known, err := s.patients.Exists(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, apperr.New(apperr.NotFound, "patient %s not found", in.PatientID)
	}

	visitType := TypeOPD
	if in.VisitType != "" {
		var ok bool
		visitType, ok = ParseType(in.VisitType)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid visit_type: %q", in.VisitType)
		}
	}

	status := StatusScheduled
	if in.Status != "" {
		var ok bool
		status, ok = ParseStatus(in.Status)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid status: %q", in.Status)
		}
	}

	v := &Visit{
		PatientID:       in.PatientID,
		VisitType:       visitType,
		Status:          status,
		StartTime:       time.Now().UTC(),
		ReasonForVisit:  in.ReasonForVisit,
		ReferringDoctor: in.ReferringDoctor,
		Notes:           in.Notes,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// UpdateInput has no patient or start time fields; the visit's owner and
// opening moment are fixed at creation.
type UpdateInput struct {
	VisitType       *string    `json:"visit_type"`
	Status          *string    `json:"status"`
	EndTime         *time.Time `json:"end_time"`
	ReasonForVisit  *string    `json:"reason_for_visit"`
	ReferringDoctor *uuid.UUID `json:"referring_doctor"`
	Notes           *string    `json:"visit_notes"`
}

func (s *Service) Update(ctx context.Context, actor auth.ActingUser, id uuid.UUID, in UpdateInput) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.VisitType != nil {
		visitType, ok := ParseType(*in.VisitType)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid visit_type: %q", *in.VisitType)
		}
		v.VisitType = visitType
	}
	if in.Status != nil {
		status, ok := ParseStatus(*in.Status)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid status: %q", *in.Status)
		}
		v.Status = status
	}
	if in.EndTime != nil {
		v.EndTime = in.EndTime
	}
	if in.ReasonForVisit != nil {
		v.ReasonForVisit = in.ReasonForVisit
	}
	if in.ReferringDoctor != nil {
		v.ReferringDoctor = in.ReferringDoctor
	}
	if in.Notes != nil {
		v.Notes = in.Notes
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes the visit and every queue entry it owns. Queue entries are
// removed first.
func (s *Service) Delete(ctx context.Context, actor auth.ActingUser, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.queue.DeleteByVisit(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RemoveForPatient deletes every visit belonging to the patient, queue entries
// first for each visit. Satisfies the patient module's purger dependency.
func (s *Service) RemoveForPatient(ctx context.Context, patientID uuid.UUID) (int, error) {
	ids, err := s.repo.IDsByPatient(ctx, patientID)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if _, err := s.queue.DeleteByVisit(ctx, id); err != nil {
			return 0, err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}
