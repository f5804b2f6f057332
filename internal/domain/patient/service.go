package patient

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

// VisitPurger removes every visit belonging to a patient, queue entries
// included. Patient deletion runs this cascade before removing the patient row.
type VisitPurger interface {
	RemoveForPatient(ctx context.Context, patientID uuid.UUID) (int, error)
}

type Service struct {
	repo   Repository
	visits VisitPurger
}

func NewService(repo Repository, visits VisitPurger) *Service {
	return &Service{repo: repo, visits: visits}
}

type CreateInput struct {
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	DateOfBirth           string  `json:"date_of_birth"`
	Gender                string  `json:"gender"`
	BloodGroup            *string `json:"blood_group"`
	Phone                 *string `json:"phone"`
	Email                 *string `json:"email"`
	Address               *string `json:"address"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	PaymentMode           string  `json:"mode_of_payment"`
	Insurance             *string `json:"insurance"`
	Notes                 *string `json:"notes"`
}

// Create registers a patient. The MRN is generated server-side; the acting
// user is recorded as the creator.
func (s *Service) Create(ctx context.Context, actor auth.ActingUser, in CreateInput) (*Patient, error) {
	if in.FirstName == "" || in.LastName == "" {
		return nil, apperr.New(apperr.Validation, "first and last name are required")
	}
	dob, err := time.Parse("2006-01-02", in.DateOfBirth)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid date_of_birth %q, want YYYY-MM-DD", in.DateOfBirth)
	}
	gender, ok := ParseGender(in.Gender)
	if !ok {
		return nil, apperr.New(apperr.Validation, "invalid gender: %q", in.Gender)
	}

	mode := PaymentCash
	if in.PaymentMode != "" {
		mode, ok = ParsePaymentMode(in.PaymentMode)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid mode_of_payment: %q", in.PaymentMode)
		}
	}

	var bloodGroup *string
	if in.BloodGroup != nil && *in.BloodGroup != "" {
		bg, ok := ParseBloodGroup(*in.BloodGroup)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid blood_group: %q", *in.BloodGroup)
		}
		bloodGroup = &bg
	}

	now := time.Now().UTC()
	creator := actor.ID
	p := &Patient{
		FirstName:             in.FirstName,
		LastName:              in.LastName,
		DateOfBirth:           dob,
		Gender:                gender,
		BloodGroup:            bloodGroup,
		Phone:                 in.Phone,
		Email:                 in.Email,
		Address:               in.Address,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
		PaymentMode:           mode,
		Insurance:             in.Insurance,
		Notes:                 in.Notes,
		CreatedBy:             &creator,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return s.repo.GetByMRN(ctx, mrn)
}

func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, search, limit, offset)
}

// UpdateInput has no MRN field; the record number is permanent.
type UpdateInput struct {
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	DateOfBirth           *string `json:"date_of_birth"`
	Gender                *string `json:"gender"`
	BloodGroup            *string `json:"blood_group"`
	Phone                 *string `json:"phone"`
	Email                 *string `json:"email"`
	Address               *string `json:"address"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	PaymentMode           *string `json:"mode_of_payment"`
	Insurance             *string `json:"insurance"`
	Notes                 *string `json:"notes"`
}

func (s *Service) Update(ctx context.Context, actor auth.ActingUser, id uuid.UUID, in UpdateInput) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		if *in.FirstName == "" {
			return nil, apperr.New(apperr.Validation, "first_name cannot be empty")
		}
		p.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if *in.LastName == "" {
			return nil, apperr.New(apperr.Validation, "last_name cannot be empty")
		}
		p.LastName = *in.LastName
	}
	if in.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *in.DateOfBirth)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "invalid date_of_birth %q, want YYYY-MM-DD", *in.DateOfBirth)
		}
		p.DateOfBirth = dob
	}
	if in.Gender != nil {
		gender, ok := ParseGender(*in.Gender)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid gender: %q", *in.Gender)
		}
		p.Gender = gender
	}
	if in.PaymentMode != nil {
		mode, ok := ParsePaymentMode(*in.PaymentMode)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid mode_of_payment: %q", *in.PaymentMode)
		}
		p.PaymentMode = mode
	}
	if in.BloodGroup != nil {
		if *in.BloodGroup == "" {
			p.BloodGroup = nil
		} else {
			bg, ok := ParseBloodGroup(*in.BloodGroup)
			if !ok {
				return nil, apperr.New(apperr.Validation, "invalid blood_group: %q", *in.BloodGroup)
			}
			p.BloodGroup = &bg
		}
	}
	if in.Phone != nil {
		p.Phone = in.Phone
	}
	if in.Email != nil {
		p.Email = in.Email
	}
	if in.Address != nil {
		p.Address = in.Address
	}
	if in.EmergencyContactName != nil {
		p.EmergencyContactName = in.EmergencyContactName
	}
	if in.EmergencyContactPhone != nil {
		p.EmergencyContactPhone = in.EmergencyContactPhone
	}
	if in.Insurance != nil {
		p.Insurance = in.Insurance
	}
	if in.Notes != nil {
		p.Notes = in.Notes
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the patient and every visit the patient owns. Visits are
// removed first, each taking its queue entries with it.
func (s *Service) Delete(ctx context.Context, actor auth.ActingUser, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.visits.RemoveForPatient(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
