package visit

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is the care pathway the visit belongs to.
type Type string

const (
	TypeOPD   Type = "OPD"
	TypeIPD   Type = "IPD"
	TypeER    Type = "ER"
	TypeANC   Type = "ANC"
	TypePNC   Type = "PNC"
	TypeVCT   Type = "VCT"
	TypeOther Type = "OTHER"
)

func Types() []Type {
	return []Type{TypeOPD, TypeIPD, TypeER, TypeANC, TypePNC, TypeVCT, TypeOther}
}

func ParseType(s string) (Type, bool) {
	for _, t := range Types() {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Status tracks the visit lifecycle from booking to discharge.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusAdmitted   Status = "admitted"
	StatusReferred   Status = "referred"
	StatusDischarged Status = "discharged"
)

func Statuses() []Status {
	return []Status{
		StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled,
		StatusAdmitted, StatusReferred, StatusDischarged,
	}
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses() {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Visit maps to the visit table. A visit owns its queue entries; deleting the
// visit removes them too.
type Visit struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	VisitType       Type       `db:"visit_type" json:"visit_type"`
	Status          Status     `db:"status" json:"status"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	EndTime         *time.Time `db:"end_time" json:"end_time,omitempty"`
	ReasonForVisit  *string    `db:"reason_for_visit" json:"reason_for_visit,omitempty"`
	ReferringDoctor *uuid.UUID `db:"referring_doctor" json:"referring_doctor,omitempty"`
	Notes           *string    `db:"visit_notes" json:"visit_notes,omitempty"`
}

// Filter narrows visit listings. Zero-valued fields are ignored.
type Filter struct {
	PatientID *uuid.UUID
	VisitType Type
	Status    Status
}
