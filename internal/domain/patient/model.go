package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender uses the single-letter codes carried on the wire.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

func ParseGender(s string) (Gender, bool) {
	switch strings.ToUpper(s) {
	case "M":
		return GenderMale, true
	case "F":
		return GenderFemale, true
	case "O":
		return GenderOther, true
	}
	return "", false
}

// PaymentMode is how the patient settles their bills.
type PaymentMode string

const (
	PaymentCash      PaymentMode = "cash"
	PaymentInsurance PaymentMode = "insurance"
)

func ParsePaymentMode(s string) (PaymentMode, bool) {
	switch strings.ToLower(s) {
	case "cash":
		return PaymentCash, true
	case "insurance":
		return PaymentInsurance, true
	}
	return "", false
}

var bloodGroups = map[string]bool{
	"A+": true, "A-": true, "B+": true, "B-": true,
	"AB+": true, "AB-": true, "O+": true, "O-": true,
}

// ParseBloodGroup normalizes to upper case and checks against the eight ABO/Rh
// groups.
func ParseBloodGroup(s string) (string, bool) {
	bg := strings.ToUpper(s)
	return bg, bloodGroups[bg]
}

// Patient maps to the patient table. MRN is assigned once at registration and
// never changes.
type Patient struct {
	ID                    uuid.UUID   `db:"id" json:"id"`
	MRN                   string      `db:"mrn" json:"mrn"`
	FirstName             string      `db:"first_name" json:"first_name"`
	LastName              string      `db:"last_name" json:"last_name"`
	DateOfBirth           time.Time   `db:"date_of_birth" json:"date_of_birth"`
	Gender                Gender      `db:"gender" json:"gender"`
	BloodGroup            *string     `db:"blood_group" json:"blood_group,omitempty"`
	Phone                 *string     `db:"phone" json:"phone,omitempty"`
	Email                 *string     `db:"email" json:"email,omitempty"`
	Address               *string     `db:"address" json:"address,omitempty"`
	EmergencyContactName  *string     `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string     `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	PaymentMode           PaymentMode `db:"mode_of_payment" json:"mode_of_payment"`
	Insurance             *string     `db:"insurance" json:"insurance,omitempty"`
	Notes                 *string     `db:"notes" json:"notes,omitempty"`
	CreatedBy             *uuid.UUID  `db:"created_by" json:"created_by,omitempty"`
	CreatedAt             time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time   `db:"updated_at" json:"updated_at"`
}

// Age in whole years as of now, floored at zero.
func (p *Patient) Age() int {
	now := time.Now().UTC()
	years := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
