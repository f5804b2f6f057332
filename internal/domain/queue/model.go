package queue

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Department is a fixed clinical/administrative unit a patient can be queued
// for. Values are stored in canonical casing.
type Department string

const (
	DeptTriage           Department = "Triage"
	DeptInternalMedicine Department = "Internal Medicine"
	DeptGeneralSurgery   Department = "General Surgery"
	DeptCardiology       Department = "Cardiology"
	DeptGynecology       Department = "Gynecology"
	DeptOrthopedics      Department = "Orthopedics"
	DeptPediatrics       Department = "Pediatrics"
	DeptPharmacy         Department = "Pharmacy"
	DeptEmergency        Department = "Emergency"
	DeptOphthalmology    Department = "Ophthalmology"
	DeptDental           Department = "Dental"
	DeptRadiology        Department = "Radiology"
	DeptLaboratory       Department = "Laboratory"
)

// Departments returns all departments in display order.
func Departments() []Department {
	return []Department{
		DeptTriage, DeptInternalMedicine, DeptGeneralSurgery, DeptCardiology,
		DeptGynecology, DeptOrthopedics, DeptPediatrics, DeptPharmacy,
		DeptEmergency, DeptOphthalmology, DeptDental, DeptRadiology,
		DeptLaboratory,
	}
}

// ParseDepartment resolves s to a canonical department, case-insensitively.
func ParseDepartment(s string) (Department, bool) {
	for _, d := range Departments() {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Priority is the urgency of a queue entry.
type Priority string

const (
	PriorityNormal    Priority = "Normal"
	PriorityUrgent    Priority = "Urgent"
	PriorityEmergency Priority = "Emergency"
)

func Priorities() []Priority {
	return []Priority{PriorityNormal, PriorityUrgent, PriorityEmergency}
}

func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Status is a queue entry's place in its service lifecycle. Any status may
// follow any other; there is deliberately no transition guard.
type Status string

const (
	StatusWaiting     Status = "Waiting"
	StatusInProgress  Status = "In Progress"
	StatusCompleted   Status = "Completed"
	StatusTransferred Status = "Transferred"
	StatusScheduled   Status = "Scheduled"
	StatusCancelled   Status = "Cancelled"
	StatusNoShow      Status = "No Show"
)

func Statuses() []Status {
	return []Status{
		StatusWaiting, StatusInProgress, StatusCompleted, StatusTransferred,
		StatusScheduled, StatusCancelled, StatusNoShow,
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

// Entry maps to the queue_entry table. An entry is one patient's occupancy of
// a department queue, owned by exactly one visit. VisitID and ArrivalTime are
// set at creation and never change.
type Entry struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	VisitID     uuid.UUID  `db:"visit_id" json:"visit_id"`
	Department  Department `db:"department" json:"department"`
	AssignedTo  *uuid.UUID `db:"assigned_to" json:"assigned_to,omitempty"`
	Priority    Priority   `db:"priority" json:"priority"`
	Status      Status     `db:"status" json:"status"`
	ArrivalTime time.Time  `db:"arrival_time" json:"arrival_time"`
	StartTime   *time.Time `db:"start_time" json:"start_time,omitempty"`
	EndTime     *time.Time `db:"end_time" json:"end_time,omitempty"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
}

// Filter selects the working set for list and stats operations. Zero-valued
// fields are not applied; populated fields compose with AND semantics.
type Filter struct {
	VisitID    *uuid.UUID
	Department Department
	Priority   Priority
	Status     Status
}

// Stats is the queue dashboard aggregate. Breakdown maps always carry every
// enumerated value, including zero counts.
type Stats struct {
	TotalWaiting           int                `json:"total_waiting"`
	AverageWaitTimeMinutes int                `json:"average_wait_time_minutes"`
	FilteredQueueCount     int                `json:"filtered_queue_count"`
	ByDepartment           map[Department]int `json:"by_department"`
	ByPriority             map[Priority]int   `json:"by_priority"`
	ByStatus               map[Status]int     `json:"by_status"`
}
