package lab

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is how fast the lab should run the test.
type Priority string

const (
	PriorityRoutine Priority = "routine"
	PriorityUrgent  Priority = "urgent"
	PriorityStat    Priority = "stat"
)

func Priorities() []Priority {
	return []Priority{PriorityRoutine, PriorityUrgent, PriorityStat}
}

func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Status tracks the order from request to result.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses() {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Order maps to the lab_order table. An order belongs to a visit and carries
// the requester and eventual result.
type Order struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	VisitID     uuid.UUID  `db:"visit_id" json:"visit_id"`
	TestName    string     `db:"test_name" json:"test_name"`
	Category    *string    `db:"category" json:"category,omitempty"`
	RequestedBy *uuid.UUID `db:"requested_by" json:"requested_by,omitempty"`
	Priority    Priority   `db:"priority" json:"priority"`
	Status      Status     `db:"status" json:"status"`
	OrderedAt   time.Time  `db:"ordered_at" json:"ordered_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	Result      *string    `db:"result" json:"result,omitempty"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
}

// Filter narrows order listings. Zero-valued fields are ignored.
type Filter struct {
	VisitID  *uuid.UUID
	Priority Priority
	Status   Status
}
