package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether the appointment still holds its slot.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusScheduled
}

// CanTransition encodes the one-directional state machine: cancelled is
// terminal, re-scheduling an already scheduled appointment is allowed.
func CanTransition(from, to Status) bool {
	if from == StatusCancelled {
		return false
	}
	switch to {
	case StatusScheduled, StatusCancelled:
		return true
	}
	return false
}

type Patient struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Appointment is the persisted booking record. DoctorID is nil for legacy
// rows that reference the doctor by free-text name only; DoctorName always
// carries the display name.
type Appointment struct {
	ID                    uuid.UUID
	PatientID             uuid.UUID
	PatientName           string
	DoctorID              *uuid.UUID
	DoctorName            string
	ScheduledAt           time.Time
	Status                Status
	Reason                string
	Note                  string
	CancellationReason    *string
	ConfirmationEmailSent bool
	ReminderEmailSent     bool
	CalendarEventID       *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
