package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

type CreateInput struct {
	PatientID   uuid.UUID
	DoctorID    *uuid.UUID
	DoctorName  string
	ScheduledAt time.Time
	Status      Status
	Reason      string
	Note        string
}

// Patch is a partial update; nil fields are left untouched.
// ClearCalendarEventID nulls the column after the external event is gone.
type Patch struct {
	ScheduledAt           *time.Time
	Status                *Status
	Reason                *string
	Note                  *string
	CancellationReason    *string
	ConfirmationEmailSent *bool
	ReminderEmailSent     *bool
	CalendarEventID       *string
	ClearCalendarEventID  bool
}

func (p Patch) Empty() bool {
	return p.ScheduledAt == nil && p.Status == nil && p.Reason == nil &&
		p.Note == nil && p.CancellationReason == nil &&
		p.ConfirmationEmailSent == nil && p.ReminderEmailSent == nil &&
		p.CalendarEventID == nil && !p.ClearCalendarEventID
}

// Store contains all appointment persistence the service needs.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Create(ctx context.Context, in CreateInput) (*Appointment, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Appointment, error)

	// ListActiveByDoctor returns non-cancelled appointments for the doctor
	// with scheduled_at in [from, to).
	ListActiveByDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]Appointment, error)

	// ListByPatient returns the patient's appointments, newest first,
	// cancelled ones included.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error)

	// ActiveAtSlot is the in-lock conflict check at booking time.
	ActiveAtSlot(ctx context.Context, doctorID uuid.UUID, at time.Time) (*Appointment, error)

	// ListDueReminders returns scheduled appointments inside [from, to)
	// whose reminder has not gone out yet.
	ListDueReminders(ctx context.Context, from, to time.Time) ([]Appointment, error)

	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)
}
