package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentalworks/clinic-scheduling/internal/appointment"
)

type CreateAppointmentRequest struct {
	PatientID   string    `json:"patient_id" validate:"required,uuid"`
	Doctor      string    `json:"doctor" validate:"required"` // doctor id, or a legacy doctor name
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending scheduled"`
	Reason      string    `json:"reason" validate:"max=500"`
	Note        string    `json:"note" validate:"max=2000"`
}

type UpdateAppointmentRequest struct {
	ScheduledAt        *time.Time `json:"scheduled_at,omitempty"`
	Reason             *string    `json:"reason,omitempty" validate:"omitempty,max=500"`
	Note               *string    `json:"note,omitempty" validate:"omitempty,max=2000"`
	CancellationReason *string    `json:"cancellation_reason,omitempty" validate:"omitempty,max=500"`
	Transition         string     `json:"transition,omitempty" validate:"omitempty,oneof=schedule cancel"`
}

type AppointmentResponse struct {
	ID                    uuid.UUID  `json:"id"`
	PatientID             uuid.UUID  `json:"patient_id"`
	PatientName           string     `json:"patient_name,omitempty"`
	DoctorID              *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName            string     `json:"doctor_name"`
	ScheduledAt           time.Time  `json:"scheduled_at"`
	Status                string     `json:"status"`
	Reason                string     `json:"reason,omitempty"`
	Note                  string     `json:"note,omitempty"`
	CancellationReason    *string    `json:"cancellation_reason,omitempty"`
	ConfirmationEmailSent bool       `json:"confirmation_email_sent"`
	ReminderEmailSent     bool       `json:"reminder_email_sent"`
	CalendarEventID       *string    `json:"calendar_event_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                    a.ID,
		PatientID:             a.PatientID,
		PatientName:           a.PatientName,
		DoctorID:              a.DoctorID,
		DoctorName:            a.DoctorName,
		ScheduledAt:           a.ScheduledAt,
		Status:                string(a.Status),
		Reason:                a.Reason,
		Note:                  a.Note,
		CancellationReason:    a.CancellationReason,
		ConfirmationEmailSent: a.ConfirmationEmailSent,
		ReminderEmailSent:     a.ReminderEmailSent,
		CalendarEventID:       a.CalendarEventID,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
