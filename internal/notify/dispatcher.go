// Package notify renders and sends patient-facing appointment emails.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentalworks/clinic-scheduling/internal/appointment"
)

var ErrNoRecipient = errors.New("patient has no email on file")

// AppointmentReader is the slice of the store the dispatcher reads from.
type AppointmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	GetPatientByID(ctx context.Context, id uuid.UUID) (*appointment.Patient, error)
}

// EmailDispatcher implements the lifecycle manager's Dispatcher contract.
type EmailDispatcher struct {
	store  AppointmentReader
	mailer Mailer
	log    zerolog.Logger
}

func NewEmailDispatcher(store AppointmentReader, mailer Mailer, log zerolog.Logger) *EmailDispatcher {
	return &EmailDispatcher{
		store:  store,
		mailer: mailer,
		log:    log,
	}
}

func (d *EmailDispatcher) SendConfirmation(ctx context.Context, appointmentID uuid.UUID) error {
	return d.send(ctx, appointmentID, confirmationTemplate, nil)
}

func (d *EmailDispatcher) SendCancellation(ctx context.Context, appointmentID uuid.UUID, reason *string) error {
	note := ""
	if reason != nil && *reason != "" {
		note = "Reason: " + *reason + "."
	}
	extra := map[string]string{"cancellation_note": note}
	return d.send(ctx, appointmentID, cancellationTemplate, extra)
}

func (d *EmailDispatcher) SendReminder(ctx context.Context, appointmentID uuid.UUID) error {
	return d.send(ctx, appointmentID, reminderTemplate, nil)
}

func (d *EmailDispatcher) send(ctx context.Context, appointmentID uuid.UUID, tmpl Template, extra map[string]string) error {
	appt, err := d.store.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("load appointment: %w", err)
	}

	patient, err := d.store.GetPatientByID(ctx, appt.PatientID)
	if err != nil {
		return fmt.Errorf("load patient: %w", err)
	}
	if patient.Email == nil || *patient.Email == "" {
		return fmt.Errorf("%w: patient %s", ErrNoRecipient, patient.ID)
	}

	data := map[string]string{
		"patient_name": patient.Name,
		"doctor_name":  appt.DoctorName,
		"date":         appt.ScheduledAt.Format("Monday, 2 January 2006"),
		"time":         appt.ScheduledAt.Format("15:04"),
		"reason":       appt.Reason,
	}
	for k, v := range extra {
		data[k] = v
	}

	subject, body := tmpl.Render(data)
	if err := d.mailer.Send(ctx, *patient.Email, subject, body); err != nil {
		return err
	}

	d.log.Debug().
		Str("appointment_id", appointmentID.String()).
		Str("subject", subject).
		Msg("notification sent")
	return nil
}
