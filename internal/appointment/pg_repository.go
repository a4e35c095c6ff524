package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

const appointmentColumns = `
	a.id, a.patient_id, p.name, a.doctor_id, a.doctor_name, a.scheduled_at,
	a.status, a.reason, a.note, a.cancellation_reason,
	a.confirmation_email_sent, a.reminder_email_sent, a.calendar_event_id,
	a.created_at, a.updated_at`

// Helpers

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.PatientName,
		&a.DoctorID,
		&a.DoctorName,
		&a.ScheduledAt,
		&a.Status,
		&a.Reason,
		&a.Note,
		&a.CancellationReason,
		&a.ConfirmationEmailSent,
		&a.ReminderEmailSent,
		&a.CalendarEventID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &p, nil
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Interface methods

func (s *PgStore) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.id = $1
	`, id)
	return scanAppointment(row)
}

func (s *PgStore) Create(ctx context.Context, in CreateInput) (*Appointment, error) {
	id := uuid.New()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO appointments (
			id, patient_id, doctor_id, doctor_name, scheduled_at, status,
			reason, note, confirmation_email_sent, reminder_email_sent,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, false, now(), now())
	`, id, in.PatientID, in.DoctorID, in.DoctorName, in.ScheduledAt, in.Status, in.Reason, in.Note)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *PgStore) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Appointment, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.ScheduledAt != nil {
		add("scheduled_at", *patch.ScheduledAt)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Reason != nil {
		add("reason", *patch.Reason)
	}
	if patch.Note != nil {
		add("note", *patch.Note)
	}
	if patch.CancellationReason != nil {
		add("cancellation_reason", *patch.CancellationReason)
	}
	if patch.ConfirmationEmailSent != nil {
		add("confirmation_email_sent", *patch.ConfirmationEmailSent)
	}
	if patch.ReminderEmailSent != nil {
		add("reminder_email_sent", *patch.ReminderEmailSent)
	}
	if patch.ClearCalendarEventID {
		sets = append(sets, "calendar_event_id = NULL")
	} else if patch.CalendarEventID != nil {
		add("calendar_event_id", *patch.CalendarEventID)
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE appointments SET "+strings.Join(sets, ", ")+" WHERE id = $1",
		args...)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAppointmentNotFound
	}

	return s.GetByID(ctx, id)
}

func (s *PgStore) ListActiveByDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]Appointment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.doctor_id = $1
		  AND a.status <> 'cancelled'
		  AND a.scheduled_at >= $2
		  AND a.scheduled_at < $3
		ORDER BY a.scheduled_at
	`, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (s *PgStore) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.patient_id = $1
		ORDER BY a.scheduled_at DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (s *PgStore) ActiveAtSlot(ctx context.Context, doctorID uuid.UUID, at time.Time) (*Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.doctor_id = $1
		  AND a.scheduled_at = $2
		  AND a.status <> 'cancelled'
		LIMIT 1
	`, doctorID, at)
	return scanAppointment(row)
}

func (s *PgStore) ListDueReminders(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.status = 'scheduled'
		  AND a.reminder_email_sent = false
		  AND a.scheduled_at >= $1
		  AND a.scheduled_at < $2
		ORDER BY a.scheduled_at
	`, from, to)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (s *PgStore) GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}
