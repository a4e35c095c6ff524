package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	redisclient "github.com/dentalworks/clinic-scheduling/internal/redis"
)

var (
	ErrInvalidStatus     = errors.New("invalid initial status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownTransition = errors.New("unknown transition")
	ErrSlotTaken         = errors.New("slot already has an active appointment")
	ErrSlotBeingBooked   = errors.New("slot is currently being booked, please retry")
)

// Transition tags an update with the state change it drives. An empty
// transition is a plain field edit with no side effects.
type Transition string

const (
	TransitionNone     Transition = ""
	TransitionSchedule Transition = "schedule"
	TransitionCancel   Transition = "cancel"
)

type UpdateInput struct {
	ScheduledAt        *time.Time
	Reason             *string
	Note               *string
	CancellationReason *string
}

// Service owns the appointment lifecycle: the store write is the durable
// source of truth, side effects run afterwards and are best-effort.
type Service struct {
	store   Store
	locker  redisclient.Locker
	effects *EffectRunner
	log     zerolog.Logger
}

func NewService(store Store, locker redisclient.Locker, effects *EffectRunner, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		locker:  locker,
		effects: effects,
		log:     log,
	}
}

// Create books a new appointment. For doctors referenced by id the insert
// runs inside a per-slot lock with an in-lock conflict re-check, so an
// advisory availability read can never turn into a double booking. Legacy
// free-text doctor rows have no identity to lock on and skip the guard.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Appointment, error) {
	if !in.Status.Valid() || in.Status == StatusCancelled {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	if _, err := s.store.GetPatientByID(ctx, in.PatientID); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	var created *Appointment

	insert := func(insertCtx context.Context) error {
		appt, err := s.store.Create(insertCtx, in)
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		created = appt
		return nil
	}

	if in.DoctorID != nil {
		err := s.locker.WithSlotLock(ctx, *in.DoctorID, in.ScheduledAt, func(lockCtx context.Context) error {
			existing, err := s.store.ActiveAtSlot(lockCtx, *in.DoctorID, in.ScheduledAt)
			if err != nil && !errors.Is(err, ErrAppointmentNotFound) {
				return fmt.Errorf("check slot conflict: %w", err)
			}
			if existing != nil {
				return ErrSlotTaken
			}
			return insert(lockCtx)
		})
		if err != nil {
			if errors.Is(err, redisclient.ErrLockNotAcquired) {
				return nil, ErrSlotBeingBooked
			}
			return nil, err
		}
	} else {
		if err := insert(ctx); err != nil {
			return nil, err
		}
	}

	if created.Status == StatusScheduled {
		s.effects.Run(ctx, created, []Intent{
			{Kind: IntentSendConfirmation, AppointmentID: created.ID},
			{Kind: IntentCalendarCreate, AppointmentID: created.ID},
		})
	}

	return created, nil
}

// Update applies a field merge-write, then fires the side effects the
// transition calls for. The write commits regardless of side-effect
// outcome; a failed confirmation email never unbooks a patient.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput, transition Transition) (*Appointment, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := Patch{
		ScheduledAt:        in.ScheduledAt,
		Reason:             in.Reason,
		Note:               in.Note,
		CancellationReason: in.CancellationReason,
	}

	switch transition {
	case TransitionNone:
		if patch.Empty() {
			return current, nil
		}
	case TransitionSchedule:
		if !CanTransition(current.Status, StatusScheduled) {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, StatusScheduled)
		}
		status := StatusScheduled
		patch.Status = &status
	case TransitionCancel:
		if !CanTransition(current.Status, StatusCancelled) {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, StatusCancelled)
		}
		status := StatusCancelled
		patch.Status = &status
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, transition)
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.effects.Run(ctx, updated, s.transitionIntents(updated, transition, in.CancellationReason))

	return updated, nil
}

// transitionIntents decides what should happen after a committed
// transition; executing it is the runner's job.
func (s *Service) transitionIntents(appt *Appointment, transition Transition, reason *string) []Intent {
	var intents []Intent

	switch transition {
	case TransitionSchedule:
		if !appt.ConfirmationEmailSent {
			intents = append(intents, Intent{Kind: IntentSendConfirmation, AppointmentID: appt.ID})
		}
		if appt.CalendarEventID != nil {
			intents = append(intents, Intent{Kind: IntentCalendarUpdate, AppointmentID: appt.ID})
		} else {
			intents = append(intents, Intent{Kind: IntentCalendarCreate, AppointmentID: appt.ID})
		}
	case TransitionCancel:
		intents = append(intents, Intent{
			Kind:               IntentSendCancellation,
			AppointmentID:      appt.ID,
			CancellationReason: reason,
		})
		if appt.CalendarEventID != nil {
			intents = append(intents, Intent{Kind: IntentCalendarDelete, AppointmentID: appt.ID})
		}
	}

	return intents
}

// Get returns one appointment by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.store.GetByID(ctx, id)
}

// ListByPatient returns a patient's appointment history.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	if _, err := s.store.GetPatientByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.store.ListByPatient(ctx, patientID)
}

// SendDueReminders dispatches reminder emails for scheduled appointments
// starting within the window. The reminder worker calls this on a ticker.
func (s *Service) SendDueReminders(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	due, err := s.store.ListDueReminders(ctx, now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	for i := range due {
		appt := due[i]
		s.effects.Run(ctx, &appt, []Intent{{Kind: IntentSendReminder, AppointmentID: appt.ID}})
	}

	return len(due), nil
}
