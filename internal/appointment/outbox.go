package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Dispatcher sends patient-facing notifications. Results only matter for
// logging and guard flags; failures never fail the booking.
type Dispatcher interface {
	SendConfirmation(ctx context.Context, appointmentID uuid.UUID) error
	SendCancellation(ctx context.Context, appointmentID uuid.UUID, reason *string) error
	SendReminder(ctx context.Context, appointmentID uuid.UUID) error
}

// CalendarSync mirrors appointments into the doctor's external calendar.
// CreateEvent returns the provider's event id.
type CalendarSync interface {
	CreateEvent(ctx context.Context, appointmentID uuid.UUID) (string, error)
	UpdateEvent(ctx context.Context, appointmentID uuid.UUID) error
	DeleteEvent(ctx context.Context, appointmentID uuid.UUID) error
}

type IntentKind string

const (
	IntentSendConfirmation IntentKind = "send_confirmation"
	IntentSendCancellation IntentKind = "send_cancellation"
	IntentSendReminder     IntentKind = "send_reminder"
	IntentCalendarCreate   IntentKind = "calendar_create"
	IntentCalendarUpdate   IntentKind = "calendar_update"
	IntentCalendarDelete   IntentKind = "calendar_delete"
)

// Intent is one side effect a state transition decided should happen.
// Transitions emit intents; the runner executes them, so the soft-failure
// contract lives in exactly one place.
type Intent struct {
	Kind               IntentKind
	AppointmentID      uuid.UUID
	CancellationReason *string
}

// EffectRunner executes intents sequentially. Every failure is logged and
// swallowed; guard flags and the calendar event id are persisted with
// follow-up writes only after the external call succeeds.
type EffectRunner struct {
	store      Store
	dispatcher Dispatcher
	calendar   CalendarSync
	log        zerolog.Logger
}

func NewEffectRunner(store Store, dispatcher Dispatcher, calendar CalendarSync, log zerolog.Logger) *EffectRunner {
	return &EffectRunner{
		store:      store,
		dispatcher: dispatcher,
		calendar:   calendar,
		log:        log,
	}
}

// Run executes intents for appt in order. When a follow-up flag write
// succeeds, appt is updated in place so callers see the final state.
func (r *EffectRunner) Run(ctx context.Context, appt *Appointment, intents []Intent) {
	for _, intent := range intents {
		switch intent.Kind {
		case IntentSendConfirmation:
			r.runConfirmation(ctx, appt, intent)
		case IntentSendCancellation:
			r.runCancellation(ctx, appt, intent)
		case IntentSendReminder:
			r.runReminder(ctx, appt, intent)
		case IntentCalendarCreate:
			r.runCalendarCreate(ctx, appt, intent)
		case IntentCalendarUpdate:
			r.runCalendarUpdate(ctx, appt, intent)
		case IntentCalendarDelete:
			r.runCalendarDelete(ctx, appt, intent)
		default:
			r.log.Error().Str("kind", string(intent.Kind)).Msg("unknown side-effect intent")
		}
	}
}

func (r *EffectRunner) runConfirmation(ctx context.Context, appt *Appointment, intent Intent) {
	if err := r.dispatcher.SendConfirmation(ctx, intent.AppointmentID); err != nil {
		r.warn(intent, err, "confirmation email failed")
		return
	}

	sent := true
	updated, err := r.store.Update(ctx, intent.AppointmentID, Patch{ConfirmationEmailSent: &sent})
	if err != nil {
		r.warn(intent, err, "confirmation sent but flag write failed")
		return
	}
	*appt = *updated
}

func (r *EffectRunner) runCancellation(ctx context.Context, appt *Appointment, intent Intent) {
	if err := r.dispatcher.SendCancellation(ctx, intent.AppointmentID, intent.CancellationReason); err != nil {
		r.warn(intent, err, "cancellation email failed")
	}
}

func (r *EffectRunner) runReminder(ctx context.Context, appt *Appointment, intent Intent) {
	if err := r.dispatcher.SendReminder(ctx, intent.AppointmentID); err != nil {
		r.warn(intent, err, "reminder email failed")
		return
	}

	sent := true
	updated, err := r.store.Update(ctx, intent.AppointmentID, Patch{ReminderEmailSent: &sent})
	if err != nil {
		r.warn(intent, err, "reminder sent but flag write failed")
		return
	}
	*appt = *updated
}

func (r *EffectRunner) runCalendarCreate(ctx context.Context, appt *Appointment, intent Intent) {
	eventID, err := r.calendar.CreateEvent(ctx, intent.AppointmentID)
	if err != nil {
		r.warn(intent, err, "calendar event create failed")
		return
	}

	updated, err := r.store.Update(ctx, intent.AppointmentID, Patch{CalendarEventID: &eventID})
	if err != nil {
		r.warn(intent, err, "calendar event created but id write failed")
		return
	}
	*appt = *updated
}

func (r *EffectRunner) runCalendarUpdate(ctx context.Context, appt *Appointment, intent Intent) {
	if err := r.calendar.UpdateEvent(ctx, intent.AppointmentID); err != nil {
		r.warn(intent, err, "calendar event update failed")
	}
}

func (r *EffectRunner) runCalendarDelete(ctx context.Context, appt *Appointment, intent Intent) {
	if err := r.calendar.DeleteEvent(ctx, intent.AppointmentID); err != nil {
		r.warn(intent, err, "calendar event delete failed")
		return
	}

	// Drop the stale reference so a later write cannot touch a dead event.
	updated, err := r.store.Update(ctx, intent.AppointmentID, Patch{ClearCalendarEventID: true})
	if err != nil {
		r.warn(intent, err, "calendar event deleted but id clear failed")
		return
	}
	*appt = *updated
}

func (r *EffectRunner) warn(intent Intent, err error, msg string) {
	r.log.Warn().
		Err(err).
		Str("intent", string(intent.Kind)).
		Str("appointment_id", intent.AppointmentID.String()).
		Msg(msg)
}
