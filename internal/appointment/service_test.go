package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	redisclient "github.com/dentalworks/clinic-scheduling/internal/redis"
)

// fakeStore is an in-memory Store for service and runner tests.
type fakeStore struct {
	appts     map[uuid.UUID]*Appointment
	patients  map[uuid.UUID]*Patient
	updateErr error
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appts:    make(map[uuid.UUID]*Appointment),
		patients: make(map[uuid.UUID]*Patient),
	}
}

func (f *fakeStore) addPatient() *Patient {
	p := &Patient{ID: uuid.New(), Name: "Ana Flores"}
	f.patients[p.ID] = p
	return p
}

func (f *fakeStore) addAppointment(a Appointment) *Appointment {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.appts[a.ID] = &a
	return &a
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, in CreateInput) (*Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a := &Appointment{
		ID:          uuid.New(),
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		DoctorName:  in.DoctorName,
		ScheduledAt: in.ScheduledAt,
		Status:      in.Status,
		Reason:      in.Reason,
		Note:        in.Note,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if p, ok := f.patients[in.PatientID]; ok {
		a.PatientName = p.Name
	}
	f.appts[a.ID] = a
	cp := *a
	return &cp, nil
}

func (f *fakeStore) Update(_ context.Context, id uuid.UUID, patch Patch) (*Appointment, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	a, ok := f.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	if patch.ScheduledAt != nil {
		a.ScheduledAt = *patch.ScheduledAt
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Reason != nil {
		a.Reason = *patch.Reason
	}
	if patch.Note != nil {
		a.Note = *patch.Note
	}
	if patch.CancellationReason != nil {
		a.CancellationReason = patch.CancellationReason
	}
	if patch.ConfirmationEmailSent != nil {
		a.ConfirmationEmailSent = *patch.ConfirmationEmailSent
	}
	if patch.ReminderEmailSent != nil {
		a.ReminderEmailSent = *patch.ReminderEmailSent
	}
	if patch.CalendarEventID != nil {
		a.CalendarEventID = patch.CalendarEventID
	}
	if patch.ClearCalendarEventID {
		a.CalendarEventID = nil
	}
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (f *fakeStore) ListActiveByDoctor(_ context.Context, doctorID uuid.UUID, from, to time.Time) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.appts {
		if a.DoctorID == nil || *a.DoctorID != doctorID || !a.Status.Active() {
			continue
		}
		if a.ScheduledAt.Before(from) || !a.ScheduledAt.Before(to) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) ListByPatient(_ context.Context, patientID uuid.UUID) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveAtSlot(_ context.Context, doctorID uuid.UUID, at time.Time) (*Appointment, error) {
	for _, a := range f.appts {
		if a.DoctorID != nil && *a.DoctorID == doctorID && a.Status.Active() && a.ScheduledAt.Equal(at) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

func (f *fakeStore) ListDueReminders(_ context.Context, from, to time.Time) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.appts {
		if a.Status != StatusScheduled || a.ReminderEmailSent {
			continue
		}
		if a.ScheduledAt.Before(from) || !a.ScheduledAt.Before(to) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) GetPatientByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeDispatcher struct {
	confirmations int
	cancellations int
	reminders     int
	lastReason    *string
	err           error
}

func (f *fakeDispatcher) SendConfirmation(context.Context, uuid.UUID) error {
	f.confirmations++
	return f.err
}

func (f *fakeDispatcher) SendCancellation(_ context.Context, _ uuid.UUID, reason *string) error {
	f.cancellations++
	f.lastReason = reason
	return f.err
}

func (f *fakeDispatcher) SendReminder(context.Context, uuid.UUID) error {
	f.reminders++
	return f.err
}

type fakeCalendar struct {
	creates int
	updates int
	deletes int
	eventID string
	err     error
}

func (f *fakeCalendar) CreateEvent(context.Context, uuid.UUID) (string, error) {
	f.creates++
	if f.err != nil {
		return "", f.err
	}
	return f.eventID, nil
}

func (f *fakeCalendar) UpdateEvent(context.Context, uuid.UUID) error {
	f.updates++
	return f.err
}

func (f *fakeCalendar) DeleteEvent(context.Context, uuid.UUID) error {
	f.deletes++
	return f.err
}

// fakeLocker runs the critical section inline. When busy is set it
// simulates a lost SetNX race.
type fakeLocker struct {
	busy  bool
	calls int
}

func (f *fakeLocker) WithSlotLock(ctx context.Context, _ uuid.UUID, _ time.Time, fn func(ctx context.Context) error) error {
	f.calls++
	if f.busy {
		return redisclient.ErrLockNotAcquired
	}
	return fn(ctx)
}

type serviceFixture struct {
	store      *fakeStore
	dispatcher *fakeDispatcher
	calendar   *fakeCalendar
	locker     *fakeLocker
	svc        *Service
}

func newServiceFixture() *serviceFixture {
	store := newFakeStore()
	dispatcher := &fakeDispatcher{}
	cal := &fakeCalendar{eventID: "evt-123"}
	locker := &fakeLocker{}
	log := zerolog.Nop()
	effects := NewEffectRunner(store, dispatcher, cal, log)
	return &serviceFixture{
		store:      store,
		dispatcher: dispatcher,
		calendar:   cal,
		locker:     locker,
		svc:        NewService(store, locker, effects, log),
	}
}

func slot(hour int) time.Time {
	return time.Date(2026, time.September, 7, hour, 0, 0, 0, time.UTC)
}

func TestCreateScheduledFiresConfirmationAndCalendar(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	doctorID := uuid.New()

	appt, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		DoctorName:  "Dr. Reyes",
		ScheduledAt: slot(10),
		Status:      StatusScheduled,
		Reason:      "Cleaning",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fx.dispatcher.confirmations != 1 {
		t.Errorf("expected 1 confirmation, got %d", fx.dispatcher.confirmations)
	}
	if fx.calendar.creates != 1 {
		t.Errorf("expected 1 calendar create, got %d", fx.calendar.creates)
	}
	if !appt.ConfirmationEmailSent {
		t.Error("confirmation flag not set on the returned appointment")
	}
	if appt.CalendarEventID == nil || *appt.CalendarEventID != "evt-123" {
		t.Errorf("calendar event id not persisted: %v", appt.CalendarEventID)
	}
	if fx.locker.calls != 1 {
		t.Errorf("expected the booking to run under the slot lock, got %d lock calls", fx.locker.calls)
	}
}

func TestCreatePendingFiresNothing(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	doctorID := uuid.New()

	appt, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		DoctorName:  "Dr. Reyes",
		ScheduledAt: slot(10),
		Status:      StatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fx.dispatcher.confirmations != 0 || fx.calendar.creates != 0 {
		t.Error("a pending booking must not trigger side effects")
	}
	if appt.ConfirmationEmailSent {
		t.Error("confirmation flag set without a send")
	}
}

func TestCreateSurvivesFailingSideEffects(t *testing.T) {
	fx := newServiceFixture()
	fx.dispatcher.err = errors.New("smtp down")
	fx.calendar.err = errors.New("provider 500")
	patient := fx.store.addPatient()
	doctorID := uuid.New()

	appt, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		DoctorName:  "Dr. Reyes",
		ScheduledAt: slot(10),
		Status:      StatusScheduled,
	})
	if err != nil {
		t.Fatalf("side-effect failures must not fail the booking: %v", err)
	}

	if appt.Status != StatusScheduled {
		t.Errorf("status = %s, want scheduled", appt.Status)
	}
	if appt.ConfirmationEmailSent {
		t.Error("flag set although the email failed")
	}
	if appt.CalendarEventID != nil {
		t.Error("event id set although the provider call failed")
	}
	stored, _ := fx.store.GetByID(context.Background(), appt.ID)
	if stored.Status != StatusScheduled {
		t.Errorf("stored status = %s, want scheduled", stored.Status)
	}
}

func TestCreateRejectsCancelledStatus(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()

	_, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   patient.ID,
		ScheduledAt: slot(10),
		Status:      StatusCancelled,
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestCreateUnknownPatient(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   uuid.New(),
		ScheduledAt: slot(10),
		Status:      StatusPending,
	})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("err = %v, want ErrPatientNotFound", err)
	}
}

func TestCreateConflictingSlot(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	doctorID := uuid.New()

	fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		ScheduledAt: slot(10),
		Status:      StatusScheduled,
	})

	_, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		ScheduledAt: slot(10),
		Status:      StatusScheduled,
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}
	if fx.dispatcher.confirmations != 0 {
		t.Error("a rejected booking must not send email")
	}
}

func TestCreateCancelledSlotIsFree(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	doctorID := uuid.New()

	fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		ScheduledAt: slot(10),
		Status:      StatusCancelled,
	})

	if _, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		ScheduledAt: slot(10),
		Status:      StatusPending,
	}); err != nil {
		t.Fatalf("a cancelled appointment must not block its slot: %v", err)
	}
}

func TestCreateLockContention(t *testing.T) {
	fx := newServiceFixture()
	fx.locker.busy = true
	patient := fx.store.addPatient()
	doctorID := uuid.New()

	_, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		ScheduledAt: slot(10),
		Status:      StatusScheduled,
	})
	if !errors.Is(err, ErrSlotBeingBooked) {
		t.Fatalf("err = %v, want ErrSlotBeingBooked", err)
	}
}

func TestCreateLegacyDoctorSkipsLock(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()

	appt, err := fx.svc.Create(context.Background(), CreateInput{
		PatientID:   patient.ID,
		DoctorName:  "Dr. Old Records",
		ScheduledAt: slot(10),
		Status:      StatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.DoctorID != nil {
		t.Error("legacy booking should carry no doctor id")
	}
	if fx.locker.calls != 0 {
		t.Error("a name-only doctor has no identity to lock on")
	}
}

func TestScheduleTransition(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	doctorID := uuid.New()
	appt := fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		ScheduledAt: slot(10),
		Status:      StatusPending,
	})

	updated, err := fx.svc.Update(context.Background(), appt.ID, UpdateInput{}, TransitionSchedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != StatusScheduled {
		t.Errorf("status = %s, want scheduled", updated.Status)
	}
	if fx.dispatcher.confirmations != 1 {
		t.Errorf("expected 1 confirmation, got %d", fx.dispatcher.confirmations)
	}
	if fx.calendar.creates != 1 {
		t.Errorf("expected 1 calendar create, got %d", fx.calendar.creates)
	}
	if !updated.ConfirmationEmailSent {
		t.Error("confirmation flag not set")
	}
}

func TestRescheduleSkipsResendUpdatesEvent(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	doctorID := uuid.New()
	eventID := "evt-old"
	appt := fx.store.addAppointment(Appointment{
		PatientID:             patient.ID,
		DoctorID:              &doctorID,
		ScheduledAt:           slot(10),
		Status:                StatusScheduled,
		ConfirmationEmailSent: true,
		CalendarEventID:       &eventID,
	})

	newTime := slot(14)
	updated, err := fx.svc.Update(context.Background(), appt.ID, UpdateInput{ScheduledAt: &newTime}, TransitionSchedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fx.dispatcher.confirmations != 0 {
		t.Error("confirmation must not be re-sent once the flag is set")
	}
	if fx.calendar.updates != 1 || fx.calendar.creates != 0 {
		t.Errorf("expected an event update, got creates=%d updates=%d", fx.calendar.creates, fx.calendar.updates)
	}
	if !updated.ScheduledAt.Equal(newTime) {
		t.Errorf("scheduled_at = %s, want %s", updated.ScheduledAt, newTime)
	}
}

func TestCancelTransition(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	doctorID := uuid.New()
	eventID := "evt-123"
	appt := fx.store.addAppointment(Appointment{
		PatientID:       patient.ID,
		DoctorID:        &doctorID,
		ScheduledAt:     slot(10),
		Status:          StatusScheduled,
		CalendarEventID: &eventID,
	})

	reason := "patient request"
	updated, err := fx.svc.Update(context.Background(), appt.ID, UpdateInput{CancellationReason: &reason}, TransitionCancel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != StatusCancelled {
		t.Errorf("status = %s, want cancelled", updated.Status)
	}
	if fx.dispatcher.cancellations != 1 {
		t.Errorf("expected 1 cancellation email, got %d", fx.dispatcher.cancellations)
	}
	if fx.dispatcher.lastReason == nil || *fx.dispatcher.lastReason != reason {
		t.Error("cancellation reason not passed to the dispatcher")
	}
	if fx.calendar.deletes != 1 {
		t.Errorf("expected exactly 1 calendar delete, got %d", fx.calendar.deletes)
	}
	if updated.CalendarEventID != nil {
		t.Error("event id must be cleared after the external event is gone")
	}
}

func TestCancelWithoutEventSkipsCalendar(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	appt := fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		ScheduledAt: slot(10),
		Status:      StatusPending,
	})

	if _, err := fx.svc.Update(context.Background(), appt.ID, UpdateInput{}, TransitionCancel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fx.dispatcher.cancellations != 1 {
		t.Error("cancellation email goes out even without a calendar event")
	}
	if fx.calendar.deletes != 0 {
		t.Error("no event id, nothing to delete")
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	appt := fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		ScheduledAt: slot(10),
		Status:      StatusCancelled,
	})

	for _, transition := range []Transition{TransitionSchedule, TransitionCancel} {
		_, err := fx.svc.Update(context.Background(), appt.ID, UpdateInput{}, transition)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s from cancelled: err = %v, want ErrInvalidTransition", transition, err)
		}
	}
	if fx.dispatcher.cancellations != 0 || fx.dispatcher.confirmations != 0 {
		t.Error("a rejected transition must not emit side effects")
	}
}

func TestUnknownTransition(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	appt := fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		ScheduledAt: slot(10),
		Status:      StatusPending,
	})

	_, err := fx.svc.Update(context.Background(), appt.ID, UpdateInput{}, Transition("confirm"))
	if !errors.Is(err, ErrUnknownTransition) {
		t.Fatalf("err = %v, want ErrUnknownTransition", err)
	}
}

func TestPlainFieldEdit(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	appt := fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		ScheduledAt: slot(10),
		Status:      StatusScheduled,
	})

	note := "bring previous x-rays"
	updated, err := fx.svc.Update(context.Background(), appt.ID, UpdateInput{Note: &note}, TransitionNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Note != note {
		t.Errorf("note = %q, want %q", updated.Note, note)
	}
	if fx.dispatcher.confirmations != 0 || fx.calendar.creates != 0 {
		t.Error("a plain edit has no side effects")
	}
}

func TestUpdateUnknownAppointment(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.svc.Update(context.Background(), uuid.New(), UpdateInput{}, TransitionCancel)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("err = %v, want ErrAppointmentNotFound", err)
	}
}

func TestSendDueReminders(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	now := slot(8)

	due := fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		ScheduledAt: now.Add(2 * time.Hour),
		Status:      StatusScheduled,
	})
	// Outside the window.
	fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		ScheduledAt: now.Add(48 * time.Hour),
		Status:      StatusScheduled,
	})
	// Already reminded.
	fx.store.addAppointment(Appointment{
		PatientID:         patient.ID,
		ScheduledAt:       now.Add(time.Hour),
		Status:            StatusScheduled,
		ReminderEmailSent: true,
	})
	// Pending bookings get no reminder.
	fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		ScheduledAt: now.Add(time.Hour),
		Status:      StatusPending,
	})

	n, err := fx.svc.SendDueReminders(context.Background(), now, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("due = %d, want 1", n)
	}
	if fx.dispatcher.reminders != 1 {
		t.Errorf("expected 1 reminder, got %d", fx.dispatcher.reminders)
	}
	stored, _ := fx.store.GetByID(context.Background(), due.ID)
	if !stored.ReminderEmailSent {
		t.Error("reminder flag not persisted")
	}

	// A second pass over the same window is a no-op.
	n, err = fx.svc.SendDueReminders(context.Background(), now, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || fx.dispatcher.reminders != 1 {
		t.Errorf("second pass re-sent reminders: due=%d sent=%d", n, fx.dispatcher.reminders)
	}
}

func TestReminderFailureLeavesFlagUnset(t *testing.T) {
	fx := newServiceFixture()
	fx.dispatcher.err = errors.New("smtp down")
	patient := fx.store.addPatient()
	now := slot(8)

	appt := fx.store.addAppointment(Appointment{
		PatientID:   patient.ID,
		ScheduledAt: now.Add(2 * time.Hour),
		Status:      StatusScheduled,
	})

	if _, err := fx.svc.SendDueReminders(context.Background(), now, 24*time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := fx.store.GetByID(context.Background(), appt.ID)
	if stored.ReminderEmailSent {
		t.Error("flag must stay unset so the next run retries")
	}
}

func TestListByPatient(t *testing.T) {
	fx := newServiceFixture()
	patient := fx.store.addPatient()
	other := fx.store.addPatient()

	fx.store.addAppointment(Appointment{PatientID: patient.ID, ScheduledAt: slot(10), Status: StatusScheduled})
	fx.store.addAppointment(Appointment{PatientID: patient.ID, ScheduledAt: slot(12), Status: StatusCancelled})
	fx.store.addAppointment(Appointment{PatientID: other.ID, ScheduledAt: slot(14), Status: StatusScheduled})

	appts, err := fx.svc.ListByPatient(context.Background(), patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appts) != 2 {
		t.Errorf("expected 2 appointments, got %d", len(appts))
	}

	if _, err := fx.svc.ListByPatient(context.Background(), uuid.New()); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("err = %v, want ErrPatientNotFound", err)
	}
}

func TestCanTransitionTable(t *testing.T) {
	for _, tc := range []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusScheduled, true},
		{StatusPending, StatusCancelled, true},
		{StatusScheduled, StatusScheduled, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusPending, StatusPending, false},
	} {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
