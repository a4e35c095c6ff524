package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalworks/clinic-scheduling/internal/appointment"
)

// appointmentBlock is how long a booked appointment occupies the grid,
// independent of the duration the caller asks for when querying.
const appointmentBlock = 60 * time.Minute

// WorkingHours is the clinic-wide scheduling grid. It is passed in
// explicitly so tests and per-clinic overrides stay deterministic.
type WorkingHours struct {
	StartHour    int
	EndHour      int
	SlotDuration time.Duration
}

func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		StartHour:    8,
		EndHour:      20,
		SlotDuration: 30 * time.Minute,
	}
}

func (wh WorkingHours) Validate() error {
	if wh.StartHour < 0 || wh.StartHour > 23 {
		return fmt.Errorf("start hour out of range: %d", wh.StartHour)
	}
	if wh.EndHour < 1 || wh.EndHour > 24 {
		return fmt.Errorf("end hour out of range: %d", wh.EndHour)
	}
	if wh.EndHour <= wh.StartHour {
		return fmt.Errorf("end hour %d must be after start hour %d", wh.EndHour, wh.StartHour)
	}
	if wh.SlotDuration <= 0 {
		return fmt.Errorf("slot duration must be positive: %s", wh.SlotDuration)
	}
	return nil
}

// TimeSlot is one grid position of a day. When a slot is taken, the
// occupying appointment's reference and display fields ride along.
type TimeSlot struct {
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	Available     bool       `json:"available"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	PatientName   string     `json:"patient_name,omitempty"`
	Reason        string     `json:"reason,omitempty"`
}

type DayAvailability struct {
	Date    time.Time    `json:"date"`
	Weekday time.Weekday `json:"weekday"`
	Closed  bool         `json:"closed"`
	Slots   []TimeSlot   `json:"slots"`
}

// AppointmentReader is the slice of the appointment store the calculator
// needs: active (non-cancelled) appointments for one doctor in [from, to).
type AppointmentReader interface {
	ListActiveByDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]appointment.Appointment, error)
}

// Occupancy maps slot-start instants (unix seconds) to the appointment
// holding that slot. Keyed by unix time so wall-clock equality works
// regardless of the time.Time location or monotonic reading.
type Occupancy map[int64]*appointment.Appointment

func (o Occupancy) At(t time.Time) *appointment.Appointment {
	return o[t.Unix()]
}

// BuildOccupancy expands each appointment into the consecutive grid slots
// its fixed block covers, starting at its scheduled time.
func BuildOccupancy(appts []appointment.Appointment, slotDuration time.Duration) Occupancy {
	occ := make(Occupancy, len(appts))
	per := slotsNeeded(appointmentBlock, slotDuration)
	for i := range appts {
		a := &appts[i]
		for s := 0; s < per; s++ {
			occ[a.ScheduledAt.Add(time.Duration(s)*slotDuration).Unix()] = a
		}
	}
	return occ
}

// HasContiguousRoom reports whether the slotsNeeded-1 slots after start are
// free and still inside working hours. It is the single contiguity rule
// shared by the calculator and any caller re-checking feasibility.
func HasContiguousRoom(occ Occupancy, start time.Time, needed int, wh WorkingHours) bool {
	for i := 1; i < needed; i++ {
		future := start.Add(time.Duration(i) * wh.SlotDuration)
		// A booking never spans midnight or the closing hour.
		if future.Day() != start.Day() || future.Hour() >= wh.EndHour {
			return false
		}
		if occ.At(future) != nil {
			return false
		}
	}
	return true
}

// BlockSlots is the number of grid slots one booked appointment occupies.
func BlockSlots(wh WorkingHours) int {
	return slotsNeeded(appointmentBlock, wh.SlotDuration)
}

func slotsNeeded(duration, slotDuration time.Duration) int {
	n := int(duration / slotDuration)
	if duration%slotDuration != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Calculator computes doctor availability grids. It only reads; nothing
// here reserves a slot, so results are advisory.
type Calculator struct {
	store AppointmentReader
	hours WorkingHours

	// Now is swappable for tests.
	Now func() time.Time
}

func NewCalculator(store AppointmentReader, hours WorkingHours) *Calculator {
	return &Calculator{
		store: store,
		hours: hours,
		Now:   time.Now,
	}
}

// DoctorAvailability returns one DayAvailability per calendar day in
// [start, end] (inclusive). requiredDuration defaults to one slot.
// Store errors propagate; an empty grid is never used to mask a failure.
func (c *Calculator) DoctorAvailability(ctx context.Context, doctorID uuid.UUID, start, end time.Time, requiredDuration time.Duration) ([]DayAvailability, error) {
	startDay := dateOf(start)
	endDay := dateOf(end)
	if endDay.Before(startDay) {
		return nil, fmt.Errorf("end date %s before start date %s", endDay.Format("2006-01-02"), startDay.Format("2006-01-02"))
	}
	if requiredDuration <= 0 {
		requiredDuration = c.hours.SlotDuration
	}

	appts, err := c.store.ListActiveByDoctor(ctx, doctorID, startDay, endDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list appointments for doctor %s: %w", doctorID, err)
	}

	occ := BuildOccupancy(appts, c.hours.SlotDuration)
	needed := slotsNeeded(requiredDuration, c.hours.SlotDuration)

	now := c.Now()
	today := dateOf(now)

	var days []DayAvailability
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		days = append(days, c.buildDay(day, occ, needed, now, today))
	}
	return days, nil
}

func (c *Calculator) buildDay(day time.Time, occ Occupancy, needed int, now, today time.Time) DayAvailability {
	closed := day.Weekday() == time.Sunday
	pastDay := day.Before(today)

	da := DayAvailability{
		Date:    day,
		Weekday: day.Weekday(),
		Closed:  closed,
	}

	open := time.Date(day.Year(), day.Month(), day.Day(), c.hours.StartHour, 0, 0, 0, day.Location())
	close := time.Date(day.Year(), day.Month(), day.Day(), c.hours.EndHour, 0, 0, 0, day.Location())

	for slotStart := open; slotStart.Before(close); slotStart = slotStart.Add(c.hours.SlotDuration) {
		slot := TimeSlot{
			Start: slotStart,
			End:   slotStart.Add(c.hours.SlotDuration),
		}

		occupant := occ.At(slotStart)
		if occupant != nil {
			id := occupant.ID
			slot.AppointmentID = &id
			slot.PatientName = occupant.PatientName
			slot.Reason = occupant.Reason
		}

		pastSlot := slotStart.Before(now)

		hasRoom := true
		if !closed && !pastSlot && occupant == nil {
			hasRoom = HasContiguousRoom(occ, slotStart, needed, c.hours)
		}

		slot.Available = !closed && !pastSlot && !pastDay && occupant == nil && hasRoom
		da.Slots = append(da.Slots, slot)
	}

	return da
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
