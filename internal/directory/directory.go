package directory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// DefaultCalendarID is the provider alias used when a doctor has not
// picked a specific calendar.
const DefaultCalendarID = "primary"

type Doctor struct {
	ID                   uuid.UUID
	Name                 string
	Email                *string
	Specialty            *string
	CalendarSyncEnabled  bool
	CalendarRefreshToken *string
	CalendarID           *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EffectiveCalendarID resolves the calendar the doctor's events go to.
func (d *Doctor) EffectiveCalendarID() string {
	if d.CalendarID != nil && *d.CalendarID != "" {
		return *d.CalendarID
	}
	return DefaultCalendarID
}

// Connected reports whether calendar sync can be attempted at all.
func (d *Doctor) Connected() bool {
	return d.CalendarSyncEnabled && d.CalendarRefreshToken != nil && *d.CalendarRefreshToken != ""
}

// Repository resolves doctors by id or, for historical appointments that
// stored a free-text doctor name, by exact name.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByName(ctx context.Context, name string) (*Doctor, error)
	List(ctx context.Context) ([]Doctor, error)
}

// Resolve looks a doctor up by id when ref parses as a UUID, falling back
// to the legacy name path otherwise.
func Resolve(ctx context.Context, repo Repository, ref string) (*Doctor, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return repo.GetByID(ctx, id)
	}
	return repo.GetByName(ctx, ref)
}
