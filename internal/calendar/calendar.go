// Package calendar mirrors appointments into a doctor's external calendar
// through a provider REST API. Every call is best-effort from the
// lifecycle manager's point of view.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentalworks/clinic-scheduling/internal/appointment"
	"github.com/dentalworks/clinic-scheduling/internal/directory"
)

// ErrNotConnected means the doctor's sync flag is off or no refresh
// credential is stored. Callers treat it as a soft failure, not an outage.
var ErrNotConnected = errors.New("calendar not connected")

// ErrNoEvent means the appointment carries no external event reference.
var ErrNoEvent = errors.New("appointment has no calendar event")

// eventDuration matches the fixed block an appointment occupies on the
// scheduling grid.
const eventDuration = 60 * time.Minute

type AppointmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
}

type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
}

type Client struct {
	cfg     Config
	http    *http.Client
	store   AppointmentReader
	doctors directory.Repository
	log     zerolog.Logger
}

func NewClient(cfg Config, store AppointmentReader, doctors directory.Repository, log zerolog.Logger) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   store,
		doctors: doctors,
		log:     log,
	}
}

type event struct {
	ID          string `json:"id,omitempty"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

func (c *Client) CreateEvent(ctx context.Context, appointmentID uuid.UUID) (string, error) {
	appt, doctor, token, err := c.prepare(ctx, appointmentID)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(eventFor(appt))
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.cfg.BaseURL, url.PathEscape(doctor.EffectiveCalendarID()))
	resp, err := c.do(ctx, http.MethodPost, endpoint, token, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", apiError("create event", resp)
	}

	var created event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode created event: %w", err)
	}
	if created.ID == "" {
		return "", errors.New("provider returned event without id")
	}
	return created.ID, nil
}

func (c *Client) UpdateEvent(ctx context.Context, appointmentID uuid.UUID) error {
	appt, doctor, token, err := c.prepare(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.CalendarEventID == nil {
		return ErrNoEvent
	}

	body, err := json.Marshal(eventFor(appt))
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.cfg.BaseURL, url.PathEscape(doctor.EffectiveCalendarID()), url.PathEscape(*appt.CalendarEventID))
	resp, err := c.do(ctx, http.MethodPatch, endpoint, token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError("update event", resp)
	}
	return nil
}

func (c *Client) DeleteEvent(ctx context.Context, appointmentID uuid.UUID) error {
	appt, doctor, token, err := c.prepare(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.CalendarEventID == nil {
		return ErrNoEvent
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.cfg.BaseURL, url.PathEscape(doctor.EffectiveCalendarID()), url.PathEscape(*appt.CalendarEventID))
	resp, err := c.do(ctx, http.MethodDelete, endpoint, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound, http.StatusGone:
		// Already gone on the provider side.
		return nil
	default:
		return apiError("delete event", resp)
	}
}

// prepare loads the appointment and its doctor, enforces the connection
// preconditions, and exchanges the refresh credential for an access token.
func (c *Client) prepare(ctx context.Context, appointmentID uuid.UUID) (*appointment.Appointment, *directory.Doctor, string, error) {
	appt, err := c.store.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("load appointment: %w", err)
	}

	var doctor *directory.Doctor
	if appt.DoctorID != nil {
		doctor, err = c.doctors.GetByID(ctx, *appt.DoctorID)
	} else {
		doctor, err = c.doctors.GetByName(ctx, appt.DoctorName)
	}
	if err != nil {
		return nil, nil, "", fmt.Errorf("load doctor: %w", err)
	}

	if !doctor.Connected() {
		return nil, nil, "", fmt.Errorf("%w: doctor %s", ErrNotConnected, doctor.ID)
	}

	token, err := c.accessToken(ctx, *doctor.CalendarRefreshToken)
	if err != nil {
		return nil, nil, "", err
	}

	return appt, doctor, token, nil
}

func (c *Client) accessToken(ctx context.Context, refreshToken string) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("exchange refresh token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError("token exchange", resp)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}
	return payload.AccessToken, nil
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	return resp, nil
}

func eventFor(appt *appointment.Appointment) event {
	return event{
		Summary:     "Dental appointment: " + appt.PatientName,
		Description: appt.Reason,
		Start:       appt.ScheduledAt.Format(time.RFC3339),
		End:         appt.ScheduledAt.Add(eventDuration).Format(time.RFC3339),
	}
}

func apiError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: provider returned %d: %s", op, resp.StatusCode, strings.TrimSpace(string(b)))
}
