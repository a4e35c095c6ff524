package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dentalworks/clinic-scheduling/internal/appointment"
	"github.com/dentalworks/clinic-scheduling/internal/availability"
	"github.com/dentalworks/clinic-scheduling/internal/directory"
	redisclient "github.com/dentalworks/clinic-scheduling/internal/redis"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

func availabilityHandler(calc *availability.Calculator, doctors directory.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctor, err := directory.Resolve(r.Context(), doctors, chi.URLParam(r, "ref"))
		if err != nil {
			handleDoctorError(w, err)
			return
		}

		q := r.URL.Query()

		start, err := time.ParseInLocation(dateLayout, q.Get("start"), time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start", "start must be a YYYY-MM-DD date")
			return
		}
		end := start
		if v := q.Get("end"); v != "" {
			end, err = time.ParseInLocation(dateLayout, v, time.Local)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_end", "end must be a YYYY-MM-DD date")
				return
			}
		}

		duration := time.Duration(0)
		if v := q.Get("duration"); v != "" {
			minutes, err := strconv.Atoi(v)
			if err != nil || minutes <= 0 {
				writeError(w, http.StatusBadRequest, "invalid_duration", "duration must be a positive number of minutes")
				return
			}
			duration = time.Duration(minutes) * time.Minute
		}

		days, err := calc.DoctorAvailability(r.Context(), doctor.ID, start, end, duration)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, days)
	}
}

func createAppointmentHandler(svc *appointment.Service, doctors directory.Repository, hours availability.WorkingHours) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
			return
		}

		doctor, err := directory.Resolve(r.Context(), doctors, req.Doctor)
		if err != nil {
			handleDoctorError(w, err)
			return
		}

		if !fitsGrid(req.ScheduledAt, hours) {
			writeError(w, http.StatusUnprocessableEntity, "slot_outside_hours",
				"scheduled_at must start a slot inside working hours on an open day")
			return
		}

		status := appointment.Status(req.Status)
		if req.Status == "" {
			status = appointment.StatusPending
		}

		doctorID := doctor.ID
		appt, err := svc.Create(r.Context(), appointment.CreateInput{
			PatientID:   patientID,
			DoctorID:    &doctorID,
			DoctorName:  doctor.Name,
			ScheduledAt: req.ScheduledAt,
			Status:      status,
			Reason:      req.Reason,
			Note:        req.Note,
		})
		if err != nil {
			handleCreateError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func updateAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req UpdateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		appt, err := svc.Update(r.Context(), id, appointment.UpdateInput{
			ScheduledAt:        req.ScheduledAt,
			Reason:             req.Reason,
			Note:               req.Note,
			CancellationReason: req.CancellationReason,
		}, appointment.Transition(req.Transition))
		if err != nil {
			handleUpdateError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func getAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.Get(r.Context(), id)
		if err != nil {
			handleUpdateError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func listPatientAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		appts, err := svc.ListByPatient(r.Context(), patientID)
		if err != nil {
			if errors.Is(err, appointment.ErrPatientNotFound) {
				writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]AppointmentResponse, 0, len(appts))
		for i := range appts {
			resp = append(resp, toAppointmentResponse(&appts[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func listDoctorsHandler(doctors directory.Repository) http.HandlerFunc {
	type doctorResponse struct {
		ID        uuid.UUID `json:"id"`
		Name      string    `json:"name"`
		Specialty *string   `json:"specialty,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		list, err := doctors.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]doctorResponse, 0, len(list))
		for _, d := range list {
			resp = append(resp, doctorResponse{ID: d.ID, Name: d.Name, Specialty: d.Specialty})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// fitsGrid re-checks slot feasibility at the API edge with the same
// contiguity rule the calculator uses, so the two cannot drift.
func fitsGrid(t time.Time, wh availability.WorkingHours) bool {
	if t.Weekday() == time.Sunday {
		return false
	}
	if t.Hour() < wh.StartHour || t.Hour() >= wh.EndHour {
		return false
	}
	open := time.Date(t.Year(), t.Month(), t.Day(), wh.StartHour, 0, 0, 0, t.Location())
	if t.Sub(open)%wh.SlotDuration != 0 {
		return false
	}
	return availability.HasContiguousRoom(availability.Occupancy{}, t, availability.BlockSlots(wh), wh)
}

func handleDoctorError(w http.ResponseWriter, err error) {
	if errors.Is(err, directory.ErrDoctorNotFound) {
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
}

func handleCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, appointment.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, appointment.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_taken", err.Error())
	case errors.Is(err, appointment.ErrSlotBeingBooked),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "slot_being_booked", "slot is currently being booked, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, appointment.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, appointment.ErrUnknownTransition):
		writeError(w, http.StatusBadRequest, "unknown_transition", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
