package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dentalworks/clinic-scheduling/internal/appointment"
	"github.com/dentalworks/clinic-scheduling/internal/availability"
	"github.com/dentalworks/clinic-scheduling/internal/directory"
)

type RouterConfig struct {
	Appointments *appointment.Service
	Availability *availability.Calculator
	Doctors      directory.Repository
	Hours        availability.WorkingHours
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Log          zerolog.Logger
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Doctor endpoints
	r.Get("/doctors", listDoctorsHandler(cfg.Doctors))
	r.Get("/doctors/{ref}/availability", availabilityHandler(cfg.Availability, cfg.Doctors))

	// Appointment endpoints
	r.Post("/appointments", createAppointmentHandler(cfg.Appointments, cfg.Doctors, cfg.Hours))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments))
	r.Patch("/appointments/{id}", updateAppointmentHandler(cfg.Appointments))
	r.Get("/patients/{id}/appointments", listPatientAppointmentsHandler(cfg.Appointments))

	return r
}
