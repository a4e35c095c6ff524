package main

import (
	"context"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dentalworks/clinic-scheduling/internal/db"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

func main() {
	logger.Info().Msg("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		logger.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	doctorIDs, err := seedDoctors(context.Background(), pool, 12)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed doctors")
	}
	patientIDs, err := seedPatients(context.Background(), pool, 800)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed patients")
	}
	if err := seedAppointments(context.Background(), pool, doctorIDs, patientIDs, 400); err != nil {
		logger.Fatal().Err(err).Msg("seed appointments")
	}

	logger.Info().Msg("seed complete")
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	logger.Info().Int("count", count).Msg("seeding doctors")

	specialties := []string{
		"General Dentistry",
		"Orthodontics",
		"Endodontics",
		"Periodontics",
		"Oral Surgery",
		"Pediatric Dentistry",
		"Prosthodontics",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := "Dr. " + gofakeit.Name()
		specialty := specialties[gofakeit.Number(0, len(specialties)-1)]
		email := gofakeit.Email()
		syncEnabled := gofakeit.Bool()

		var refreshToken *string
		if syncEnabled {
			t := gofakeit.UUID()
			refreshToken = &t
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, name, email, specialty, calendar_sync_enabled, calendar_refresh_token, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, id, name, email, specialty, syncEnabled, refreshToken)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	logger.Info().Int("count", count).Msg("seeding patients")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		email := gofakeit.Email()
		phone := gofakeit.Phone()

		_, err := tx.Exec(ctx, `
			INSERT INTO patients (id, name, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
		`, id, gofakeit.Name(), email, phone)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, doctors, patients []uuid.UUID, count int) error {
	logger.Info().Int("count", count).Msg("seeding appointments")

	reasons := []string{
		"Routine checkup",
		"Dental cleaning",
		"Toothache",
		"Filling",
		"Root canal consultation",
		"Crown fitting",
		"Whitening",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for inserted < count {
		doctorID := doctors[gofakeit.Number(0, len(doctors)-1)]
		patientID := patients[gofakeit.Number(0, len(patients)-1)]

		// Aligned half-hour slot on an open day within the next two weeks.
		day := time.Now().AddDate(0, 0, gofakeit.Number(1, 14))
		if day.Weekday() == time.Sunday {
			continue
		}
		hour := gofakeit.Number(8, 18)
		half := gofakeit.Number(0, 1) * 30
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, half, 0, 0, time.Local)

		status := "pending"
		if gofakeit.Bool() {
			status = "scheduled"
		}
		reason := reasons[gofakeit.Number(0, len(reasons)-1)]

		var doctorName string
		if err := tx.QueryRow(ctx, `SELECT name FROM doctors WHERE id = $1`, doctorID).Scan(&doctorName); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, patient_id, doctor_id, doctor_name, scheduled_at, status, reason, note,
				confirmation_email_sent, reminder_email_sent, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, '', false, false, now(), now())
			ON CONFLICT (doctor_id, scheduled_at) WHERE status <> 'cancelled' DO NOTHING
		`, uuid.New(), patientID, doctorID, doctorName, at, status, reason)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			inserted++
		}
	}

	return tx.Commit(ctx)
}
