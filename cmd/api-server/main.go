package main

import (
	"context"
	"errors"
	"net/http"
	"net/smtp"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dentalworks/clinic-scheduling/internal/api"
	"github.com/dentalworks/clinic-scheduling/internal/appointment"
	"github.com/dentalworks/clinic-scheduling/internal/availability"
	"github.com/dentalworks/clinic-scheduling/internal/calendar"
	"github.com/dentalworks/clinic-scheduling/internal/config"
	"github.com/dentalworks/clinic-scheduling/internal/db"
	"github.com/dentalworks/clinic-scheduling/internal/directory"
	"github.com/dentalworks/clinic-scheduling/internal/notify"
	redisclient "github.com/dentalworks/clinic-scheduling/internal/redis"
)

const version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("config load error")
	}

	logger := newLogger(cfg.Env)
	logger.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTPPort).
		Int("start_hour", cfg.WorkingHours.StartHour).
		Int("end_hour", cfg.WorkingHours.EndHour).
		Dur("slot_duration", cfg.WorkingHours.SlotDuration).
		Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	logger.Info().Msg("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing redis")
		}
	}()
	logger.Info().Msg("connected to Redis")

	store := appointment.NewPgStore(pgPool)
	doctors := directory.NewPgRepository(pgPool)

	dispatcher := notify.NewEmailDispatcher(store, newMailer(cfg, logger), logger)
	calClient := calendar.NewClient(calendar.Config{
		BaseURL:      cfg.CalendarBaseURL,
		TokenURL:     cfg.CalendarTokenURL,
		ClientID:     cfg.CalendarClientID,
		ClientSecret: cfg.CalendarClientSecret,
	}, store, doctors, logger)

	effects := appointment.NewEffectRunner(store, dispatcher, calClient, logger)
	locker := redisclient.NewRedisSlotLocker(rdb, cfg.LockTTL)
	svc := appointment.NewService(store, locker, effects, logger)
	calc := availability.NewCalculator(store, cfg.WorkingHours)

	router := api.NewRouter(api.RouterConfig{
		Appointments: svc,
		Availability: calc,
		Doctors:      doctors,
		Hours:        cfg.WorkingHours,
		PgPool:       pgPool,
		Redis:        rdb,
		Log:          logger,
		Env:          cfg.Env,
		Version:      version,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	logger.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(env string) zerolog.Logger {
	if strings.EqualFold(env, "dev") {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func newMailer(cfg config.Config, logger zerolog.Logger) notify.Mailer {
	if cfg.SMTPAddr == "" {
		logger.Warn().Msg("SMTP_ADDR not set, emails go to the log only")
		return &notify.LogMailer{Log: logger}
	}

	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		host := cfg.SMTPAddr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, host)
	}
	return &notify.SMTPMailer{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom, Auth: auth}
}
