package main

import (
	"context"
	"net/smtp"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dentalworks/clinic-scheduling/internal/appointment"
	"github.com/dentalworks/clinic-scheduling/internal/calendar"
	"github.com/dentalworks/clinic-scheduling/internal/config"
	"github.com/dentalworks/clinic-scheduling/internal/db"
	"github.com/dentalworks/clinic-scheduling/internal/directory"
	"github.com/dentalworks/clinic-scheduling/internal/notify"
	redisclient "github.com/dentalworks/clinic-scheduling/internal/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("config load error")
	}

	logger := newLogger(cfg.Env)
	logger.Info().
		Str("env", cfg.Env).
		Dur("interval", cfg.ReminderInterval).
		Dur("window", cfg.ReminderWindow).
		Msg("reminder-worker starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	logger.Info().Msg("connected to Postgres")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing redis")
		}
	}()

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

	// Run once at startup
	runOnce(rootCtx, svc, cfg.ReminderWindow, logger)

	ticker := time.NewTicker(cfg.ReminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			logger.Info().Msg("shutdown signal received, stopping reminder worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, svc, cfg.ReminderWindow, logger)
		}
	}
}

func runOnce(ctx context.Context, svc *appointment.Service, window time.Duration, logger zerolog.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	n, err := svc.SendDueReminders(runCtx, start, window)
	if err != nil {
		logger.Error().Err(err).Msg("reminder run error")
		return
	}
	logger.Info().Int("due", n).Dur("took", time.Since(start)).Msg("reminder run complete")
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
