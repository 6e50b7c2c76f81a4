package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wardpass/wardpass/cmd/mainconfig"
	"github.com/wardpass/wardpass/internal/api/router"
	"github.com/wardpass/wardpass/internal/appointments"
	appconfig "github.com/wardpass/wardpass/internal/config"
	"github.com/wardpass/wardpass/internal/hospitals"
	"github.com/wardpass/wardpass/internal/notify"
	"github.com/wardpass/wardpass/internal/observability/metrics"
	"github.com/wardpass/wardpass/internal/patients"
	"github.com/wardpass/wardpass/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting wardpass API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Repositories: Postgres when configured, in-memory otherwise so the
	// server stays runnable for local development.
	var (
		hospitalRepo hospitals.Repository
		patientRepo  patients.Repository
		apptRepo     appointments.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		hospitalRepo = hospitals.NewPostgresRepository(pool)
		patientRepo = patients.NewPostgresRepository(pool)
		apptRepo = appointments.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
		hospitalRepo = hospitals.NewInMemoryRepository()
		patientRepo = patients.NewInMemoryRepository()
		apptRepo = appointments.NewInMemoryRepository()
	}

	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, hospital cache disabled", "error", err)
		} else {
			hospitalRepo = hospitals.NewCachedRepository(hospitalRepo, redisClient, cfg.HospitalCacheTTL, logger)
		}
	}

	emailSender := buildEmailSender(ctx, cfg, logger)
	notifier := notify.NewService(emailSender, hospitalRepo, patientRepo, logger)

	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	calendar := appointments.NewCalendar(apptRepo)
	validator := appointments.NewValidator(patientRepo, calendar)
	service := appointments.NewService(apptRepo, hospitalRepo, validator, calendar, notifier, bookingMetrics, logger)

	routerCfg := &router.Config{
		Logger:              logger,
		HospitalsHandler:    hospitals.NewHandler(hospitalRepo, logger),
		PatientsHandler:     patients.NewHandler(patientRepo, logger),
		AppointmentsHandler: appointments.NewHandler(service, patientRepo, hospitalRepo, logger),
		ReviewHandler:       appointments.NewReviewHandler(service, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		VisitorJWTSecret:    cfg.VisitorJWTSecret,
		StaffJWTSecret:      cfg.StaffJWTSecret,
		RateLimitPerSecond:  float64(cfg.RateLimitPerSecond),
		RateLimitBurst:      cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the configured provider, falling back to the stub
// sender so booking still works with notifications disabled.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("sendgrid selected but not configured, using stub sender")
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Warn("failed to load AWS config, using stub sender", "error", err)
			break
		}
		if sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); sender != nil {
			return sender
		}
	case "":
		logger.Info("email notifications disabled")
	default:
		logger.Warn("unknown email provider, using stub sender", "provider", cfg.EmailProvider)
	}
	return notify.NewStubEmailSender(logger)
}
