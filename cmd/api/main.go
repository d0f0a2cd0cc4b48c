// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/equitylearn/entitlements/internal/auth"
	"github.com/equitylearn/entitlements/internal/cache"
	"github.com/equitylearn/entitlements/internal/config"
	"github.com/equitylearn/entitlements/internal/email"
	"github.com/equitylearn/entitlements/internal/handler"
	"github.com/equitylearn/entitlements/internal/middleware"
	"github.com/equitylearn/entitlements/internal/repository"
	"github.com/equitylearn/entitlements/internal/service"
	"github.com/equitylearn/entitlements/internal/sweeper"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(slogger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	seatRepo := repository.NewSeatAllocationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	purgeRepo := repository.NewPurgeRepository(db)

	// Entitlement cache: Redis when a shared backend is configured,
	// otherwise a per-instance in-memory TTL map.
	var store cache.Store
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedis(context.Background(), cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("setting up redis cache: %w", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		memStore := cache.NewMemory(cfg.Cache.CleanupFreq)
		defer memStore.Close()
		store = memStore
	}

	// Outbound notifications
	var notifier email.Notifier = email.NoOpNotifier{}
	if cfg.Sendgrid.APIKey != "" {
		notifier = email.NewService(cfg.Sendgrid.APIKey, cfg.Sendgrid.From)
	}

	// Initialize services
	auditService := service.NewAuditLogService(auditRepo)
	entitlementService := service.NewEntitlementService(
		profileRepo, subRepo, seatRepo, store, cfg.Cache.TTL, slogger)
	gateService := service.NewGateService(entitlementService, cfg.BaseURL)
	seatService := service.NewSeatService(
		subRepo, seatRepo, invoiceRepo, entitlementService, auditService, slogger)
	offboardingService := service.NewOffboardingService(
		orgRepo, profileRepo, subRepo, seatRepo, purgeRepo, auditRepo,
		auditService, notifier, cfg.Offboarding.GracePeriodDays, slogger)

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize handlers
	entitlementHandler := handler.NewEntitlementHandler(entitlementService, gateService)
	seatHandler := handler.NewSeatHandler(seatService)
	offboardingHandler := handler.NewOffboardingHandler(offboardingService, entitlementService)
	webhookHandler := handler.NewWebhookHandler(seatService)

	// Pending-deletions sweeper
	if cfg.Offboarding.SweepEnabled {
		sw := sweeper.New(offboardingService, cfg.Offboarding.AutoHardDelete, slogger)
		if err := sw.Start(); err != nil {
			return fmt.Errorf("starting deletion sweeper: %w", err)
		}
		defer sw.Stop()
	}

	// Create router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Billing webhooks are authenticated by provider signature at the
		// edge proxy, not by bearer token.
		r.Post("/webhooks/billing/invoice", webhookHandler.Invoice)

		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			r.Use(middleware.AuthMiddleware(tokenManager))

			r.Get("/entitlements", entitlementHandler.Resolve)
			r.Post("/entitlements/check", entitlementHandler.CheckAction)

			r.Route("/orgs/{orgID}", func(r chi.Router) {
				r.Post("/seats", seatHandler.Allocate)
				r.Delete("/seats/{userID}", seatHandler.Revoke)
				r.Post("/seats/enforce", seatHandler.Enforce)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Post("/orgs/{orgID}/offboard", offboardingHandler.Initiate)
				r.Post("/orgs/{orgID}/offboard/cancel", offboardingHandler.Cancel)
				r.Post("/orgs/{orgID}/offboard/execute", offboardingHandler.Execute)
				r.Get("/offboarding/pending", offboardingHandler.Pending)
			})
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slogger.Info("shutdown started", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode,
		cfg.Database.SearchPath)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
