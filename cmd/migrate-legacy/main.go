// cmd/migrate-legacy/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/equitylearn/entitlements/internal/config"
	"github.com/equitylearn/entitlements/internal/repository"
	"github.com/equitylearn/entitlements/internal/service"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dryRun      bool
	environment string
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "migrate-legacy",
	Short: "Back-fill canonical subscriptions from deprecated tier fields",
	Long: `migrate-legacy scans the deprecated per-user and per-organization tier
records and creates canonical organization subscriptions and seat
allocations for them. Every write is guarded by an existence check, so the
migration is safe to run repeatedly. Row-level failures are reported in the
summary without aborting the batch.`,
	RunE: runMigration,
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print intended actions without writing")
	rootCmd.Flags().StringVar(&environment, "environment", "development", "Environment label for log output")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Maximum time to run the migration")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMigration(cmd *cobra.Command, args []string) error {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(slogger)
	slogger = slogger.With("environment", environment)

	cfg := config.Load()
	if cfg.Database.Password == "" && cfg.Database.Host != "localhost" {
		// A non-local database without credentials is a setup error, not a
		// row failure.
		return fmt.Errorf("missing database credentials for host %s", cfg.Database.Host)
	}

	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	migration := service.NewMigrationService(
		repository.NewLegacyRepository(db),
		repository.NewProfileRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewSeatAllocationRepository(db),
		slogger,
	)
	migration.SetDryRun(dryRun)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	slogger.Info("starting legacy migration", "dry_run", dryRun)
	summary, err := migration.Run(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Row-level errors are part of the summary; the run still exits 0.
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode,
		cfg.Database.SearchPath)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
