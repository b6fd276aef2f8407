package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medfin/medfin/internal/config"
	"github.com/medfin/medfin/internal/domain/assistance"
	"github.com/medfin/medfin/internal/domain/bills"
	"github.com/medfin/medfin/internal/domain/costestimate"
	"github.com/medfin/medfin/internal/domain/feedback"
	"github.com/medfin/medfin/internal/domain/insurance"
	"github.com/medfin/medfin/internal/domain/paymentplans"
	"github.com/medfin/medfin/internal/guidelines"
	"github.com/medfin/medfin/internal/platform/db"
	"github.com/medfin/medfin/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "medfin-server",
		Short: "Medical financial assistance API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(guidelinesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	table, err := loadGuidelines(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.GuidelinesFile).Msg("failed to load guideline table")
	}

	ctx := context.Background()

	pool, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if pool != nil {
		defer pool.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.RequestIDHeader},
	}))

	rateCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateCfg.RequestsPerSecond <= 0 {
		rateCfg = middleware.DefaultRateLimitConfig()
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(rateCfg))

	costs := costestimate.NewStaticServiceCosts()
	costestimate.NewHandler(costestimate.NewService(table, costs)).RegisterRoutes(apiV1)
	insurance.NewHandler(insurance.NewService(table)).RegisterRoutes(apiV1)
	bills.NewHandler(bills.NewService(costs)).RegisterRoutes(apiV1)
	assistance.NewHandler(assistance.NewService(table)).RegisterRoutes(apiV1)
	paymentplans.NewHandler(paymentplans.NewService(table)).RegisterRoutes(apiV1)

	var feedbackRepo feedback.Repository
	if pool != nil {
		feedbackRepo = feedback.NewPGRepo(pool)
	} else {
		logger.Warn().Msg("no database configured, feedback stored in memory only")
		feedbackRepo = feedback.NewMemoryRepo()
	}
	feedback.NewHandler(feedback.NewService(feedbackRepo)).RegisterRoutes(apiV1)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"name":    "medfin",
			"version": version,
		})
	})
	if pool != nil {
		e.GET("/health", db.HealthHandler(pool))
	} else {
		e.GET("/health", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
		})
	}

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}

// loadGuidelines reads the guideline table from the configured file, or
// falls back to the built-in defaults when no file is configured.
func loadGuidelines(cfg *config.Config, logger zerolog.Logger) (*guidelines.Table, error) {
	if cfg.GuidelinesFile == "" {
		logger.Info().Msg("using built-in guideline table")
		return guidelines.Default(), nil
	}
	table, err := guidelines.Load(cfg.GuidelinesFile)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("file", cfg.GuidelinesFile).Int("fpl_year", table.LatestFPLYear()).Msg("loaded guideline table")
	return table, nil
}

// connectDatabase opens the pgx pool when DATABASE_URL is set. The server
// runs without a database; only feedback persistence needs one.
func connectDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	if !cfg.HasDatabase() {
		return nil, nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := db.NewPool(connectCtx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("database connection established")
	return pool, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func guidelinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guidelines",
		Short: "Inspect guideline tables",
	}

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a guideline table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := guidelines.Load(args[0])
			if err != nil {
				return fmt.Errorf("guideline table invalid: %w", err)
			}
			year := table.LatestFPLYear()
			base, err := table.FPL(year, 1)
			if err != nil {
				return err
			}
			fmt.Printf("%s: OK\n", args[0])
			fmt.Printf("Latest FPL year: %d (household of 1: $%.2f)\n", year, base)
			return nil
		},
	}
	cmd.AddCommand(checkCmd)

	return cmd
}
