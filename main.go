// Command versusfut serves the internal-match API.
//
// Usage:
//
//	versusfut serve
//	versusfut migrate
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"versusfut/config"
	"versusfut/handlers"
	"versusfut/repositories"
	"versusfut/services"
	"versusfut/utils"
	"versusfut/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, reading environment variables directly")
	}

	root := &cobra.Command{
		Use:           "versusfut",
		Short:         "VersusFut internal match service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			if migrate {
				if err := store.AutoMigrate(); err != nil {
					return err
				}
			}
			return serve(cfg, store)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Run schema migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			if err := store.AutoMigrate(); err != nil {
				return err
			}
			log.Info().Msg("schema up to date")
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, eris.Wrap(err, "load config")
	}
	setupLogger(cfg)
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func openStore(cfg *config.Config) (*repositories.Store, error) {
	gormLevel := gormlogger.Warn
	if cfg.IsProduction() {
		gormLevel = gormlogger.Error
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return nil, eris.Wrap(err, "failed to connect to database")
	}
	return repositories.NewStore(db), nil
}

func serve(cfg *config.Config, store *repositories.Store) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var objects services.ObjectStore
	if cfg.ReportArchiveEnabled() {
		r2, err := utils.NewR2Store(ctx, utils.R2Options{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			Bucket:          cfg.R2Bucket,
			CDNBaseURL:      cfg.CDNBaseURL,
		})
		if err != nil {
			return err
		}
		objects = r2
	} else {
		log.Warn().Msg("R2 credentials incomplete, match reports will not be archived")
	}

	attendance := services.NewAttendanceService(store)
	squads := services.NewSquadService(store, cfg.Settings, nil)
	ledger := services.NewLedgerService(store, nil)
	reports := services.NewReportService(store, objects, attendance, squads, ledger)
	svc := handlers.Services{
		Matches:    services.NewMatchService(store, reports),
		Attendance: attendance,
		Squads:     squads,
		Ledger:     ledger,
		Stats:      services.NewStatsService(store),
		Players:    services.NewPlayerService(store),
		Reports:    reports,
	}

	if reports.Enabled() {
		sched, err := services.StartReportSweeper(ctx, reports, cfg.ReportSweepInterval)
		if err != nil {
			return err
		}
		defer func() { _ = sched.Shutdown() }()
	}

	if cfg.PlayerSyncURL != "" {
		workers.NewPlayerSyncWorker(svc.Players, cfg.PlayerSyncURL, cfg.ServiceToken, cfg.PlayerSyncInterval).Start(ctx)
	} else {
		log.Info().Msg("PLAYER_SYNC_URL not set, player directory sync disabled")
	}

	app := handlers.NewApp(svc, store, handlers.AppOptions{
		ServiceToken:   cfg.ServiceToken,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Strs("origins", cfg.AllowedOrigins).Msg("server running")
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return eris.Wrap(err, "server error")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	return app.ShutdownWithTimeout(10 * time.Second)
}
