package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/cmd/cli/commands"
	"github.com/wildlifewatch/conservation-hub/internal/config"
	"github.com/wildlifewatch/conservation-hub/pkg/cache"
	"github.com/wildlifewatch/conservation-hub/pkg/clients/sheetsclient"
	"github.com/wildlifewatch/conservation-hub/pkg/core/gamification"
	"github.com/wildlifewatch/conservation-hub/pkg/db"
	"github.com/wildlifewatch/conservation-hub/pkg/i18n"
	"github.com/wildlifewatch/conservation-hub/pkg/postgres"
	"github.com/wildlifewatch/conservation-hub/pkg/sheetsdata"
	"github.com/wildlifewatch/conservation-hub/pkg/sqlite"
	"github.com/wildlifewatch/conservation-hub/pkg/utils/logging"
)

var (
	env    string
	logDir string
	app    = &commands.AppContext{}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app.Ctx = ctx

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Conservation Hub - rank wildlife organizations and track donation windows",
		Long: `A CLI and HTTP server that reads conservation organizations from a Google Sheet,
ranks them by funding urgency and tracks their annual donation windows.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", logging.DefaultDir, "Directory for log files")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.RankCmd(app))
	rootCmd.AddCommand(commands.WindowCmd(app))
	rootCmd.AddCommand(commands.ReminderCmd(app))
	rootCmd.AddCommand(commands.CalendarCmd(app))
	rootCmd.AddCommand(commands.RefreshCmd(app))
	rootCmd.AddCommand(commands.ProgressCmd(app))
	rootCmd.AddCommand(commands.SupportCountsCmd(app))
	rootCmd.AddCommand(commands.ColumnsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, sheet source, cache and progress storage
func initApp() error {
	var err error

	app.Logger, err = logging.InitLogger(env, logDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("source", app.Cfg.Source),
		zap.String("progressDriver", app.Cfg.Progress.Driver))

	source, err := newSource(app.Ctx, app.Cfg)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	app.Loader = sheetsdata.NewLoader(source, app.Cfg.SheetID, sheetsdata.Tabs{
		Organizations: app.Cfg.Tabs.Organizations,
		Fundraising:   app.Cfg.Tabs.Fundraising,
		Highlights:    app.Cfg.Tabs.Highlights,
	}, app.Cfg.Location(), app.Logger)
	app.Cache = cache.New(app.Loader, app.Cfg.CacheTTL, app.Logger)

	app.Catalog, err = i18n.NewCatalog(app.Logger)
	if err != nil {
		return fmt.Errorf("failed to load message catalog: %w", err)
	}

	app.Logger.Info("Opening progress store", zap.String("driver", app.Cfg.Progress.Driver))
	app.Progress, err = openProgressStore(app.Ctx, app.Cfg.Progress, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to open progress store: %w", err)
	}
	app.Store = gamification.NewStore(app.Progress, app.Logger)
	app.Tracker = gamification.NewTracker(app.Store, gamification.RealClock{}, app.Logger)

	return nil
}

func closeApp() {
	if app.Progress != nil {
		if err := app.Progress.Close(); err != nil {
			app.Logger.Warn("Failed to close progress store", zap.Error(err))
		}
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
}

func newSource(ctx context.Context, cfg *config.Config) (sheetsclient.Source, error) {
	if cfg.Source == config.SourceAPI {
		return sheetsclient.NewClient(ctx, sheetsclient.Options{
			APIKey:          cfg.APIKey,
			CredentialsFile: cfg.CredentialsFile,
		})
	}
	return sheetsclient.NewCSVClient(nil, ""), nil
}

func openProgressStore(ctx context.Context, cfg config.ProgressConfig, logger *zap.Logger) (db.ProgressStore, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return db.NewFileDB(cfg.DSN)
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN, logger)
	case config.DriverPostgres:
		pg, err := postgres.NewDB(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := pg.RunMigrations(ctx); err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return pg, nil
	default:
		return db.NewMemoryDB(), nil
	}
}
