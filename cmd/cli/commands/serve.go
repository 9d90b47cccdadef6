package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/scheduler"
	"github.com/wildlifewatch/conservation-hub/pkg/web"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON and calendar API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Cfg.ListenAddr
			}

			if _, err := app.Cache.Get(app.Ctx); err != nil {
				app.Logger.Warn("Initial sheet load failed, will retry on first request", zap.Error(err))
			}

			if app.Cfg.RefreshCron != "" {
				sched := scheduler.New(app.Ctx, app.Cache, app.Logger)
				if err := sched.Register(app.Cfg.RefreshCron); err != nil {
					return err
				}
				sched.Start()
				defer sched.Stop()
			}

			unsubscribe := app.Store.Subscribe(func(visitorID string, progress *model.Progress) {
				app.Logger.Debug("Progress saved",
					zap.String("visitor", visitorID),
					zap.Int("supported", len(progress.SupportedOrganizations)),
					zap.Int("achievements", len(progress.Achievements)))
			})
			defer unsubscribe()

			server := web.NewServer(web.Dependencies{
				Cache:     app.Cache,
				Localizer: app.Catalog,
				Tracker:   app.Tracker,
				Columns:   app.Loader,
				Now:       app.Now,
				Logger:    app.Logger,
			})
			return server.ListenAndServe(app.Ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to listenAddr from config)")
	return cmd
}
