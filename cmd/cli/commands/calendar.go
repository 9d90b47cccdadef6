package commands

import (
	"github.com/spf13/cobra"

	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
)

// CalendarCmd creates the calendar command
func CalendarCmd(app *AppContext) *cobra.Command {
	var localeFlag, output string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export donation window reminders for all organizations as iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, err := resolveLocale(localeFlag, app.Cfg.DefaultLocale)
			if err != nil {
				return err
			}
			ics, err := services.SiteCalendar(app.Ctx, app.Cache, app.Catalog, app.Logger, locale, app.Now())
			if err != nil {
				return err
			}
			return writeOutput(output, ics)
		},
	}

	cmd.Flags().StringVar(&localeFlag, "locale", "", "Locale: zh-TW or en")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
