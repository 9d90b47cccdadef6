package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildlifewatch/conservation-hub/pkg/core/donationwindow"
	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
)

// ReminderCmd creates the reminder command
func ReminderCmd(app *AppContext) *cobra.Command {
	var localeFlag, output string
	var asICS bool

	cmd := &cobra.Command{
		Use:   "reminder <organization_id>",
		Short: "Print a Google Calendar link (or iCalendar file) for the next donation window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, err := resolveLocale(localeFlag, app.Cfg.DefaultLocale)
			if err != nil {
				return err
			}

			if asICS {
				ics, err := services.OrganizationReminder(app.Ctx, app.Cache, app.Catalog, app.Logger, args[0], locale, app.Now())
				if err != nil {
					return err
				}
				return writeOutput(output, ics)
			}

			dataset, err := app.Cache.Get(app.Ctx)
			if err != nil {
				return err
			}
			org, ok := dataset.FindOrganization(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", services.ErrOrganizationNotFound, args[0])
			}

			link, ok := donationwindow.ReminderLinkAt(app.Now(), org, locale, app.Catalog.Translator(locale))
			if !ok {
				return fmt.Errorf("%w: %s", donationwindow.ErrNoDonationWindow, org.ID)
			}
			fmt.Println(link)
			return nil
		},
	}

	cmd.Flags().StringVar(&localeFlag, "locale", "", "Locale: zh-TW or en")
	cmd.Flags().BoolVar(&asICS, "ics", false, "Emit an iCalendar document instead of a link")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write the iCalendar document to (default stdout)")
	return cmd
}
