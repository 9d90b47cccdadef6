package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildlifewatch/conservation-hub/pkg/core/donationwindow"
	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
)

// WindowCmd creates the window command
func WindowCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "window <organization_id>",
		Short: "Show an organization's donation window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := app.Cache.Get(app.Ctx)
			if err != nil {
				return err
			}
			org, ok := dataset.FindOrganization(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", services.ErrOrganizationNotFound, args[0])
			}

			now := app.Now()
			info := donationwindow.Info(org, now)

			fmt.Printf("\n%s (%s)\n", org.Name(app.Cfg.DefaultLocale), org.ID)
			fmt.Printf("Configured:  %s → %s\n", valueOrDash(org.DonationStartDate), valueOrDash(org.DonationEndDate))
			fmt.Printf("As of:       %s\n", now.Format("2006-01-02 15:04 MST"))
			fmt.Printf("Window:      %s\n\n", describeWindow(info))
			return nil
		},
	}
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
