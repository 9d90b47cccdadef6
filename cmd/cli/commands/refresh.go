package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RefreshCmd creates the refresh command
func RefreshCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload every sheet tab and report what was read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := app.Cache.Refresh(app.Ctx)
			if err != nil {
				return err
			}

			visible := 0
			for _, org := range dataset.Organizations {
				if org.IsShow {
					visible++
				}
			}

			fmt.Printf("\n✓ Sheet data loaded at %s\n\n", dataset.LoadedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Organizations: %d (%d visible)\n", len(dataset.Organizations), visible)
			fmt.Printf("Fundraising:   %d\n", len(dataset.Fundraising))
			fmt.Printf("Donations:     %d\n", len(dataset.Donations))
			fmt.Printf("Highlights:    %d\n\n", len(dataset.Highlights))
			return nil
		},
	}
}
