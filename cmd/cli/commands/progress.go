package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
	"github.com/wildlifewatch/conservation-hub/pkg/db"
)

// ProgressCmd creates the progress command
func ProgressCmd(app *AppContext) *cobra.Command {
	var localeFlag string

	cmd := &cobra.Command{
		Use:   "progress <visitor_id>",
		Short: "Show a visitor's supported organizations and achievements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, err := resolveLocale(localeFlag, app.Cfg.DefaultLocale)
			if err != nil {
				return err
			}
			progress, err := services.VisitorProgress(app.Ctx, app.Tracker, app.Catalog, args[0], locale)
			if err != nil {
				return err
			}

			fmt.Printf("\nVisitor %s\n\n", args[0])
			fmt.Printf("Supported organizations: %d\n", len(progress.SupportedOrganizations))
			fmt.Printf("Confirmations:           %d\n", len(progress.SupportConfirmations))
			fmt.Printf("Pages visited:           %d\n", len(progress.VisitedOrganizations))
			fmt.Printf("Donation clicks:         %d\n", progress.TotalClicks)
			fmt.Printf("Watering credits:        %d\n\n", progress.WateringCredits)

			if len(progress.Achievements) == 0 {
				fmt.Printf("%sNo achievements yet%s\n\n", colorDim, colorReset)
				return nil
			}
			fmt.Println("Achievements:")
			for _, a := range progress.Achievements {
				fmt.Printf("  %s %s %s(%s)%s\n", a.Icon, a.Title, colorDim, formatDate(a.UnlockedAt), colorReset)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&localeFlag, "locale", "", "Locale: zh-TW or en")
	return cmd
}

// SupportCountsCmd creates the supportCounts command
func SupportCountsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "supportCounts",
		Short: "Count support confirmations per organization across all visitors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := db.CountSupport(app.Ctx, app.Progress)
			if err != nil {
				return err
			}

			fmt.Printf("\nSupport confirmations (%s store)\n\n", app.Cfg.Progress.Driver)
			for _, id := range sortedByCount(counts) {
				fmt.Printf("  %-24s %d\n", id, counts[id])
			}
			fmt.Println()
			return nil
		},
	}
}

// sortedByCount orders organization ids by count descending, then id
func sortedByCount(counts map[string]int) []string {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
