package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/core/ranking"
	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
)

// RankCmd creates the rank command
func RankCmd(app *AppContext) *cobra.Command {
	var sortFlag, localeFlag, query, status string

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "List visible organizations ranked by funding urgency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sortMode, err := ranking.ParseSortMode(sortFlag)
			if err != nil {
				return err
			}
			locale, err := resolveLocale(localeFlag, app.Cfg.DefaultLocale)
			if err != nil {
				return err
			}
			if status != "" && !model.Status(status).IsValid() {
				return fmt.Errorf("unknown status %q", status)
			}

			app.Logger.Debug("rank command",
				zap.String("sort", string(sortMode)),
				zap.String("locale", string(locale)))

			list, err := services.ListOrganizations(app.Ctx, app.Cache, app.Catalog, app.Logger, services.ListOptions{
				Locale: locale,
				Sort:   sortMode,
				Query:  query,
				Status: model.Status(status),
			}, app.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n%d organizations (sort: %s)\n\n", len(list), sortMode)
			fmt.Printf("%-4s %-28s %-5s %-7s %-6s %-16s %s\n", "#", "Organization", "Lvl", "Score", "Gap", "Donation", "Status")
			fmt.Println(strings.Repeat("-", 90))
			for i, org := range list {
				fmt.Println(formatRankRow(i+1, org, locale))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort mode: urgency, donation_low, donation_high")
	cmd.Flags().StringVar(&localeFlag, "locale", "", "Locale: zh-TW or en")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by name or description")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status tier")
	return cmd
}

func formatRankRow(position int, org services.OrganizationSummary, locale model.Locale) string {
	gap := org.GapPercentage
	if gap == "" {
		gap = "-"
	}
	donation := org.DonationDisplay
	if donation == "" {
		donation = "-"
	}
	return fmt.Sprintf("%-4d %-28s %-5d %-7.2f %-6s %-16s %s%s%s",
		position,
		truncate(org.Name(locale), 28),
		org.UrgencyLevel,
		org.UrgencyScore,
		gap,
		donation,
		statusColor(org.Status), org.StatusLabel, colorReset)
}
