package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
)

// ColumnsCmd creates the columns command
func ColumnsCmd(app *AppContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Inspect the organizations tab columns and donation fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.InspectColumns(app.Ctx, app.Loader, app.Logger)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("\nRows:    %d\n", report.TotalRows)
			fmt.Printf("Columns: %s\n", strings.Join(report.AllColumnNames, ", "))
			if len(report.MissingColumns) > 0 {
				fmt.Printf("%sMissing: %s%s\n", colorRed, strings.Join(report.MissingColumns, ", "), colorReset)
			}
			fmt.Println()
			for _, row := range report.DonationFields {
				fmt.Printf("  %-4s %-20s %s\n", row["index"], row["id"], row["name"])
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	return cmd
}
