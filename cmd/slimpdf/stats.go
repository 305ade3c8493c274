package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slimpdf/internal/common"
	"slimpdf/internal/config"
	"slimpdf/internal/database"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lifetime usage totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			db, err := database.NewDatabase(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			totals, err := db.GetTotals()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Runs:       %d\n", totals.TotalRuns)
			fmt.Fprintf(out, "Artifacts:  %d\n", totals.TotalArtifacts)
			fmt.Fprintf(out, "Bytes in:   %s\n", common.FormatFileSize(totals.TotalBytesIn))
			fmt.Fprintf(out, "Bytes out:  %s\n", common.FormatFileSize(totals.TotalBytesOut))
			saved := totals.TotalBytesIn - totals.TotalBytesOut
			fmt.Fprintf(out, "Saved:      %s\n", common.FormatFileSize(saved))
			return nil
		},
	}
}
