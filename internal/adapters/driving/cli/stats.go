package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provenlabs/repotrawl/internal/core/ports/driving"
)

var statsCmd = &cobra.Command{
	Use:   "stats [catalog-file]",
	Short: "Enrich a catalog with repository statistics",
	Long: `Fetches star and commit counts for every repository in a catalog and
writes enriched_<name> next to the input with stars, commit_count, and
status_code columns appended. Prints the distribution of both
statistics across the catalog.

Requires GITHUB_TOKEN in the environment.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := wire(); err != nil {
		return err
	}
	if curateService == nil {
		return errors.New("curate service not configured")
	}
	if tokenErr != nil {
		return tokenErr
	}

	report, err := curateService.Enrich(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	cmd.Printf("Enriched %d rows", report.Rows)
	if report.Failed > 0 {
		cmd.Printf(" (%d lookups failed)", report.Failed)
	}
	cmd.Println(".")
	cmd.Println()

	printDistribution(cmd, "Stars", report.Stars)
	printDistribution(cmd, "Commits", report.Commits)

	cmd.Printf("Enriched catalog: %s\n", report.OutputPath)

	return nil
}

func printDistribution(cmd *cobra.Command, label string, d driving.Distribution) {
	if d.Count == 0 {
		cmd.Printf("%s: no data\n\n", label)
		return
	}

	cmd.Printf("%s: mean %.1f, min %d, max %d\n", label, d.Mean, d.Min, d.Max)
	for _, b := range d.Buckets {
		cmd.Printf("  %-12s %d\n", b.Label, b.Count)
	}
	cmd.Println()
}
