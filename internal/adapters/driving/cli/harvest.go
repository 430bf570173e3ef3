package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Run the phased search sweep",
	Long: `Runs every search phase for the configured assistant profile:
repository descriptions, code keywords, commit messages, issues and
pull requests, and configuration fingerprints. Each phase writes its
own catalog, and the run finishes with a combined catalog of every
unique repository seen.

Requires GITHUB_TOKEN in the environment.`,
	Args: cobra.NoArgs,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, _ []string) error {
	if err := wire(); err != nil {
		return err
	}
	if harvestService == nil {
		if tokenErr != nil {
			return tokenErr
		}
		return errors.New("harvest service not configured")
	}

	cmd.Println("Harvesting repositories...")

	report, err := harvestService.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	cmd.Printf("Run %s complete.\n\n", report.RunID)
	for _, p := range report.Phases {
		cmd.Printf("  %-22s %6d unique", p.Label, p.Unique)
		if p.FailedQueries > 0 {
			cmd.Printf("  (%d failed queries)", p.FailedQueries)
		}
		cmd.Printf("  %s\n", p.Path)
	}
	cmd.Printf("\nTotal: %d unique repositories in %s\n", report.TotalUnique, report.CombinedPath)

	return nil
}
