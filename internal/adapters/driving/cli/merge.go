package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [directory]",
	Short: "Merge every catalog in a directory",
	Long: `Combines every CSV catalog in a directory into one deduplicated
catalog, merged_repos_<timestamp>.csv in the same directory. A
repository appearing in several catalogs keeps the union of its
provenance tags and the metadata from the last catalog that carried
it. Defaults to the configured output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if err := wire(); err != nil {
		return err
	}
	if curateService == nil {
		return errors.New("curate service not configured")
	}

	dir := "."
	if cfg != nil {
		dir = cfg.OutputDir
	}
	if len(args) > 0 {
		dir = args[0]
	}

	report, err := curateService.Merge(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	cmd.Printf("Merged %d catalogs into %d unique repositories", report.Inputs, report.Unique)
	if report.Skipped > 0 {
		cmd.Printf(" (%d rows skipped)", report.Skipped)
	}
	cmd.Println(".")
	cmd.Printf("Merged catalog: %s\n", report.OutputPath)

	return nil
}
