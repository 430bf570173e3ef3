package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter [catalog-file]",
	Short: "Filter a catalog by description terms",
	Long: `Keeps catalog rows whose description contains at least one of the
profile's include terms and none of its exclude terms, matched
case-insensitively. The result is written to filtered_<name> next to
the input; the input is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	if err := wire(); err != nil {
		return err
	}
	if curateService == nil {
		return errors.New("curate service not configured")
	}

	report, err := curateService.Filter(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}

	cmd.Printf("Kept %d of %d rows.\n", report.Kept, report.Original)
	cmd.Printf("Filtered catalog: %s\n", report.OutputPath)

	return nil
}
