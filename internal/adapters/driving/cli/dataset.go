package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Show the reference dataset in use",
	Args:  cobra.NoArgs,
	RunE:  runDataset,
}

func init() {
	rootCmd.AddCommand(datasetCmd)
}

func runDataset(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	stats := analysisService.DatasetStats()

	cmd.Printf("Source: %s\n\n", stats.Source)
	cmd.Printf("  Safe:              %d\n", stats.Safe)
	cmd.Printf("  Use with caution:  %d\n", stats.Conditional)
	cmd.Printf("  Harmful:           %d\n", stats.Harmful)
	cmd.Printf("  Total:             %d\n", stats.Safe+stats.Conditional+stats.Harmful)

	if stats.Safe+stats.Conditional+stats.Harmful == 0 {
		cmd.Println("\nWarning: the dataset is empty; every ingredient will be reported as unknown.")
	}
	return nil
}
