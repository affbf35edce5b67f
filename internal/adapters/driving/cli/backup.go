package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy saved scans to S3-compatible storage",
	Long: `Uploads the scan collection and every photo to the configured bucket
under a new timestamped prefix. Configure the target with
'ingrecheck settings backup'.`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, _ []string) error {
	if backupService == nil {
		return errors.New("backup service not configured")
	}

	report, err := backupService.Backup(cmd.Context())
	if errors.Is(err, domain.ErrBackupUnavailable) {
		return fmt.Errorf("%w; run 'ingrecheck settings backup' first", err)
	}
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	cmd.Printf("Backed up to %s/%s\n", report.Location, report.Prefix)
	cmd.Printf("  Objects: %d\n", report.Objects)
	cmd.Printf("  Bytes:   %d\n", report.Bytes)

	if len(report.Missing) > 0 {
		cmd.Printf("\nWarning: %d photo(s) were missing locally:\n", len(report.Missing))
		for _, ref := range report.Missing {
			cmd.Printf("  %s\n", ref)
		}
	}
	return nil
}
