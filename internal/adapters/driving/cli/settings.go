package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, dataset and backup settings.

Settings are stored in ~/.ingrecheck/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by its config key, for example:

  ingrecheck settings set storage.backend sqlite
  ingrecheck settings set dataset.path ~/ingredients.json

Run 'ingrecheck settings keys' for the full list.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable config keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Configure scan storage",
	Long: `Select where saved scans are kept.

Available backends:
  file    - JSON document + image directory
  sqlite  - SQLite database + image directory`,
	RunE: runSettingsStorage,
}

var settingsBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Configure off-site backup",
	Long:  `Configure the S3-compatible bucket used by 'ingrecheck backup'.`,
	RunE:  runSettingsBackup,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	settingsCmd.AddCommand(settingsBackupCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	cmd.Printf("  Data dir: %s\n", valueOr(settings.Storage.DataDir, "(default)"))
	cmd.Println()

	cmd.Println("[Dataset]")
	cmd.Printf("  Path: %s\n", valueOr(settings.Dataset.Path, "(bundled)"))
	cmd.Println()

	cmd.Println("[Backup]")
	cmd.Printf("  Endpoint: %s\n", valueOr(settings.Backup.Endpoint, "(not set)"))
	cmd.Printf("  Bucket: %s\n", valueOr(settings.Backup.Bucket, "(not set)"))
	cmd.Printf("  Region: %s\n", settings.Backup.Region)
	if settings.Backup.AccessKey != "" {
		cmd.Printf("  Access Key: %s\n", maskAPIKey(settings.Backup.AccessKey))
	} else {
		cmd.Printf("  Access Key: (not set)\n")
	}
	if settings.Backup.SecretKey != "" {
		cmd.Printf("  Secret Key: %s\n", maskAPIKey(settings.Backup.SecretKey))
	} else {
		cmd.Printf("  Secret Key: (not set)\n")
	}
	cmd.Printf("  Use SSL: %t\n", settings.Backup.UseSSL)
	status := "configured"
	if !settings.Backup.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if strings.HasSuffix(key, "_key") {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsStorage(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Storage Backend")
	cmd.Println("----------------------")
	backends := []domain.StorageBackend{domain.StorageBackendFile, domain.StorageBackendSQLite}
	current := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == settings.Storage.Backend {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	idx := parseChoice(readLine(reader), len(backends), current)
	settings.Storage.Backend = backends[idx-1]

	cmd.Printf("Data directory [%s]: ", valueOr(settings.Storage.DataDir, "default"))
	if dir := readLine(reader); dir != "" {
		settings.Storage.DataDir = dir
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("\nStorage backend set to: %s\n", settings.Storage.Backend.Description())
	cmd.Println("Existing scans are not migrated between backends.")
	return nil
}

func runSettingsBackup(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)
	b := &settings.Backup

	cmd.Println("Configure Backup")
	cmd.Println("----------------")
	b.Endpoint = prompt(cmd, reader, "Endpoint (host:port)", b.Endpoint)
	b.Bucket = prompt(cmd, reader, "Bucket", b.Bucket)
	b.Region = prompt(cmd, reader, "Region", b.Region)
	b.AccessKey = prompt(cmd, reader, "Access key", b.AccessKey)

	cmd.Print("Secret key (leave empty to keep): ")
	b.SecretKey = readPassword(in, reader)
	cmd.Println()

	ssl := prompt(cmd, reader, "Use SSL", strconv.FormatBool(b.UseSSL))
	useSSL, err := strconv.ParseBool(ssl)
	if err != nil {
		return fmt.Errorf("%w: use SSL must be true or false", domain.ErrInvalidInput)
	}
	b.UseSSL = useSSL

	if !b.IsConfigured() {
		return errors.New("endpoint and bucket are required")
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Backup configured: %s/%s\n", b.Endpoint, b.Bucket)
	return nil
}

// Helper functions.

func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, current)
	} else {
		cmd.Printf("%s: ", label)
	}
	if input := readLine(reader); input != "" {
		return input
	}
	return current
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
