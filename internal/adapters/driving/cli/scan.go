package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingrecheck/internal/adapters/driving/inbox"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Manage saved scans",
	Long:  `Capture, list, inspect, reorder and delete saved scans.`,
}

var scanAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Classify a label and save it with its photo",
	Long: `Classifies the label text and saves it together with the photo.

The text is taken from --text, from --file, or from stdin.`,
	Args: cobra.NoArgs,
	RunE: runScanAdd,
}

var scanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scans",
	Args:  cobra.NoArgs,
	RunE:  runScanList,
}

var scanShowCmd = &cobra.Command{
	Use:   "show [scan-id]",
	Short: "Show a saved scan",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanShow,
}

var scanDeleteCmd = &cobra.Command{
	Use:   "delete [scan-id]...",
	Short: "Delete saved scans and their photos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScanDelete,
}

var scanImageCmd = &cobra.Command{
	Use:   "image [scan-id]",
	Short: "Export the photo of a saved scan",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanImage,
}

var scanMoveCmd = &cobra.Command{
	Use:   "move [from] [to]",
	Short: "Move a scan to another position",
	Long: `Moves the scan at position <from> so that it ends up at position <to>.
Positions are the numbers shown by 'ingrecheck scan list'.`,
	Args: cobra.ExactArgs(2),
	RunE: runScanMove,
}

var scanWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Save scans dropped into a directory",
	Long: `Watches a directory for label captures and saves each one.

A capture is a text file and a photo with the same base name, for example
label.txt and label.jpg. Pairs already in the directory are saved first.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runScanWatch,
}

var (
	scanImagePath string
	scanText      string
	scanTextFile  string
	scanAsJSON    bool
	scanOutPath   string
)

func init() {
	scanAddCmd.Flags().StringVarP(&scanImagePath, "image", "i", "", "photo of the label (required)")
	scanAddCmd.Flags().StringVarP(&scanText, "text", "t", "", "recognised label text")
	scanAddCmd.Flags().StringVarP(&scanTextFile, "file", "f", "", "read label text from file")
	_ = scanAddCmd.MarkFlagRequired("image")
	scanAddCmd.MarkFlagsMutuallyExclusive("text", "file")

	scanListCmd.Flags().BoolVar(&scanAsJSON, "json", false, "output as JSON")
	scanShowCmd.Flags().BoolVar(&scanAsJSON, "json", false, "output as JSON")

	scanImageCmd.Flags().StringVarP(&scanOutPath, "out", "o", "", "file to write the photo to (required)")
	_ = scanImageCmd.MarkFlagRequired("out")

	scanCmd.AddCommand(scanAddCmd)
	scanCmd.AddCommand(scanListCmd)
	scanCmd.AddCommand(scanShowCmd)
	scanCmd.AddCommand(scanDeleteCmd)
	scanCmd.AddCommand(scanImageCmd)
	scanCmd.AddCommand(scanMoveCmd)
	scanCmd.AddCommand(scanWatchCmd)
	rootCmd.AddCommand(scanCmd)
}

func runScanAdd(cmd *cobra.Command, _ []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	image, err := os.ReadFile(scanImagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	text := scanText
	if text == "" {
		text, err = readText(cmd, nil, scanTextFile)
		if err != nil {
			return err
		}
	}

	record, err := scanService.Capture(cmd.Context(), text, image)
	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}

	cmd.Printf("Saved scan %s\n\n", record.ID)
	printIngredients(cmd, record.Ingredients)
	if len(record.Ingredients) > 0 {
		cmd.Println()
		printCounts(cmd, record.Counts())
	}
	return nil
}

func runScanList(cmd *cobra.Command, _ []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	records, err := scanService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}

	if scanAsJSON {
		out := make([]scanJSON, len(records))
		for i := range records {
			out[i] = toScanJSON(&records[i])
		}
		return printJSON(cmd, out)
	}

	if len(records) == 0 {
		cmd.Println("No saved scans.")
		return nil
	}

	for i := range records {
		cmd.Printf("%3d. %s  %s  %s\n",
			i+1,
			records[i].ID,
			records[i].Timestamp.Local().Format(dateLayout),
			styleSet.Muted.Render(countsSummary(records[i].Counts())))
	}
	cmd.Printf("\nTotal: %d scans\n", len(records))
	return nil
}

func runScanShow(cmd *cobra.Command, args []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	record, err := scanService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get scan: %w", err)
	}

	if scanAsJSON {
		return printJSON(cmd, toScanJSON(record))
	}

	cmd.Println(styleSet.Title.Render("Scan " + record.ID))
	cmd.Printf("  Date:   %s\n", record.Timestamp.Local().Format(dateLayout))
	cmd.Printf("  Image:  %s\n", record.ImageRef)
	cmd.Println()
	printIngredients(cmd, record.Ingredients)
	if len(record.Ingredients) > 0 {
		cmd.Println()
		printCounts(cmd, record.Counts())
	}
	return nil
}

func runScanDelete(cmd *cobra.Command, args []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	if err := scanService.Delete(cmd.Context(), args...); err != nil {
		return fmt.Errorf("failed to delete scans: %w", err)
	}

	cmd.Printf("Deleted %d scan(s)\n", len(args))
	return nil
}

func runScanImage(cmd *cobra.Command, args []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	data, err := scanService.Image(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if err := os.WriteFile(scanOutPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	cmd.Printf("Wrote %d bytes to %s\n", len(data), scanOutPath)
	return nil
}

func runScanMove(cmd *cobra.Command, args []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	from, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	if err := scanService.Move(cmd.Context(), from, to); err != nil {
		return fmt.Errorf("failed to move scan: %w", err)
	}

	cmd.Printf("Moved scan from position %s to %s\n", args[0], args[1])
	return nil
}

func runScanWatch(cmd *cobra.Command, args []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	watcher := inbox.New(args[0], scanService)
	watcher.OnCapture = func(name string, record *domain.ScanRecord) {
		cmd.Printf("%s -> %s  %s\n", name, record.ID, countsSummary(record.Counts()))
	}

	cmd.Printf("Watching %s for new scans (Ctrl+C to stop)\n", args[0])
	return watcher.Run(cmd.Context())
}

// parsePosition converts a 1-based list position to a collection index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: position %q must be a positive number", domain.ErrInvalidInput, s)
	}
	return n - 1, nil
}
