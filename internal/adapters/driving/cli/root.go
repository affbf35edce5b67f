// Package cli implements the ingrecheck command line.
//
// Commands talk to the core through the driving ports held in package
// variables. The root command builds them from configuration before any
// subcommand runs; tests install their own implementations instead.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingrecheck/internal/app"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// annotationNoServices marks commands that run without building the app.
const annotationNoServices = "ingrecheck/no-services"

var (
	analysisService driving.AnalysisService
	scanService     driving.ScanService
	settingsService driving.SettingsService
	backupService   driving.BackupService

	// application is set when the services were built by the root command.
	application *app.App

	// newApp is replaced in tests.
	newApp = app.New
)

var (
	verbose     bool
	dataDir     string
	datasetPath string
)

var rootCmd = &cobra.Command{
	Use:   "ingrecheck",
	Short: "Check product ingredient lists against a reference dataset",
	Long: `ingrecheck classifies the ingredient list on a product label as safe,
use with caution, potentially harmful or unknown, and keeps a local history
of saved scans with their photos.

Text is usually produced by an OCR step; pass it as an argument, a file or
on stdin.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding saved scans (overrides storage.data_dir)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "reference dataset JSON file (overrides dataset.path)")
}

// Execute runs the root command and releases the services afterwards.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] == "true" || servicesConfigured() {
		return nil
	}

	a, err := newApp(cmd.Context(), app.Options{
		DataDir:     dataDir,
		DatasetPath: datasetPath,
	})
	if err != nil {
		return err
	}

	application = a
	analysisService = a.Analysis
	scanService = a.Scans
	settingsService = a.Settings
	backupService = a.Backup
	return nil
}

func servicesConfigured() bool {
	return analysisService != nil || scanService != nil || settingsService != nil || backupService != nil
}

// closeServices releases services built by setupServices.
func closeServices() {
	if application == nil {
		return
	}
	if err := application.Close(); err != nil {
		logger.Warn("closing scan store: %v", err)
	}
	application = nil
	analysisService = nil
	scanService = nil
	settingsService = nil
	backupService = nil
}
