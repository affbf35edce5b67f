package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ingrecheck/internal/classifier"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
	"github.com/custodia-labs/ingrecheck/internal/core/services"
)

func testDataset() *domain.ReferenceDataset {
	return &domain.ReferenceDataset{
		SafeIngredients:      []string{"Water", "Salt"},
		ConditionallyAllowed: []string{"Palm Oil"},
		HarmfulIngredients:   []string{"Red 40"},
	}
}

// setupTestServices installs services backed by in-memory stores and
// returns a function restoring the previous ones.
func setupTestServices() func() {
	oldAnalysis, oldScan, oldSettings, oldBackup := analysisService, scanService, settingsService, backupService

	store := memory.NewScanStore()
	analysis := services.NewAnalysisService(classifier.NewEngine(testDataset()), "test")

	analysisService = analysis
	scanService = services.NewScanService(store, analysis)
	settingsService = services.NewSettingsService(memory.NewConfigStore())
	backupService = services.NewBackupService(store, nil)

	return func() {
		analysisService, scanService, settingsService, backupService = oldAnalysis, oldScan, oldSettings, oldBackup
	}
}

// execute runs the root command with args and stdin, returning its output.
func execute(stdin string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// captureScan saves a scan through the installed scan service.
func captureScan(text string) *domain.ScanRecord {
	record, err := scanService.Capture(context.Background(), text, []byte("jpeg"))
	if err != nil {
		panic(err)
	}
	return record
}

// mockBackupService returns a fixed report.
type mockBackupService struct {
	report *driving.BackupReport
	err    error
}

func (m *mockBackupService) Backup(context.Context) (*driving.BackupReport, error) {
	return m.report, m.err
}
