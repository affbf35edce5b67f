// Package app wires the driven adapters into the core services.
//
// Driving adapters (CLI, MCP server, inbox watcher) receive a fully built App
// and never construct stores or loaders themselves.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/backup"
	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/dataset"
	filestore "github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ingrecheck/internal/classifier"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
	"github.com/custodia-labs/ingrecheck/internal/core/services"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

// Options override configured values for one run.
type Options struct {
	// ConfigDir holds config.toml. Empty means ~/.ingrecheck.
	ConfigDir string

	// DataDir overrides storage.data_dir.
	DataDir string

	// DatasetPath overrides dataset.path.
	DatasetPath string
}

// App holds the services for one process.
type App struct {
	Config   driven.ConfigStore
	Settings *services.SettingsService
	Analysis *services.AnalysisService
	Scans    *services.ScanService
	Backup   *services.BackupService

	store   driven.ScanStore
	dataDir string
}

// New loads configuration, the reference dataset and the scan collection.
//
// A corrupt dataset or collection is logged and the app starts with an empty
// one; only failures that leave no usable store are returned.
func New(ctx context.Context, opts Options) (*App, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	config, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(config)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	logger.Section("Dataset")
	datasetPath := settings.Dataset.Path
	if opts.DatasetPath != "" {
		datasetPath = opts.DatasetPath
	}
	loader := dataset.NewLoader(datasetPath)
	ds, err := loader.Load(ctx)
	if err != nil {
		logger.Warn("%v; classification will report every ingredient as unknown", err)
	}
	analysis := services.NewAnalysisService(classifier.NewEngine(ds), loader.Source())

	logger.Section("Storage")
	dataDir := settings.Storage.DataDir
	if opts.DataDir != "" {
		dataDir = opts.DataDir
	}
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	store, err := openStore(settings.Storage.Backend, dataDir)
	if err != nil {
		return nil, err
	}
	if err := store.Load(ctx); err != nil {
		if !errors.Is(err, domain.ErrCorruptCollection) {
			store.Close()
			return nil, err
		}
		logger.Warn("%v; starting with no saved scans", err)
	}
	logger.Info("storage: %s backend in %s", settings.Storage.Backend, dataDir)

	var target driven.BackupTarget
	if settings.Backup.IsConfigured() {
		t, err := backup.NewTarget(settings.Backup)
		if err != nil {
			logger.Warn("backup disabled: %v", err)
		} else {
			target = t
		}
	}

	return &App{
		Config:   config,
		Settings: settingsService,
		Analysis: analysis,
		Scans:    services.NewScanService(store, analysis),
		Backup:   services.NewBackupService(store, target),
		store:    store,
		dataDir:  dataDir,
	}, nil
}

// DataDir returns the directory holding the scan collection and images.
func (a *App) DataDir() string {
	return a.dataDir
}

// Close releases the scan store.
func (a *App) Close() error {
	return a.store.Close()
}

func openStore(backend domain.StorageBackend, dataDir string) (driven.ScanStore, error) {
	switch backend {
	case domain.StorageBackendSQLite:
		return sqlite.NewStore(dataDir)
	case domain.StorageBackendFile, "":
		return filestore.NewStore(dataDir)
	default:
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}
}
