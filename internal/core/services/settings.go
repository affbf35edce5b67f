package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyStorageBackend  = "storage.backend"
	KeyStorageDataDir  = "storage.data_dir"
	KeyDatasetPath     = "dataset.path"
	KeyBackupEndpoint  = "backup.endpoint"
	KeyBackupBucket    = "backup.bucket"
	KeyBackupRegion    = "backup.region"
	KeyBackupAccessKey = "backup.access_key"
	KeyBackupSecretKey = "backup.secret_key"
	KeyBackupUseSSL    = "backup.use_ssl"
)

var settingKeys = []string{
	KeyStorageBackend,
	KeyStorageDataDir,
	KeyDatasetPath,
	KeyBackupEndpoint,
	KeyBackupBucket,
	KeyBackupRegion,
	KeyBackupAccessKey,
	KeyBackupSecretKey,
	KeyBackupUseSSL,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(KeyStorageDataDir),
		},
		Dataset: domain.DatasetSettings{
			Path: s.configStore.GetString(KeyDatasetPath),
		},
		Backup: domain.BackupSettings{
			Endpoint:  s.configStore.GetString(KeyBackupEndpoint),
			Bucket:    s.configStore.GetString(KeyBackupBucket),
			Region:    s.getString(KeyBackupRegion, defaults.Backup.Region),
			AccessKey: s.configStore.GetString(KeyBackupAccessKey),
			SecretKey: s.configStore.GetString(KeyBackupSecretKey),
			UseSSL:    s.getBool(KeyBackupUseSSL, defaults.Backup.UseSSL),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyStorageBackend, settings.Storage.Backend.String()},
		{KeyStorageDataDir, settings.Storage.DataDir},
		{KeyDatasetPath, settings.Dataset.Path},
		{KeyBackupEndpoint, settings.Backup.Endpoint},
		{KeyBackupBucket, settings.Backup.Bucket},
		{KeyBackupRegion, settings.Backup.Region},
		{KeyBackupAccessKey, settings.Backup.AccessKey},
		{KeyBackupUseSSL, settings.Backup.UseSSL},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An empty secret keeps the stored one.
	if settings.Backup.SecretKey != "" {
		if err := s.configStore.Set(KeyBackupSecretKey, settings.Backup.SecretKey); err != nil {
			return fmt.Errorf("save %s: %w", KeyBackupSecretKey, err)
		}
	}

	return nil
}

// Set updates one setting from its textual form.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case KeyStorageBackend:
		backend := domain.StorageBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: storage backend must be %q or %q",
				domain.ErrInvalidInput, domain.StorageBackendFile, domain.StorageBackendSQLite)
		}
		return s.configStore.Set(key, backend.String())

	case KeyBackupUseSSL:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, b)

	case KeyStorageDataDir, KeyDatasetPath, KeyBackupEndpoint, KeyBackupBucket,
		KeyBackupRegion, KeyBackupAccessKey, KeyBackupSecretKey:
		return s.configStore.Set(key, value)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys lists the settable config keys.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetDefaults returns the default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(KeyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
