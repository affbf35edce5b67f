package domain

const unknownDescription = "Unknown"

// StorageBackend selects the scan collection persistence implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendFile stores the collection as a single JSON document.
	StorageBackendFile StorageBackend = "file"

	// StorageBackendSQLite stores the collection in an SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendFile, StorageBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendFile:
		return "File (JSON document + image directory)"
	case StorageBackendSQLite:
		return "SQLite (database + image directory)"
	default:
		return unknownDescription
	}
}

// StorageSettings holds scan persistence configuration.
type StorageSettings struct {
	// Backend selects the store implementation.
	Backend StorageBackend

	// DataDir is where the collection and images live.
	// Empty means ~/.ingrecheck/data.
	DataDir string
}

// DatasetSettings holds reference dataset configuration.
type DatasetSettings struct {
	// Path overrides the bundled dataset. Empty uses the bundled resource.
	Path string
}

// BackupSettings holds S3-compatible backup configuration.
type BackupSettings struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// IsConfigured returns true if a backup target is set up.
func (b BackupSettings) IsConfigured() bool {
	return b.Endpoint != "" && b.Bucket != ""
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Storage StorageSettings
	Dataset DatasetSettings
	Backup  BackupSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageBackendFile,
		},
		Backup: BackupSettings{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}
