package driven

// ConfigStore holds application settings as dot-notation keys
// ("backup.bucket"). Implementations decide how values are persisted.
type ConfigStore interface {
	// Get returns the raw value under key and whether it exists.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" when absent or not a string.
	GetString(key string) string

	// GetBool returns the value as a bool, or false when absent or not a bool.
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save writes every value to storage.
	Save() error

	// Load replaces the in-memory values with those in storage.
	Load() error

	// Path describes where the configuration is stored.
	Path() string
}
