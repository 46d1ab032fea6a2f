// Package constants provides shared constants used throughout the apmatch
// codebase. This includes file permissions, batch limits, and other
// configuration values that should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like credentials (rw-------)
	SecureFilePermissions = 0600
)

// Batch processing constants bound concurrent validation work
const (
	// DefaultBatchWorkers is the default number of concurrent workers used
	// when validating document pairs in bulk
	DefaultBatchWorkers = 4

	// MaxBatchWorkers caps the worker count regardless of configuration
	MaxBatchWorkers = 32
)

// Config file constants name the default configuration sources
const (
	// ConfigFileName is the base name of the configuration file (no extension)
	ConfigFileName = ".apmatch"

	// ConfigFileType is the configuration file format
	ConfigFileType = "yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "APMATCH"
)
