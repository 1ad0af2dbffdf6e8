package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for data files (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the timeout for provider HTTP requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultRequestTimeout bounds a single generation when config is silent
	DefaultRequestTimeout = 30 * time.Second
	// DefaultCacheTTL is how long generated responses stay cached
	DefaultCacheTTL = time.Hour
	// DefaultShutdownTimeout bounds graceful server shutdown
	DefaultShutdownTimeout = 10 * time.Second
)

// Limit constants
const (
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
	// DefaultHistoryLimit is the number of entries kept per history kind
	DefaultHistoryLimit = 20
	// DefaultMaxBodyBytes caps assistant request bodies (1MB)
	DefaultMaxBodyBytes = 1 << 20
	// DefaultMaxConnections caps concurrent server connections
	DefaultMaxConnections = 256
	// WordsPerMinute drives the estimated read time
	WordsPerMinute = 200
)

// Server defaults
const (
	DefaultServerAddr    = ":8787"
	DefaultAllowedOrigin = "*"
	DefaultAuthSecretEnv = "RAQM_JWT_SECRET"
	DefaultAuthAudience  = "authenticated"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339Nano
)
