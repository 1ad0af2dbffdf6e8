package domain

// Config mirrors ~/.raqm/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Assistant           AssistantSettings `yaml:"assistant"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Server              ServerSettings    `yaml:"server"`
	History             HistorySettings   `yaml:"history"`
	Cache               CacheSettings     `yaml:"cache"`
}

// AssistantMode selects which variant answers the assistant endpoint.
type AssistantMode string

const (
	ModeNumeric AssistantMode = "numeric"
	ModeContent AssistantMode = "content"
)

// AssistantSettings configures the assistant endpoint.
type AssistantSettings struct {
	Mode AssistantMode `yaml:"mode"`
	// ResponseDelay is an artificial pause before answering, e.g. "300ms".
	ResponseDelay string `yaml:"response_delay"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel   string   `yaml:"default_model"`
	FallbackModels []string `yaml:"fallback_models,omitempty"`
	TimeoutSeconds int      `yaml:"timeout"`
}

// ServerSettings configures `raqm serve`.
type ServerSettings struct {
	Addr           string            `yaml:"addr"`
	MaxBodyBytes   int64             `yaml:"max_body_bytes"`
	MaxConnections int               `yaml:"max_connections"`
	AllowedOrigin  string            `yaml:"allowed_origin"`
	RateLimit      RateLimitSettings `yaml:"rate_limit"`
	Auth           AuthSettings      `yaml:"auth"`
}

// RateLimitSettings feeds a token bucket; zero RequestsPerSecond disables it.
type RateLimitSettings struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// AuthSettings enables HS256 bearer token verification.
type AuthSettings struct {
	Enabled   bool   `yaml:"enabled"`
	SecretEnv string `yaml:"secret_env"`
	Audience  string `yaml:"audience"`
}

// HistoryBackend selects the history store implementation.
type HistoryBackend string

const (
	HistoryBackendSQLite HistoryBackend = "sqlite"
	HistoryBackendFile   HistoryBackend = "file"
)

// HistorySettings configures the history store.
type HistorySettings struct {
	Backend    HistoryBackend `yaml:"backend"`
	Path       string         `yaml:"path"`
	MaxEntries int            `yaml:"max_entries"`
}

// CacheSettings configures the generated content cache.
type CacheSettings struct {
	Dir        string `yaml:"dir"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}
