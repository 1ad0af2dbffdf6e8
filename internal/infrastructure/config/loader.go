package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/raqm/assets"
	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/pkg/filesystem"
	"github.com/doeshing/raqm/internal/ports"
)

// FileLoader loads YAML configuration from ~/.raqm/config.yaml (overridable via RAQM_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses RAQM_CONFIG or the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
	}

	return Parse(data)
}

// Save writes cfg to the config path atomically.
func (l *FileLoader) Save(cfg domain.Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.SecureFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Backup copies the current config file next to itself and returns the copy's path.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// Path returns the resolved configuration file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv("RAQM_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filesystem.AppDir("config.yaml")
}

// Parse decodes YAML and fills unset fields with defaults.
func Parse(data []byte) (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Default returns the embedded default configuration.
func Default() domain.Config {
	cfg, err := Parse(assets.DefaultConfigYAML)
	if err != nil {
		panic("config: embedded default is invalid: " + err.Error())
	}
	return cfg
}

// Marshal renders cfg back to YAML.
func Marshal(cfg domain.Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Assistant.Mode == "" {
		cfg.Assistant.Mode = domain.ModeNumeric
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = int(domain.DefaultRequestTimeout.Seconds())
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = domain.DefaultServerAddr
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = domain.DefaultMaxBodyBytes
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = domain.DefaultMaxConnections
	}
	if cfg.Server.AllowedOrigin == "" {
		cfg.Server.AllowedOrigin = domain.DefaultAllowedOrigin
	}
	if cfg.Server.Auth.SecretEnv == "" {
		cfg.Server.Auth.SecretEnv = domain.DefaultAuthSecretEnv
	}
	if cfg.Server.Auth.Audience == "" {
		cfg.Server.Auth.Audience = domain.DefaultAuthAudience
	}

	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendSQLite
	}
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = domain.DefaultHistoryLimit
	}
	if cfg.History.Path == "" {
		name := "history.db"
		if cfg.History.Backend == domain.HistoryBackendFile {
			name = "history.jsonl"
		}
		cfg.History.Path = filesystem.AppDir("history", name)
	} else {
		cfg.History.Path = filesystem.ExpandPath(cfg.History.Path)
	}

	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = domain.DefaultCacheTTL.String()
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = domain.DefaultMaxCacheEntries
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = filesystem.AppDir("cache", "responses")
	} else {
		cfg.Cache.Dir = filesystem.ExpandPath(cfg.Cache.Dir)
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
