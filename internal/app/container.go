package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/doeshing/raqm/internal/application/analyze"
	"github.com/doeshing/raqm/internal/application/content"
	"github.com/doeshing/raqm/internal/application/doctor"
	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/infrastructure/ai"
	"github.com/doeshing/raqm/internal/infrastructure/cache"
	"github.com/doeshing/raqm/internal/infrastructure/config"
	"github.com/doeshing/raqm/internal/infrastructure/history"
	"github.com/doeshing/raqm/internal/infrastructure/server"
	"github.com/doeshing/raqm/internal/pkg/logger"
	"github.com/doeshing/raqm/internal/ports"
	"github.com/doeshing/raqm/internal/version"
)

// Options controls how the container is assembled.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.ZapLogger
	AnalyzeService *analyze.Service
	ContentService *content.Service
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	CacheStore     ports.CacheRepository

	closers []io.Closer
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(opts.Verbose)
	if err != nil {
		return nil, err
	}

	historyStore, err := history.Open(cfg.History)
	if err != nil {
		log.Warn("sqlite history unavailable, using jsonl store", map[string]interface{}{
			"error": err.Error(),
			"path":  historyStore.Path(),
		})
	}
	cacheStore := cache.NewFileCache(cfg.Cache)

	delay := responseDelay(cfg.Assistant.ResponseDelay, log)

	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		HistoryStore:   historyStore,
		CacheStore:     cacheStore,
		AnalyzeService: &analyze.Service{
			History: historyStore,
			Logger:  log,
			Delay:   delay,
		},
		ContentService: &content.Service{
			ConfigProvider:  cfgLoader,
			ProviderFactory: ai.NewFactory(),
			Cache:           cacheStore,
			History:         historyStore,
			Logger:          log,
		},
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			History:        historyStore,
			Cache:          cacheStore,
		},
	}
	if closer, ok := historyStore.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	return c, nil
}

// responseDelay parses assistant.response_delay. An unparsable or negative
// value is logged and treated as no delay.
func responseDelay(raw string, log ports.Logger) time.Duration {
	if raw == "" {
		return 0
	}
	delay, err := time.ParseDuration(raw)
	if err == nil && delay < 0 {
		err = fmt.Errorf("negative duration")
	}
	if err != nil {
		log.Warn("invalid assistant.response_delay, answering without delay", map[string]interface{}{
			"error": err.Error(),
			"value": raw,
		})
		return 0
	}
	return delay
}

// NewServer builds the HTTP server from the loaded configuration.
func (c *Container) NewServer(settings domain.ServerSettings, mode domain.AssistantMode) (*server.Server, error) {
	return server.New(server.Options{
		Settings:    settings,
		Mode:        mode,
		Analyzer:    c.AnalyzeService,
		Generator:   c.ContentService,
		History:     c.HistoryStore,
		Diagnostics: c.DoctorService,
		Logger:      c.Logger,
		Version:     version.Version,
	})
}

// Close releases stores and flushes the logger.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return firstErr
}
