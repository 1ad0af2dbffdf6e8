package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/infrastructure/ai"
	"github.com/doeshing/raqm/internal/pkg/logger"
	"github.com/doeshing/raqm/internal/ports"
)

type stubConfig struct {
	cfg domain.Config
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, nil }

type stubProvider struct {
	model domain.ModelDefinition
	text  string
	err   error
	calls *[]ports.ProviderRequest
}

func (p stubProvider) Name() string                  { return "stub" }
func (p stubProvider) Model() domain.ModelDefinition { return p.model }
func (p stubProvider) Generate(_ context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	*p.calls = append(*p.calls, req)
	if p.err != nil {
		return ports.ProviderResponse{}, p.err
	}
	return ports.ProviderResponse{Text: p.text}, nil
}

type stubFactory struct {
	replies map[string]stubProvider
	calls   []ports.ProviderRequest
}

func (f *stubFactory) ForModel(model domain.ModelDefinition) (ports.ContentProvider, error) {
	p, ok := f.replies[model.Name]
	if !ok {
		return nil, errors.New("unknown model")
	}
	p.model = model
	p.calls = &f.calls
	return p, nil
}

type memoryCache struct {
	entries map[string]domain.CacheEntry
}

func (c *memoryCache) Get(key string) (domain.CacheEntry, bool, error) {
	e, ok := c.entries[key]
	return e, ok, nil
}
func (c *memoryCache) Set(e domain.CacheEntry) error { c.entries[e.Key] = e; return nil }
func (c *memoryCache) Clear() error                  { c.entries = map[string]domain.CacheEntry{}; return nil }
func (c *memoryCache) Dir() string                   { return "memory" }

type memoryHistory struct {
	entries []domain.HistoryEntry
}

func (h *memoryHistory) Save(_ context.Context, e domain.HistoryEntry) error {
	h.entries = append(h.entries, e)
	return nil
}
func (h *memoryHistory) Records(context.Context, domain.HistoryQuery) ([]domain.HistoryEntry, error) {
	return h.entries, nil
}
func (h *memoryHistory) Clear(context.Context, domain.HistoryKind) error { return nil }
func (h *memoryHistory) Path() string                                     { return "memory" }

func testConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "primary", FallbackModels: []string{"backup"}},
		Models: []domain.ModelDefinition{
			{Name: "primary", ModelID: "p-1"},
			{Name: "backup", ModelID: "b-1"},
		},
	}
}

func newService(factory *stubFactory) (*Service, *memoryCache, *memoryHistory) {
	cache := &memoryCache{entries: map[string]domain.CacheEntry{}}
	history := &memoryHistory{}
	return &Service{
		ConfigProvider:  stubConfig{cfg: testConfig()},
		ProviderFactory: factory,
		Cache:           cache,
		History:         history,
		Logger:          logger.Nop(),
	}, cache, history
}

func TestGenerateUsesDefaultModelAndCaches(t *testing.T) {
	factory := &stubFactory{replies: map[string]stubProvider{"primary": {text: "نص مولد"}}}
	svc, cache, history := newService(factory)

	req := domain.GenerateRequest{Prompt: "  اكتب عن القهوة ", Platform: domain.PlatformTwitter, ContentType: domain.ContentMarketing}
	resp, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "نص مولد", resp.Response)
	assert.Equal(t, "primary", resp.Model)
	assert.False(t, resp.FromCache)
	assert.Equal(t, 2, resp.Stats.Words)

	require.Len(t, factory.calls, 1)
	assert.Equal(t, "اكتب عن القهوة", factory.calls[0].Prompt)
	assert.Contains(t, factory.calls[0].SystemPrompt, ai.BaseInstruction)
	assert.Contains(t, factory.calls[0].SystemPrompt, domain.PlatformTwitter.Instructions())
	assert.Len(t, cache.entries, 1)

	again, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, again.FromCache)
	assert.Len(t, factory.calls, 1, "cached response should not call the provider")

	require.Len(t, history.entries, 2)
	assert.Equal(t, domain.HistoryContent, history.entries[0].Kind)
	assert.Equal(t, domain.PlatformTwitter, history.entries[0].Platform)
}

func TestGenerateFallsBackAlongChain(t *testing.T) {
	factory := &stubFactory{replies: map[string]stubProvider{
		"primary": {err: errors.New("boom")},
		"backup":  {text: "احتياطي"},
	}}
	svc, _, _ := newService(factory)

	resp, err := svc.Generate(context.Background(), domain.GenerateRequest{Prompt: "مرحبا"})
	require.NoError(t, err)
	assert.Equal(t, "backup", resp.Model)
	assert.Equal(t, "احتياطي", resp.Response)
	assert.Len(t, factory.calls, 2)
}

func TestGenerateAllProvidersFail(t *testing.T) {
	factory := &stubFactory{replies: map[string]stubProvider{
		"primary": {err: errors.New("boom")},
		"backup":  {err: errors.New("bang")},
	}}
	svc, _, history := newService(factory)

	_, err := svc.Generate(context.Background(), domain.GenerateRequest{Prompt: "مرحبا"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
	assert.Contains(t, err.Error(), "bang")
	assert.Empty(t, history.entries)
}

func TestGenerateRejectsBlankPrompt(t *testing.T) {
	svc, _, _ := newService(&stubFactory{})
	_, err := svc.Generate(context.Background(), domain.GenerateRequest{Prompt: " \n "})
	assert.True(t, errors.Is(err, domain.ErrMalformedRequest))
}

func TestGenerateUnknownOverride(t *testing.T) {
	svc, _, _ := newService(&stubFactory{})
	_, err := svc.Generate(context.Background(), domain.GenerateRequest{Prompt: "x", ModelOverride: "nope"})
	assert.True(t, errors.Is(err, domain.ErrModelNotConfigured))
}

func TestOfflineReplyIsNotCached(t *testing.T) {
	factory := &stubFactory{replies: map[string]stubProvider{"primary": {text: ai.OfflineReply}}}
	svc, cache, _ := newService(factory)

	_, err := svc.Generate(context.Background(), domain.GenerateRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Empty(t, cache.entries)
}

func TestCacheKeyNormalisesUnicode(t *testing.T) {
	composed := "\u00e9"
	decomposed := "e\u0301"
	assert.Equal(t, CacheKey("m", "s", composed), CacheKey("m", "s", decomposed))
	assert.NotEqual(t, CacheKey("m", "s", "a"), CacheKey("m", "sa", ""))
}
