package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

func TestFactorySelectsProvider(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name  string
		model domain.ModelDefinition
		want  string
	}{
		{"explicit gemini", domain.ModelDefinition{Name: "m", Provider: domain.ProviderKindGemini}, "gemini"},
		{"explicit openai", domain.ModelDefinition{Name: "m", Provider: domain.ProviderKindOpenAI}, "openai"},
		{"explicit offline", domain.ModelDefinition{Name: "m", Provider: domain.ProviderKindOffline}, "offline"},
		{"inferred from endpoint", domain.ModelDefinition{Name: "custom", Endpoint: "https://api.openai.com/v1/chat/completions"}, "openai"},
		{"inferred from name", domain.ModelDefinition{Name: "gemini-pro"}, "gemini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := factory.ForModel(tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.want, provider.Name())
			assert.Equal(t, tt.model, provider.Model())
		})
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	_, err := NewFactory().ForModel(domain.ModelDefinition{Name: "mystery", Endpoint: "http://example.test"})
	require.Error(t, err)
}

func TestProvidersFallBackOfflineWithoutKey(t *testing.T) {
	t.Setenv("RAQM_TEST_MISSING_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	for _, kind := range []domain.ProviderKind{domain.ProviderKindGemini, domain.ProviderKindOpenAI} {
		provider, err := NewFactory().ForModel(domain.ModelDefinition{Name: "m", Provider: kind, AuthEnvVar: "RAQM_TEST_MISSING_KEY"})
		require.NoError(t, err)
		resp, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "اكتب"})
		require.NoError(t, err)
		assert.Equal(t, OfflineReply, resp.Text)
	}
}

func TestOpenAIProviderSendsChatCompletion(t *testing.T) {
	t.Setenv("RAQM_TEST_OPENAI_KEY", "sk-test")
	t.Setenv("OPENAI_ORG_ID", "")

	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  مرحباً بالعالم  "}}]}`))
	}))
	defer srv.Close()

	model := domain.ModelDefinition{
		Name:       "gpt",
		Provider:   domain.ProviderKindOpenAI,
		Endpoint:   srv.URL,
		AuthEnvVar: "RAQM_TEST_OPENAI_KEY",
		ModelID:    "gpt-test",
	}
	provider, err := NewFactoryWithClient(srv.Client()).ForModel(model)
	require.NoError(t, err)

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{SystemPrompt: "sys", Prompt: "user"})
	require.NoError(t, err)
	assert.Equal(t, "مرحباً بالعالم", resp.Text)
	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	assert.Equal(t, []chatMessage{{Role: "system", Content: "sys"}, {Role: "user", Content: "user"}}, got.Messages)
}

func TestOpenAIProviderReportsHTTPErrors(t *testing.T) {
	t.Setenv("RAQM_TEST_OPENAI_KEY", "sk-test")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider := newOpenAIProvider(domain.ModelDefinition{Endpoint: srv.URL, AuthEnvVar: "RAQM_TEST_OPENAI_KEY"}, srv.Client())
	_, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRenderSystemPrompt(t *testing.T) {
	data := NewPromptData(domain.GenerateRequest{
		Platform:     domain.PlatformTwitter,
		ContentType:  domain.ContentMarketing,
		Instructions: "  اختصر  ",
	})

	got, err := RenderSystemPrompt(domain.ModelDefinition{}, data)
	require.NoError(t, err)
	want := BaseInstruction + " " + domain.PlatformTwitter.Instructions() + " " +
		domain.ContentMarketing.Instructions() + " اختصر"
	assert.Equal(t, want, got)

	general, err := RenderSystemPrompt(domain.ModelDefinition{}, NewPromptData(domain.GenerateRequest{
		Platform:    domain.PlatformGeneral,
		ContentType: domain.ContentGeneral,
	}))
	require.NoError(t, err)
	assert.Equal(t, BaseInstruction, general)

	custom, err := RenderSystemPrompt(domain.ModelDefinition{SystemPrompt: "منصة {{.PlatformLabel}} / {{.ContentTypeLabel}}"}, data)
	require.NoError(t, err)
	assert.Equal(t, "منصة تويتر / تسويقي", custom)

	_, err = RenderSystemPrompt(domain.ModelDefinition{SystemPrompt: "{{.Unknown}}"}, data)
	require.Error(t, err)
}
