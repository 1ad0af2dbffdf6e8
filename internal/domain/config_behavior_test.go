package domain_test

import (
	"errors"
	"testing"

	"github.com/doeshing/raqm/internal/domain"
)

// TestConfig_GetDefaultModel tests retrieving the default model
func TestConfig_GetDefaultModel(t *testing.T) {
	tests := []struct {
		name        string
		config      domain.Config
		wantError   bool
		wantModelID string
	}{
		{
			name: "returns default model successfully",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gemini"},
				Models: []domain.ModelDefinition{
					{Name: "gemini", ModelID: "gemini-2.0-flash"},
					{Name: "gpt", ModelID: "gpt-4o-mini"},
				},
			},
			wantModelID: "gemini-2.0-flash",
		},
		{
			name: "returns error when default model not found",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "nonexistent"},
				Models:      []domain.ModelDefinition{{Name: "gemini", ModelID: "gemini-2.0-flash"}},
			},
			wantError: true,
		},
		{
			name: "returns error when no default model configured",
			config: domain.Config{
				Models: []domain.ModelDefinition{{Name: "gemini", ModelID: "gemini-2.0-flash"}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.GetDefaultModel()

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, domain.ErrModelNotConfigured) {
					t.Errorf("expected ErrModelNotConfigured, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if model.ModelID != tt.wantModelID {
				t.Errorf("got model ID %s, want %s", model.ModelID, tt.wantModelID)
			}
		})
	}
}

// TestConfig_ModelChain tests override and fallback ordering
func TestConfig_ModelChain(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{
			DefaultModel:   "gemini",
			FallbackModels: []string{"gpt", "missing", "gemini"},
		},
		Models: []domain.ModelDefinition{
			{Name: "gemini"},
			{Name: "gpt"},
			{Name: "offline"},
		},
	}

	tests := []struct {
		name     string
		override string
		want     []string
		wantErr  bool
	}{
		{name: "default then fallbacks", want: []string{"gemini", "gpt"}},
		{name: "override then fallbacks", override: "offline", want: []string{"offline", "gpt", "gemini"}},
		{name: "unknown override", override: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := cfg.ModelChain(tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var names []string
			for _, m := range chain {
				names = append(names, m.Name)
			}
			if len(names) != len(tt.want) {
				t.Fatalf("got %v, want %v", names, tt.want)
			}
			for i := range names {
				if names[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", names, tt.want)
				}
			}
		})
	}
}

// TestConfig_SetDefaultModel tests changing the default model
func TestConfig_SetDefaultModel(t *testing.T) {
	cfg := domain.Config{Models: []domain.ModelDefinition{{Name: "gemini"}, {Name: "gpt"}}}

	if err := cfg.SetDefaultModel("gpt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "gpt" {
		t.Errorf("default model = %s, want gpt", cfg.Preferences.DefaultModel)
	}
	if err := cfg.SetDefaultModel("claude"); err == nil {
		t.Error("expected error for unknown model")
	}
}
