package domain

import "fmt"

// GetDefaultModel retrieves the default model definition from configuration.
// Returns an error if the default model is not found.
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured: %w", ErrModelNotConfigured)
	}
	if model, ok := c.FindModelByName(c.Preferences.DefaultModel); ok {
		return model, nil
	}
	return ModelDefinition{}, fmt.Errorf("default model %s: %w", c.Preferences.DefaultModel, ErrModelNotConfigured)
}

// FindModelByName searches for a model by its name.
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration.
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// SetDefaultModel changes the default model to the specified name.
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("cannot set default model %s: %w", name, ErrModelNotConfigured)
	}
	c.Preferences.DefaultModel = name
	return nil
}

// GetFallbackModels returns the fallback models that actually exist.
func (c *Config) GetFallbackModels() []ModelDefinition {
	var fallbackModels []ModelDefinition
	for _, name := range c.Preferences.FallbackModels {
		if model, exists := c.FindModelByName(name); exists {
			fallbackModels = append(fallbackModels, model)
		}
	}
	return fallbackModels
}

// ModelChain returns the models to try for a request, in order: the override
// (or the default model when override is empty) followed by the fallbacks.
func (c *Config) ModelChain(override string) ([]ModelDefinition, error) {
	var primary ModelDefinition
	if override != "" {
		model, ok := c.FindModelByName(override)
		if !ok {
			return nil, fmt.Errorf("model %s: %w", override, ErrModelNotConfigured)
		}
		primary = model
	} else {
		model, err := c.GetDefaultModel()
		if err != nil {
			return nil, err
		}
		primary = model
	}

	chain := []ModelDefinition{primary}
	for _, fallback := range c.GetFallbackModels() {
		if fallback.Name != primary.Name {
			chain = append(chain, fallback)
		}
	}
	return chain, nil
}
