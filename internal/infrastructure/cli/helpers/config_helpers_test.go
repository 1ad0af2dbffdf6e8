package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/raqm/internal/domain"
	configinfra "github.com/doeshing/raqm/internal/infrastructure/config"
)

func TestParseYAMLValue(t *testing.T) {
	assert.Equal(t, 42, ParseYAMLValue("42"))
	assert.Equal(t, true, ParseYAMLValue("true"))
	assert.Equal(t, "content", ParseYAMLValue("content"))
	assert.Equal(t, []interface{}{"a", "b"}, ParseYAMLValue("[a, b]"))
	assert.Equal(t, "[unclosed", ParseYAMLValue("[unclosed"))
}

func TestConfigMapRoundTrip(t *testing.T) {
	cfg := configinfra.Default()

	cfgMap, err := ConfigToMap(cfg)
	require.NoError(t, err)

	value, ok := TraverseNestedMap(cfgMap, []string{"server", "rate_limit", "burst"})
	require.True(t, ok)
	assert.Equal(t, cfg.Server.RateLimit.Burst, value)

	require.True(t, SetNestedMapValue(cfgMap, []string{"assistant", "response_delay"}, "250ms"))
	updated, err := MapToConfig(cfgMap)
	require.NoError(t, err)
	assert.Equal(t, "250ms", updated.Assistant.ResponseDelay)
	assert.Equal(t, domain.ModeNumeric, updated.Assistant.Mode)
}

func TestTraverseNestedMapMissing(t *testing.T) {
	root := map[string]interface{}{"a": map[string]interface{}{"b": 1}}

	_, ok := TraverseNestedMap(root, []string{"a", "c"})
	assert.False(t, ok)
	_, ok = TraverseNestedMap(root, []string{"a", "b", "c"})
	assert.False(t, ok)
}

func TestSetNestedMapValueCreatesIntermediateMaps(t *testing.T) {
	root := map[string]interface{}{"a": "scalar"}

	require.True(t, SetNestedMapValue(root, []string{"a", "b", "c"}, 3))
	value, ok := TraverseNestedMap(root, []string{"a", "b", "c"})
	require.True(t, ok)
	assert.Equal(t, 3, value)
	assert.False(t, SetNestedMapValue(root, nil, 1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "مرحب…", truncate("مرحبا بكم", 5))
}
