package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/raqm/internal/domain"
)

func TestBuildContainerWiresServices(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := BuildContainer(context.Background(), Options{ConfigPath: filepath.Join(home, "config.yaml")})
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.AnalyzeService)
	assert.NotNil(t, c.ContentService)
	assert.NotNil(t, c.DoctorService)
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	resp, err := c.AnalyzeService.Analyze(context.Background(), domain.AnalyzeRequest{Prompt: "FF", Platform: "hexadecimal"})
	require.NoError(t, err)
	assert.Equal(t, "255", resp.Result.Decimal)

	entries, err := c.HistoryStore.Records(context.Background(), domain.HistoryQuery{Kind: domain.HistoryConversion})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "FF", entries[0].Input)

	srv, err := c.NewServer(c.Config.Server, c.Config.Assistant.Mode)
	require.NoError(t, err)
	assert.NotNil(t, srv.Handler())
}

type recordingLogger struct {
	warnings []map[string]interface{}
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Warn(_ string, fields map[string]interface{}) {
	l.warnings = append(l.warnings, fields)
}
func (l *recordingLogger) Error(string, error, map[string]interface{}) {}

func TestResponseDelay(t *testing.T) {
	tests := []struct {
		raw      string
		want     time.Duration
		warnings int
	}{
		{"", 0, 0},
		{"0s", 0, 0},
		{"300ms", 300 * time.Millisecond, 0},
		{"300 ms", 0, 1},
		{"fast", 0, 1},
		{"-1s", 0, 1},
	}
	for _, tt := range tests {
		log := &recordingLogger{}
		assert.Equal(t, tt.want, responseDelay(tt.raw, log), tt.raw)
		require.Len(t, log.warnings, tt.warnings, tt.raw)
		if tt.warnings > 0 {
			assert.Equal(t, tt.raw, log.warnings[0]["value"])
		}
	}
}
