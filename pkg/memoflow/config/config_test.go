package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skawahara/memoflow/pkg/memoflow/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"model": "gpt-4o-mini"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.NotNil(t, cfg.Raw())
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		want       string
	}{
		{"key exists", map[string]any{"model": "gpt-4o"}, "gpt-4o"},
		{"key missing", map[string]any{"other": "x"}, "fallback"},
		{"empty string kept", map[string]any{"model": ""}, ""},
		{"wrong type", map[string]any{"model": 123}, "fallback"},
		{"nil map", nil, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.String("model", "fallback"))
		})
	}
}

func TestIntAndFloat(t *testing.T) {
	cfg := config.New(map[string]any{
		"max_tokens":  float64(1024), // JSON numbers decode as float64
		"retries":     3,
		"temperature": 0.2,
		"fractional":  2.5,
	})

	assert.Equal(t, 1024, cfg.Int("max_tokens", 0))
	assert.Equal(t, 3, cfg.Int("retries", 0))
	assert.Equal(t, 9, cfg.Int("fractional", 9))
	assert.Equal(t, 7, cfg.Int("missing", 7))

	assert.Equal(t, 0.2, cfg.Float("temperature", 1.0))
	assert.Equal(t, 3.0, cfg.Float("retries", 0))
	assert.Equal(t, 0.5, cfg.Float("missing", 0.5))
}

func TestBool(t *testing.T) {
	cfg := config.New(map[string]any{
		"tracing": true,
		"model":   "gpt-4o",
	})

	assert.True(t, cfg.Bool("tracing", false))
	assert.False(t, cfg.Bool("missing", false))
	assert.True(t, cfg.Bool("model", true))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want time.Duration
	}{
		{"string", map[string]any{"timeout": "30s"}, 30 * time.Second},
		{"int seconds", map[string]any{"timeout": 5}, 5 * time.Second},
		{"float seconds", map[string]any{"timeout": 1.5}, 1500 * time.Millisecond},
		{"duration", map[string]any{"timeout": 2 * time.Minute}, 2 * time.Minute},
		{"invalid string", map[string]any{"timeout": "soon"}, 10 * time.Second},
		{"missing", nil, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Duration("timeout", 10*time.Second))
		})
	}
}

func TestStringSlice(t *testing.T) {
	cfg := config.New(map[string]any{
		"agents":  []any{"chat", "splitter"},
		"typed":   []string{"a", "b"},
		"mixed":   []any{"a", 1},
		"not_seq": "chat",
	})

	assert.Equal(t, []string{"chat", "splitter"}, cfg.StringSlice("agents", nil))
	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("typed", nil))
	assert.Equal(t, []string{"x"}, cfg.StringSlice("mixed", []string{"x"}))
	assert.Equal(t, []string{"x"}, cfg.StringSlice("not_seq", []string{"x"}))
	assert.Nil(t, cfg.StringSlice("missing", nil))
}

func TestSub(t *testing.T) {
	cfg := config.New(map[string]any{
		"provider": map[string]any{
			"name":  "openai",
			"model": "gpt-4o-mini",
		},
		"flat": "value",
	})

	provider := cfg.Sub("provider")
	assert.Equal(t, "openai", provider.String("name", ""))
	assert.Equal(t, "gpt-4o-mini", provider.String("model", ""))

	assert.False(t, cfg.Sub("missing").Has("name"))
	assert.False(t, cfg.Sub("flat").Has("name"))
}

func TestHasAndValue(t *testing.T) {
	cfg := config.New(map[string]any{"checkpoint_path": "memoflow.db"})

	assert.True(t, cfg.Has("checkpoint_path"))
	assert.False(t, cfg.Has("missing"))
	assert.Equal(t, "memoflow.db", cfg.Value("checkpoint_path", nil))
	assert.Equal(t, 42, cfg.Value("missing", 42))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "memoflow.yaml")
		content := []byte("provider:\n  name: openai\n  temperature: 0.2\nmax_steps: 25\n")
		require.NoError(t, os.WriteFile(path, content, 0o644))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Int("max_steps", 0))
		assert.Equal(t, "openai", cfg.Sub("provider").String("name", ""))
		assert.Equal(t, 0.2, cfg.Sub("provider").Float("temperature", 0))
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "memoflow.json")
		content := []byte(`{"provider": {"name": "canned"}, "max_steps": 10}`)
		require.NoError(t, os.WriteFile(path, content, 0o644))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Int("max_steps", 0))
		assert.Equal(t, "canned", cfg.Sub("provider").String("name", ""))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "memoflow.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

		_, err := config.FromFile(path)
		assert.ErrorContains(t, err, "unsupported config file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(dir, "nope.yaml"))
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))

		_, err := config.FromFile(path)
		assert.ErrorContains(t, err, "parse yaml")
	})
}
