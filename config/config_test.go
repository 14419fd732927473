package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/poiesic/poetica/paginate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)

	wantDB, err := expandPath(defaultDBPath)
	require.NoError(t, err)
	assert.Equal(t, wantDB, cfg.DBPath)
	assert.Equal(t, defaultDataset, cfg.Dataset)
	assert.Equal(t, paginate.Default, cfg.PageSize)
	assert.Equal(t, defaultListen, cfg.Listen)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.HasMorphology())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	path := writeConfig(t, `
db_path = "  ~/.poetica/db  "
dataset = "/srv/poetica/poems_minimal.json"
lemmas = "/srv/poetica/lemmas.json"
morphology = "/srv/poetica/poems_morphology_compact.json"
page_size = 20
listen = " :9090 "
allowed_origins = [" https://poetica.example ", ""]
pool_size = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(cfg.DBPath, home), "DBPath %q should be under %q", cfg.DBPath, home)
	assert.Equal(t, "/srv/poetica/poems_minimal.json", cfg.Dataset)
	assert.True(t, cfg.HasMorphology())
	assert.Equal(t, paginate.PageSize(20), cfg.PageSize)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, []string{"https://poetica.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.PoolSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PageSizeAll(t *testing.T) {
	for _, value := range []string{`"all"`, `"все"`} {
		cfg, err := Load(writeConfig(t, "page_size = "+value))
		require.NoError(t, err)
		assert.Equal(t, paginate.All, cfg.PageSize)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "db_path = "))
		assert.Error(t, err)
	})

	t.Run("invalid page size", func(t *testing.T) {
		_, err := Load(writeConfig(t, "page_size = 0"))
		assert.ErrorIs(t, err, paginate.ErrInvalidPageSize)
	})
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig().Apply(
		WithDBPath("/tmp/poetica"),
		WithDataset("/data/poems.json"),
		WithMorphology("/data/lemmas.json", "/data/compact.json"),
		WithPageSize(paginate.All),
		WithListen(" :8000 "),
		WithAllowedOrigins("http://localhost:5173", " "),
		WithPoolSize(8),
	)

	assert.Equal(t, "/tmp/poetica", cfg.DBPath)
	assert.Equal(t, "/data/poems.json", cfg.Dataset)
	assert.Equal(t, "/data/lemmas.json", cfg.Lemmas)
	assert.Equal(t, "/data/compact.json", cfg.Morphology)
	assert.Equal(t, paginate.All, cfg.PageSize)
	assert.Equal(t, ":8000", cfg.Listen)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 8, cfg.PoolSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"missing db path", func(c *Config) { c.DBPath = "" }},
		{"lemmas without morphology", func(c *Config) { c.Lemmas = "/data/lemmas.json" }},
		{"negative page size", WithPageSize(-1)},
		{"missing listen", WithListen("")},
		{"negative pool size", WithPoolSize(-2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultConfig().Apply(tt.opt).Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
