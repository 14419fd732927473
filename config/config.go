package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/poiesic/poetica/paginate"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

const (
	defaultConfigPath = "~/.config/poetica/config.toml"
	defaultDBPath     = "~/.local/share/poetica/db"
	defaultDataset    = "poems_minimal.json"
	defaultListen     = "127.0.0.1:8080"
)

// Config holds poetica settings.
type Config struct {
	// DBPath is the directory of the catalog store.
	DBPath string

	// Dataset is the poems_minimal.json document to import.
	Dataset string

	// Lemmas and Morphology are the lexicon and compact morphology documents.
	// Both are optional but must be set together.
	Lemmas     string
	Morphology string

	// PageSize is the initial page size of catalog listings.
	PageSize paginate.PageSize

	// Listen is the address the dataset endpoint binds to.
	Listen string

	// AllowedOrigins lists the CORS origins of browser front ends.
	AllowedOrigins []string

	// PoolSize is the import worker count. 0 picks a default from the CPU count.
	PoolSize int
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithDBPath sets the catalog store directory.
func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = mustExpand(path)
	}
}

// WithDataset sets the poems document.
func WithDataset(path string) Option {
	return func(c *Config) {
		c.Dataset = mustExpand(path)
	}
}

// WithMorphology sets the lexicon and compact morphology documents.
func WithMorphology(lemmas, compact string) Option {
	return func(c *Config) {
		c.Lemmas = mustExpand(lemmas)
		c.Morphology = mustExpand(compact)
	}
}

// WithPageSize sets the initial page size.
func WithPageSize(size paginate.PageSize) Option {
	return func(c *Config) {
		c.PageSize = size
	}
}

// WithListen sets the endpoint address.
func WithListen(addr string) Option {
	return func(c *Config) {
		c.Listen = strings.TrimSpace(addr)
	}
}

// WithAllowedOrigins sets the CORS origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(c *Config) {
		c.AllowedOrigins = trimAll(origins)
	}
}

// WithPoolSize sets the import worker count.
func WithPoolSize(size int) Option {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		DBPath:         mustExpand(defaultDBPath),
		Dataset:        defaultDataset,
		PageSize:       paginate.Default,
		Listen:         defaultListen,
		AllowedOrigins: []string{"*"},
	}
}

// Apply applies opts to c and returns c.
func (c *Config) Apply(opts ...Option) *Config {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rawConfig struct {
	DBPath         string   `toml:"db_path"`
	Dataset        string   `toml:"dataset"`
	Lemmas         string   `toml:"lemmas"`
	Morphology     string   `toml:"morphology"`
	PageSize       any      `toml:"page_size"`
	Listen         string   `toml:"listen"`
	AllowedOrigins []string `toml:"allowed_origins"`
	PoolSize       int      `toml:"pool_size"`
}

// Load locates and parses the config file, falling back to defaults when missing.
// An empty path selects ~/.config/poetica/config.toml.
func Load(path string) (*Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", resolved, err)
	}

	if v := strings.TrimSpace(raw.DBPath); v != "" {
		cfg.DBPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Dataset); v != "" {
		cfg.Dataset = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Lemmas); v != "" {
		cfg.Lemmas = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Morphology); v != "" {
		cfg.Morphology = mustExpand(v)
	}
	if raw.PageSize != nil {
		size, err := paginate.ParsePageSize(fmt.Sprint(raw.PageSize))
		if err != nil {
			return nil, fmt.Errorf("parse config %s: page_size: %w", resolved, err)
		}
		cfg.PageSize = size
	}
	if v := strings.TrimSpace(raw.Listen); v != "" {
		cfg.Listen = v
	}
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = trimAll(raw.AllowedOrigins)
	}
	cfg.PoolSize = raw.PoolSize

	return cfg, nil
}

// HasMorphology reports whether both morphology documents are configured.
func (c *Config) HasMorphology() bool {
	return c.Lemmas != "" && c.Morphology != ""
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if (c.Lemmas == "") != (c.Morphology == "") {
		return fmt.Errorf("%w: lemmas and morphology must be set together", ErrInvalidConfig)
	}
	if c.PageSize < paginate.All {
		return fmt.Errorf("%w: page_size must not be negative", ErrInvalidConfig)
	}
	if c.Listen == "" {
		return fmt.Errorf("%w: listen is required", ErrInvalidConfig)
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: pool_size must not be negative", ErrInvalidConfig)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Abs(expanded)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
