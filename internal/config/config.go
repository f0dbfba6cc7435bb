package config

import (
	"errors"
	"os"
	"time"

	"github.com/sukalov/lyricbot/internal/utils/e"
	"gopkg.in/yaml.v3"
)

// EnvPath names the variable that points at the YAML settings file
const EnvPath = "LYRICBOT_CONFIG"

const defaultPath = "config.yaml"

type Config struct {
	Admins []string     `yaml:"admins"`
	View   ViewConfig   `yaml:"view"`
	Cache  CacheConfig  `yaml:"cache"`
	Import ImportConfig `yaml:"import"`
}

// ViewConfig is the display a chat starts with before toggling anything
type ViewConfig struct {
	ShowTags   bool `yaml:"show_tags"`
	LyricsOnly bool `yaml:"lyrics_only"`
}

type CacheConfig struct {
	TTL          time.Duration `yaml:"ttl"`
	MaxCostBytes int64         `yaml:"max_cost_bytes"`
}

type ImportConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		View: ViewConfig{
			ShowTags:   true,
			LyricsOnly: false,
		},
		Cache: CacheConfig{
			TTL:          24 * time.Hour,
			MaxCostBytes: 16 << 20,
		},
		Import: ImportConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// Path returns the settings file location, honoring LYRICBOT_CONFIG
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return defaultPath
}

// Load reads the YAML file at path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = def.Cache.TTL
	}
	if c.Cache.MaxCostBytes <= 0 {
		c.Cache.MaxCostBytes = def.Cache.MaxCostBytes
	}
	if c.Import.Timeout <= 0 {
		c.Import.Timeout = def.Import.Timeout
	}
}

// IsAdmin reports whether username is listed in admins
func (c *Config) IsAdmin(username string) bool {
	for _, admin := range c.Admins {
		if admin == username {
			return true
		}
	}
	return false
}

// Save writes the config as YAML, replacing whatever is at path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return e.Wrap("can't encode config", err)
	}
	return e.WrapIfErr("can't save config to "+path, os.WriteFile(path, data, 0600))
}
