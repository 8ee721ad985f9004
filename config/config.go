package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"chartrender/logger"
	"chartrender/renderer"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string              `yaml:"log_level"`
	Server   Server              `yaml:"server"`
	Bestdori Bestdori            `yaml:"bestdori"`
	Assets   renderer.AssetPaths `yaml:"assets"`
	// Theme is a YAML theme file laid over the default theme.
	Theme string `yaml:"theme"`
	Batch Batch  `yaml:"batch"`
}

type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Bestdori struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// Languages orders the localized song and band names, most preferred first.
	Languages []string `yaml:"languages"`
}

type Batch struct {
	Workers int `yaml:"workers"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: Server{
			Addr:           ":8888",
			AllowedOrigins: []string{"*"},
		},
		Bestdori: Bestdori{
			BaseURL:   "https://bestdori.com",
			Timeout:   15 * time.Second,
			Languages: []string{"ja", "zh-Hans", "zh-Hant", "en", "ko"},
		},
		Batch: Batch{Workers: 4},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if u, err := url.Parse(c.Bestdori.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("bestdori.base_url %q is not an absolute URL", c.Bestdori.BaseURL))
	}
	if c.Bestdori.Timeout <= 0 {
		errs = append(errs, errors.New("bestdori.timeout must be positive"))
	}
	if _, err := c.Bestdori.Tags(); err != nil {
		errs = append(errs, err)
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, errors.New("batch.workers must be at least 1"))
	}
	return errors.Join(errs...)
}

// Tags parses Languages as BCP 47 tags.
func (b Bestdori) Tags() ([]language.Tag, error) {
	if len(b.Languages) == 0 {
		return nil, errors.New("bestdori.languages is empty")
	}
	tags := make([]language.Tag, 0, len(b.Languages))
	for _, l := range b.Languages {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("bestdori.languages: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
