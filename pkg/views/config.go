package views

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config carries the deployment-wide defaults that the original ambient
// settings dictionary held. It is passed explicitly at construction; there
// is no global lookup.
type Config struct {
	// DefaultBaseTemplate is exposed to templates as base_template so the
	// generic views can extend a site-wide layout.
	DefaultBaseTemplate string `yaml:"default_base_template"`
	// DefaultTemplateNamePattern, when set, replaces the conventional
	// template search list. Recognized placeholders: {app_label}, {model},
	// {view}.
	DefaultTemplateNamePattern string `yaml:"default_template_name_pattern"`
	// LoginURL receives unauthenticated requests, with the original URL in
	// the "next" query parameter.
	LoginURL string `yaml:"login_url"`
	// PageSize enables browse pagination when positive.
	PageSize int `yaml:"page_size"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		DefaultBaseTemplate: "base.html",
		LoginURL:            "/accounts/login/",
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.DefaultBaseTemplate == "" {
		c.DefaultBaseTemplate = defaults.DefaultBaseTemplate
	}
	if c.LoginURL == "" {
		c.LoginURL = defaults.LoginURL
	}
	return c
}

// LoadConfig reads a YAML configuration, applying defaults for anything
// unset.
func LoadConfig(r io.Reader) (Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("views: read config: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig parses YAML configuration bytes.
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("views: parse config: %w", err)
	}
	return cfg.withDefaults(), nil
}
