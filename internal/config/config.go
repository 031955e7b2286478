package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	UsernameEnv = "SCRAPER_USERNAME"
	PasswordEnv = "SCRAPER_PASSWORD"
)

// Field keys used by the extractor.
const (
	FieldName   = "name"
	FieldPrice  = "price"
	FieldChange = "change"
)

// Config describes one scraping run.
type Config struct {
	URLs       []string `yaml:"urls"`
	OutputPath string   `yaml:"output"`

	Render   RenderConfig   `yaml:"render"`
	Selector SelectorConfig `yaml:"selectors"`
}

// RenderConfig points at the remote rendering service.
type RenderConfig struct {
	Endpoint string `yaml:"endpoint"`
	Source   string `yaml:"source"`
	Mode     string `yaml:"mode"`
	// Credentials are read from the environment only.
	Username string `yaml:"-"`
	Password string `yaml:"-"`
}

// SelectorConfig holds the markup coupling to the quote pages: the element
// enclosing the quote, and the div class carrying each field.
type SelectorConfig struct {
	Region string            `yaml:"region"`
	Fields map[string]string `yaml:"fields"`
}

// Default returns the configuration for the built-in quote list.
func Default() *Config {
	return &Config{
		URLs: []string{
			"https://www.google.com/finance/quote/BNP:EPA?hl=en",
			"https://www.google.com/finance/quote/.DJI:INDEXDJX?hl=en",
			"https://www.google.com/finance/quote/.INX:INDEXSP?hl=en",
		},
		OutputPath: "data.json",
		Render: RenderConfig{
			Endpoint: "https://realtime.oxylabs.io/v1/queries",
			Source:   "google",
			Mode:     "html",
		},
		Selector: SelectorConfig{
			Region: "main",
			Fields: map[string]string{
				FieldName:   "zzDege",
				FieldPrice:  "AHmHk",
				FieldChange: "JwB6zf",
			},
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv fills the rendering credentials from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(UsernameEnv); v != "" {
		c.Render.Username = v
	}
	if v := os.Getenv(PasswordEnv); v != "" {
		c.Render.Password = v
	}
}

// Validate checks the fields a run cannot do without.
func (c *Config) Validate() error {
	if c.OutputPath == "" {
		return errors.New("output path is empty")
	}
	if c.Render.Endpoint == "" {
		return errors.New("render endpoint is empty")
	}
	if c.Selector.Region == "" {
		return errors.New("region selector is empty")
	}
	for _, key := range []string{FieldName, FieldPrice, FieldChange} {
		if c.Selector.Fields[key] == "" {
			return fmt.Errorf("selector for field %q is empty", key)
		}
	}
	return nil
}
