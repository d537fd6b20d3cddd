package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is read when no profile URL is given on the command line
	DefaultConfigFile = "config.json"

	// DefaultOutputFile is the rendered page written in flag mode
	DefaultOutputFile = "posts.html"

	// DefaultTemplateFile is the template bundled with the repository
	DefaultTemplateFile = "templates/diary.html"

	// DefaultTimezone is used when no display timezone is configured
	DefaultTimezone = "UTC"
)

// Source records which mechanism produced the domain settings of a Config
type Source string

const (
	SourceFile  Source = "file"
	SourceFlags Source = "flags"
)

// Config holds all configuration options for a diary export run
type Config struct {
	// Profile to export, e.g. https://mastodon.social/@alice
	MastodonURL string `yaml:"mastodon_url" json:"mastodon_url"`

	// Rendered page
	OutputFile string `yaml:"output_file" json:"output_file"`

	// HTML template containing the {{posts}} placeholder
	TemplateFile string `yaml:"template_file" json:"template_file"`

	// IANA name of the display timezone
	Timezone string `yaml:"timezone" json:"timezone"`

	// HTTP client settings
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	source Source
}

// HTTPConfig holds settings for the Mastodon API client
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
	// BaseURL overrides https://{host} for API requests, e.g. for a local proxy
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// UnmarshalJSON reads timeout as a duration string ("30s") or a number of seconds
func (h *HTTPConfig) UnmarshalJSON(data []byte) error {
	type plain HTTPConfig
	aux := struct {
		*plain
		Timeout json.RawMessage `json:"timeout"`
	}{plain: (*plain)(h)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Timeout) == 0 || string(aux.Timeout) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(aux.Timeout, &s); err == nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid http timeout %q: %w", s, err)
		}
		h.Timeout = d
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(aux.Timeout, &seconds); err != nil {
		return fmt.Errorf("http timeout must be a duration string or a number of seconds: %w", err)
	}
	h.Timeout = time.Duration(seconds * float64(time.Second))
	return nil
}

// MarshalJSON writes timeout as a duration string
func (h HTTPConfig) MarshalJSON() ([]byte, error) {
	type plain HTTPConfig
	return json.Marshal(struct {
		plain
		Timeout string `json:"timeout"`
	}{plain: plain(h), Timeout: h.Timeout.String()})
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Flags carries the command line values for flag mode
type Flags struct {
	URL      string
	Output   string
	Template string
	Timezone string
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OutputFile:   DefaultOutputFile,
		TemplateFile: DefaultTemplateFile,
		Timezone:     DefaultTimezone,
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "mastodiary/1.0 (+https://github.com/mastodiary/mastodiary)",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Source reports whether the domain settings came from a file or from flags
func (c *Config) Source() Source {
	return c.source
}

// isYAML reports whether path names a YAML file; everything else is read as JSON
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadFromFile loads configuration from a JSON file, or a YAML file for .yaml/.yml paths
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	unmarshal := json.Unmarshal
	if isYAML(path) {
		unmarshal = yaml.Unmarshal
	}
	if err := unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.source = SourceFile
	return nil
}

// ApplyFlags sets the domain settings from command line values
func (c *Config) ApplyFlags(flags Flags) {
	c.MastodonURL = strings.TrimSpace(flags.URL)
	if flags.Output != "" {
		c.OutputFile = flags.Output
	}
	if flags.Template != "" {
		c.TemplateFile = flags.Template
	}
	if flags.Timezone != "" {
		c.Timezone = flags.Timezone
	}
	c.source = SourceFlags
}

// LoadFromEnv overrides the ambient settings from environment variables.
// Domain settings (profile, output, template, timezone) are never read from the environment.
func (c *Config) LoadFromEnv() error {
	if level := os.Getenv("MASTODIARY_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("MASTODIARY_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if userAgent := os.Getenv("MASTODIARY_USER_AGENT"); userAgent != "" {
		c.HTTP.UserAgent = userAgent
	}
	if baseURL := os.Getenv("MASTODIARY_API_BASE_URL"); baseURL != "" {
		c.HTTP.BaseURL = baseURL
	}
	if timeout := os.Getenv("MASTODIARY_HTTP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid MASTODIARY_HTTP_TIMEOUT %q: %w", timeout, err)
		}
		c.HTTP.Timeout = d
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.MastodonURL) == "" {
		errs = append(errs, errors.New("mastodon_url is required"))
	}
	if c.OutputFile == "" {
		errs = append(errs, errors.New("output_file is required"))
	}
	if c.TemplateFile == "" {
		errs = append(errs, errors.New("template_file is required"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// Save saves the configuration to a file, as YAML for .yaml/.yml paths and JSON otherwise
func (c *Config) Save(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFiles loads .env files from the working directory and the home directory.
// Variables already present in the environment take precedence.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".mastodiary.env"))
	}
}

// Resolve builds the run configuration from exactly one mechanism:
// a profile URL in flags selects flag mode, otherwise the config file is read.
// Ambient settings (logging, http) are layered from the environment in both modes.
func Resolve(configPath string, flags Flags) (*Config, error) {
	LoadEnvFiles()

	cfg := DefaultConfig()

	if strings.TrimSpace(flags.URL) != "" {
		cfg.ApplyFlags(flags)
	} else {
		if configPath == "" {
			configPath = DefaultConfigFile
		}
		if err := cfg.LoadFromFile(configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
