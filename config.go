package marq

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default delimiters for marked passages.
const (
	DefaultDelimiterLeft  = "<<"
	DefaultDelimiterRight = ">>"
)

// Config holds the delimiter pair and the search engine list for a session.
// Patterns are always re-derived from the current values via Pattern(), so a
// delimiter change can never leave a stale compiled pattern behind.
type Config struct {
	DelimiterLeft  string         `yaml:"delimiter_left"`
	DelimiterRight string         `yaml:"delimiter_right"`
	Engines        []EngineConfig `yaml:"engines"`
}

// EngineConfig describes one search engine in the configuration file. The
// URL field is a format string with a single %s placeholder for the
// percent-encoded query.
type EngineConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DefaultConfig returns a Config with the default delimiters and no custom
// engines (the default engine registry applies).
func DefaultConfig() Config {
	return Config{
		DelimiterLeft:  DefaultDelimiterLeft,
		DelimiterRight: DefaultDelimiterRight,
	}
}

// Validate checks that both delimiters are non-empty.
func (c Config) Validate() error {
	if c.DelimiterLeft == "" {
		return &ConfigurationError{Field: "delimiter_left", Reason: "must not be empty"}
	}
	if c.DelimiterRight == "" {
		return &ConfigurationError{Field: "delimiter_right", Reason: "must not be empty"}
	}
	return nil
}

// Pattern compiles the passage pattern for the current delimiters.
func (c Config) Pattern() (*Pattern, error) {
	return CompilePattern(c.DelimiterLeft, c.DelimiterRight)
}

// Registry builds the engine registry from the configured engines, falling
// back to the default registry when none are configured. The configured
// order is the chooser display order.
func (c Config) Registry() *Registry {
	if len(c.Engines) == 0 {
		return DefaultRegistry()
	}

	r := NewRegistry()
	for _, e := range c.Engines {
		r.Add(EngineFromTemplate(e.Name, e.URL))
	}
	return r
}

// LoadConfig reads a YAML configuration file, applying defaults for any
// fields the file leaves unset. A missing file is not an error; the
// defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.DelimiterLeft == "" {
		cfg.DelimiterLeft = DefaultDelimiterLeft
	}
	if cfg.DelimiterRight == "" {
		cfg.DelimiterRight = DefaultDelimiterRight
	}

	return cfg, cfg.Validate()
}
