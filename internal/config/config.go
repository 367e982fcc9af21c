package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = "featuredoc.yaml"

// Config represents the application configuration
type Config struct {
	Source          string      `yaml:"source"`   // Go source tree scanned for class docs
	Output          string      `yaml:"output"`   // Destination directory for generated pages
	Settings        string      `yaml:"settings"` // Template and style.css directory
	IncludeHidden   bool        `yaml:"include_hidden"`
	TestOnly        bool        `yaml:"test_only"`
	BuildTimestamp  string      `yaml:"build_timestamp,omitempty"`
	AbsoluteVersion string      `yaml:"absolute_version,omitempty"`
	AllowCollisions bool        `yaml:"allow_collisions"`
	VerifyLinks     bool        `yaml:"verify_links"`
	MetricsFile     string      `yaml:"metrics_file,omitempty"`
	Watch           WatchConfig `yaml:"watch"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, ferrors.NewError(ferrors.CategoryNotFound, "configuration file not found").
			WithContext("path", configPath).Fatal().Build()
	}

	// #nosec G304 -- configuration path is chosen by the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Fatal().Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", configPath).Fatal().Build()
	}

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied, used when no
// configuration file exists.
func Default() *Config {
	cfg := &Config{}
	_ = ApplyDefaults(cfg)
	return cfg
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Default()
	example.VerifyLinks = true
	example.MetricsFile = "featuredocs.prom"

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}

	// #nosec G306 -- configuration file is meant to be shared
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
