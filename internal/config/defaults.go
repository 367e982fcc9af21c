package config

import "time"

// Defaults applied to fields left empty in featuredoc.yaml.
const (
	DefaultSource   = "."
	DefaultOutput   = "featuredocs"
	DefaultSettings = "settings/helpTemplates"
	DefaultDebounce = 500 * time.Millisecond
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// PathsDefaultApplier fills in source, output and settings directories.
type PathsDefaultApplier struct{}

func (PathsDefaultApplier) Domain() string { return "paths" }

func (PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Settings == "" {
		cfg.Settings = DefaultSettings
	}
	return nil
}

// WatchDefaultApplier handles watch configuration defaults.
type WatchDefaultApplier struct{}

func (WatchDefaultApplier) Domain() string { return "watch" }

func (WatchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
	return nil
}

var defaultAppliers = []DefaultApplier{PathsDefaultApplier{}, WatchDefaultApplier{}}

// ApplyDefaults runs every registered applier in order.
func ApplyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
