package config

import (
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
)

// ValidateConfig checks the directories a run depends on do not overlap in
// ways that would make the generator overwrite its own inputs.
func ValidateConfig(cfg *Config) error {
	out, err := filepath.Abs(cfg.Output)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid output directory").Build()
	}
	settings, err := filepath.Abs(cfg.Settings)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid settings directory").Build()
	}
	if within(out, settings) || within(settings, out) {
		return ferrors.ConfigError("output and settings directories must not overlap").
			WithContext("output", cfg.Output).
			WithContext("settings", cfg.Settings).
			Build()
	}
	if cfg.Watch.Debounce < 0 {
		return ferrors.ConfigError("watch debounce must not be negative").Build()
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
