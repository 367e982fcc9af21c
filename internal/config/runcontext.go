package config

import (
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/featuredoc/internal/version"
)

// RunContext is the read-only state shared by every component during one
// generation run. It is built once before any class is scanned.
type RunContext struct {
	ShowHidden      bool
	TestOnly        bool
	BuildTimestamp  string
	AbsoluteVersion string
	DestinationDir  string
	SettingsDir     string
	RunID           string
}

// NewRunContext derives the run context from cfg. Missing stamps fall back to
// the binary's build metadata, the source repository HEAD, and now.
func NewRunContext(cfg *Config, now time.Time) RunContext {
	rc := RunContext{
		ShowHidden:      cfg.IncludeHidden,
		TestOnly:        cfg.TestOnly,
		BuildTimestamp:  cfg.BuildTimestamp,
		AbsoluteVersion: cfg.AbsoluteVersion,
		DestinationDir:  cfg.Output,
		SettingsDir:     cfg.Settings,
		RunID:           uuid.NewString(),
	}
	if rc.BuildTimestamp == "" {
		rc.BuildTimestamp = version.DefaultTimestamp(now)
	}
	if rc.AbsoluteVersion == "" {
		rc.AbsoluteVersion = version.DefaultAbsoluteVersion(cfg.Source)
	}
	return rc
}
