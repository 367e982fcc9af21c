// Package handler produces the per-unit handlers that turn a documented class
// into template data.
package handler

import (
	"log/slog"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/config"
	"git.home.luguber.info/inful/featuredoc/internal/feature"
	"git.home.luguber.info/inful/featuredoc/internal/logfields"
	"git.home.luguber.info/inful/featuredoc/internal/markdown"
	"git.home.luguber.info/inful/featuredoc/internal/workunit"
)

// Factory creates one handler per documentable class, bound to the run.
type Factory struct {
	rc     config.RunContext
	md     *markdown.Renderer
	logger *slog.Logger
}

// NewFactory returns a factory bound to rc. A nil logger uses slog.Default.
func NewFactory(rc config.RunContext, md *markdown.Renderer, logger *slog.Logger) *Factory {
	if md == nil {
		md = markdown.NewRenderer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{rc: rc, md: md, logger: logger}
}

// HandlerFor returns the handler for doc, or nil when the feature is disabled.
func (f *Factory) HandlerFor(doc classdoc.ClassDoc, d feature.Descriptor) workunit.Handler {
	if !d.Enabled {
		f.logger.Info("Skipping disabled documentation",
			logfields.Class(doc.QualifiedName()),
			logfields.Group(d.GroupName))
		return nil
	}
	return NewGenericHandler(f.rc, f.md)
}
