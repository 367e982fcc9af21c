package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/config"
	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
	"git.home.luguber.info/inful/featuredoc/internal/linkverify"
	"git.home.luguber.info/inful/featuredoc/internal/logfields"
	"git.home.luguber.info/inful/featuredoc/internal/metrics"
	"git.home.luguber.info/inful/featuredoc/internal/workunit"
)

// StylesheetName is the static asset copied from the settings directory.
const StylesheetName = "style.css"

// Renderer renders a named template into a file.
type Renderer interface {
	RenderFile(path, name string, data any) error
}

type textfileWriter interface {
	WriteTextfile(path string) error
}

// Generator runs the full documentation pipeline for one class universe.
type Generator struct {
	root     *classdoc.Root
	rc       config.RunContext
	deps     Deps
	engine   Renderer
	logger   *slog.Logger
	recorder metrics.Recorder

	verifyLinks bool
	metricsFile string
	now         func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used by the generator and its builder.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithLinkVerification checks every generated page for broken relative
// links after a successful run.
func WithLinkVerification(enabled bool) Option {
	return func(g *Generator) { g.verifyLinks = enabled }
}

// WithMetricsFile writes the recorder's metrics to path after every run. The
// recorder must support textfile export.
func WithMetricsFile(path string) Option {
	return func(g *Generator) { g.metricsFile = path }
}

// New creates a generator. deps.Logger and deps.Recorder are overridden by
// the generator's own.
func New(root *classdoc.Root, rc config.RunContext, deps Deps, engine Renderer, opts ...Option) *Generator {
	g := &Generator{
		root:     root,
		rc:       rc,
		deps:     deps,
		engine:   engine,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(logfields.RunID(rc.RunID))
	g.deps.Logger = g.logger
	g.deps.Recorder = g.recorder
	return g
}

// WorkUnits builds the ordered work units without rendering anything.
func (g *Generator) WorkUnits() ([]*workunit.Unit, error) {
	return BuildWorkUnits(g.root, g.rc, g.deps)
}

// Generate writes the stylesheet, one page per work unit and the index into
// the destination directory. The context is checked between pages.
func (g *Generator) Generate(ctx context.Context) (err error) {
	start := g.now()
	defer func() { g.finish(start, err) }()

	if err := g.prepareDestination(); err != nil {
		return err
	}

	units, err := g.WorkUnits()
	if err != nil {
		return err
	}
	g.logger.Info("Built work units", logfields.Units(len(units)))

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return ferrors.RuntimeError("documentation run canceled").WithCause(err).Build()
		}
		if err := g.renderUnit(u, units); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return ferrors.RuntimeError("documentation run canceled").WithCause(err).Build()
	}
	if err := g.renderIndex(units); err != nil {
		return err
	}

	if g.verifyLinks {
		if err := g.checkLinks(ctx); err != nil {
			return err
		}
	}

	g.logger.Info("Generated documentation",
		logfields.Path(g.rc.DestinationDir),
		logfields.Units(len(units)),
		logfields.DurationMS(float64(g.now().Sub(start).Milliseconds())))
	return nil
}

func (g *Generator) finish(start time.Time, err error) {
	g.recorder.ObserveRunDuration(g.now().Sub(start))
	switch {
	case err == nil:
		g.recorder.IncRunOutcome(metrics.RunSuccess)
	case ferrors.HasCategory(err, ferrors.CategoryRuntime):
		g.recorder.IncRunOutcome(metrics.RunCanceled)
	default:
		g.recorder.IncRunOutcome(metrics.RunFailed)
	}

	if g.metricsFile == "" {
		return
	}
	w, ok := g.recorder.(textfileWriter)
	if !ok {
		g.logger.Warn("Metrics recorder cannot write a textfile", logfields.Path(g.metricsFile))
		return
	}
	if werr := w.WriteTextfile(g.metricsFile); werr != nil {
		g.logger.Warn("Failed to write metrics", logfields.Path(g.metricsFile), logfields.Error(werr))
	}
}

func (g *Generator) prepareDestination() error {
	dest := g.rc.DestinationDir
	if err := os.MkdirAll(dest, 0o750); err != nil {
		return ferrors.FileSystemError("failed to create destination directory").
			WithCause(err).WithContext("path", dest).Build()
	}
	src := filepath.Join(g.rc.SettingsDir, StylesheetName)
	if err := copyFile(src, filepath.Join(dest, StylesheetName)); err != nil {
		return ferrors.FileSystemError("failed to copy stylesheet").
			WithCause(err).WithContext("path", src).Build()
	}
	return nil
}

func (g *Generator) renderUnit(u *workunit.Unit, all []*workunit.Unit) error {
	tmpl := u.Handler.TemplateName(u.ClassDoc, u.Feature)
	fail := func(err error) error {
		return ferrors.RenderError("failed to create documentation").
			WithCause(err).
			WithContext("class", u.ClassDoc.QualifiedName()).
			WithContext("template", tmpl).
			Build()
	}

	if err := u.Handler.ProcessOne(g.root, u, all); err != nil {
		return fail(err)
	}
	start := g.now()
	if err := g.engine.RenderFile(filepath.Join(g.rc.DestinationDir, u.Filename), tmpl, u.ForTemplate); err != nil {
		return fail(err)
	}
	g.recorder.ObserveRenderDuration(tmpl, g.now().Sub(start))
	g.logger.Debug("Rendered page",
		logfields.Class(u.ClassDoc.QualifiedName()),
		logfields.Template(tmpl),
		logfields.Filename(u.Filename))
	return nil
}

func (g *Generator) renderIndex(units []*workunit.Unit) error {
	start := g.now()
	data := GroupIndexData(units, g.rc)
	if err := g.engine.RenderFile(filepath.Join(g.rc.DestinationDir, IndexFilename), IndexTemplate, data); err != nil {
		return ferrors.RenderError("failed to create documentation").
			WithCause(err).
			WithContext("template", IndexTemplate).
			Build()
	}
	g.recorder.ObserveRenderDuration(IndexTemplate, g.now().Sub(start))
	return nil
}

func (g *Generator) checkLinks(ctx context.Context) error {
	report, err := linkverify.VerifyDir(g.rc.DestinationDir)
	if err != nil {
		return err
	}
	for _, b := range report.Broken {
		g.logger.Warn("Broken link", logfields.Path(b.Page), slog.String("href", b.URL), slog.String("text", b.Text))
	}
	level := slog.LevelInfo
	if !report.OK() {
		level = slog.LevelWarn
	}
	g.logger.Log(ctx, level, "Verified links",
		slog.Int("pages", report.Pages),
		slog.Int("links", report.Links),
		slog.Int("broken", len(report.Broken)))
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(filepath.Clean(dst))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
