// Package commands implements the featuredoc command line.
package commands

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/config"
	"git.home.luguber.info/inful/featuredoc/internal/feature"
	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
	"git.home.luguber.info/inful/featuredoc/internal/generator"
	"git.home.luguber.info/inful/featuredoc/internal/handler"
	"git.home.luguber.info/inful/featuredoc/internal/logfields"
	"git.home.luguber.info/inful/featuredoc/internal/markdown"
	"git.home.luguber.info/inful/featuredoc/internal/options"
	"git.home.luguber.info/inful/featuredoc/internal/registry"
	"git.home.luguber.info/inful/featuredoc/internal/render"
	"git.home.luguber.info/inful/featuredoc/internal/toolkit"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"featuredoc.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate documentation pages and the index"`
	List     ListCmd     `cmd:"" help:"List the work units a run would generate"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate documentation whenever sources or templates change"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// RunFlags are the flags shared by every command that performs a run. Set
// flags override the configuration file.
type RunFlags struct {
	Source          string `short:"s" help:"Go source tree to document"`
	Output          string `short:"o" help:"Destination directory for generated pages"`
	Settings        string `help:"Directory holding templates and style.css"`
	BuildTimestamp  string `name:"build-timestamp" help:"Build timestamp shown on every page"`
	AbsoluteVersion string `name:"absolute-version" help:"Version string shown on every page"`
	IncludeHidden   bool   `name:"include-hidden" help:"Document hidden features"`
	Test            bool   `name:"test" help:"Only document the fixed test-only allow-list"`
	AllowCollisions bool   `name:"allow-collisions" help:"Keep the first of duplicate group/name pairs instead of failing"`
}

// loadConfig reads path. A missing file at the default location falls back
// to the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == config.DefaultConfigFile && ferrors.HasCategory(err, ferrors.CategoryNotFound) {
		return config.Default(), nil
	}
	return nil, err
}

func (f RunFlags) apply(cfg *config.Config) {
	if f.Source != "" {
		cfg.Source = f.Source
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.Settings != "" {
		cfg.Settings = f.Settings
	}
	if f.AllowCollisions {
		cfg.AllowCollisions = true
	}
}

func (f RunFlags) table() [][]string {
	return options.Table(f.BuildTimestamp, f.AbsoluteVersion, f.IncludeHidden, f.Test)
}

// run is everything one documentation run needs.
type run struct {
	cfg  *config.Config
	root *classdoc.Root
	rc   config.RunContext
}

// prepareRun loads configuration, folds the run options into it and parses
// the source tree.
func prepareRun(configPath string, flags RunFlags) (*run, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)

	table := flags.table()
	if err := options.Apply(cfg, table); err != nil {
		return nil, ferrors.ValidationError("invalid run option").WithCause(err).Build()
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	root, err := parseSource(cfg.Source)
	if err != nil {
		return nil, err
	}
	root.WithOptions(table)

	return &run{cfg: cfg, root: root, rc: config.NewRunContext(cfg, time.Now())}, nil
}

func parseSource(dir string) (*classdoc.Root, error) {
	root, err := classdoc.ParseDir(dir)
	if err != nil {
		return nil, ferrors.SourceError("failed to parse source tree").WithCause(err).WithContext("path", dir).Build()
	}
	return root, nil
}

// newRegistry returns the registry of every type this binary can document.
func newRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if err := toolkit.Register(reg); err != nil {
		return nil, ferrors.InternalError("failed to register toolkit types").WithCause(err).Build()
	}
	return reg, nil
}

func (r *run) deps(reg *registry.Registry, logger *slog.Logger) generator.Deps {
	return generator.Deps{
		Resolver:        reg,
		Classifier:      feature.NewClassifier(toolkit.DefaultRules()...),
		Handlers:        handler.NewFactory(r.rc, markdown.NewRenderer(), logger),
		Keepers:         toolkit.TestOnlyKeepers(),
		AllowCollisions: r.cfg.AllowCollisions,
	}
}

func (r *run) generator(reg *registry.Registry, logger *slog.Logger, opts ...generator.Option) *generator.Generator {
	logger.Debug("Prepared run",
		logfields.RunID(r.rc.RunID),
		logfields.Path(r.cfg.Source),
		slog.Bool("test_only", r.rc.TestOnly),
		slog.Bool("show_hidden", r.rc.ShowHidden))
	opts = append([]generator.Option{generator.WithLogger(logger)}, opts...)
	return generator.New(r.root, r.rc, r.deps(reg, logger), render.NewEngine(r.rc.SettingsDir), opts...)
}
