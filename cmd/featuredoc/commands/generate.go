package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
	"git.home.luguber.info/inful/featuredoc/internal/generator"
	"git.home.luguber.info/inful/featuredoc/internal/metrics"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	RunFlags

	VerifyLinks bool   `name:"verify-links" help:"Check generated pages for broken relative links"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.run(ctx, global, root.Config)
}

func (g *GenerateCmd) run(ctx context.Context, global *Global, configPath string) error {
	r, err := prepareRun(configPath, g.RunFlags)
	if err != nil {
		return err
	}
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	if err := r.generator(reg, global.logger(), g.options(r)...).Generate(ctx); err != nil {
		if classified, ok := ferrors.AsClassified(err); ok {
			return classified.WithContext("run_id", r.rc.RunID)
		}
		return err
	}
	return nil
}

func (g *GenerateCmd) options(r *run) []generator.Option {
	verify := g.VerifyLinks || r.cfg.VerifyLinks
	metricsFile := g.MetricsFile
	if metricsFile == "" {
		metricsFile = r.cfg.MetricsFile
	}

	opts := []generator.Option{generator.WithLinkVerification(verify)}
	if metricsFile != "" {
		opts = append(opts,
			generator.WithRecorder(metrics.NewPrometheusRecorder(nil)),
			generator.WithMetricsFile(metricsFile))
	}
	return opts
}
