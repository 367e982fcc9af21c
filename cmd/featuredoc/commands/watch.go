package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/featuredoc/internal/config"
	"git.home.luguber.info/inful/featuredoc/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	GenerateCmd

	Debounce time.Duration `help:"Quiet period before a change triggers a run (default from config)"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := prepareRun(root.Config, w.RunFlags)
	if err != nil {
		return err
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = r.cfg.Watch.Debounce
	}
	if debounce <= 0 {
		debounce = config.DefaultDebounce
	}

	logger := global.logger()
	watcher, err := watch.New([]string{r.cfg.Source, r.cfg.Settings}, debounce, func(ctx context.Context) error {
		// each run reparses the source tree and gets a fresh run id
		return w.run(ctx, global, root.Config)
	}, logger)
	if err != nil {
		return err
	}
	watcher.Ignore(r.cfg.Output)
	return watcher.Run(ctx)
}
