package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/rhaidoc/internal/build"
	"git.home.luguber.info/inful/rhaidoc/internal/logfields"
	"git.home.luguber.info/inful/rhaidoc/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SourceFlags `embed:""`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The configuration is reloaded on every rebuild so edits to it apply.
	rebuild := func(ctx context.Context) error {
		cfg, err := w.LoadConfig(root.Config)
		if err != nil {
			return err
		}
		b := BuildCmd{SourceFlags: w.SourceFlags}
		_, err = build.NewGenerator(b.options(cfg)).Generate(ctx)
		return err
	}

	if err := rebuild(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	roots := []string{w.Dir}
	if w.Pages != "" {
		roots = append(roots, w.Pages)
	}
	slog.Info("Watching for changes", logfields.Path(w.Dir))
	return watch.New(watch.Options{Roots: roots, Ignore: []string{w.Dest}}, rebuild).Run(ctx)
}
