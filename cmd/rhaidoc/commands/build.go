package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/rhaidoc/internal/build"
	"git.home.luguber.info/inful/rhaidoc/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SourceFlags `embed:""`

	Manifest    bool   `help:"Write manifest.json with output fingerprints"`
	CheckLinks  bool   `name:"check-links" help:"Fail when generated pages contain broken internal links"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus text-format build metrics to this file" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := b.LoadConfig(root.Config)
	if err != nil {
		return err
	}
	report, err := build.NewGenerator(b.options(cfg)).Generate(ctx)
	if err != nil {
		return err
	}
	if !root.Quiet {
		_, _ = fmt.Fprintf(g.Out, "Generated %d pages and %d scripts (%d functions) in %s\n",
			report.Pages, report.Scripts, report.Functions, report.OutputPath)
	}
	return nil
}

func (b *BuildCmd) options(cfg *config.Config) build.Options {
	return build.Options{
		Config:         cfg,
		SourceDir:      b.Dir,
		PagesDir:       b.Pages,
		DestDir:        b.Dest,
		IncludePrivate: b.All,
		Manifest:       b.Manifest,
		CheckLinks:     b.CheckLinks,
		MetricsFile:    b.MetricsFile,
	}
}
