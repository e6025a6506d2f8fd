package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/rhaidoc/internal/logfields"
	"git.home.luguber.info/inful/rhaidoc/internal/metrics"
	"git.home.luguber.info/inful/rhaidoc/internal/observability"
)

// Stage names, used for logs and metrics labels.
const (
	StageDiscover = "discover"
	StageAssets   = "assets"
	StagePages    = "pages"
	StageIndex    = "index"
	StageScripts  = "scripts"
	StageManifest = "manifest"
	StageLinks    = "links"
)

type stageFunc func(ctx context.Context) error

type stage struct {
	name string
	fn   stageFunc
}

// runStage executes fn with the stage recorded on the context, the report and
// the metrics recorder.
func (g *Generator) runStage(ctx context.Context, report *Report, name string, fn stageFunc) error {
	ctx = observability.WithStage(ctx, name)
	start := time.Now()

	err := fn(ctx)

	d := time.Since(start)
	g.recorder.ObserveStageDuration(name, d)
	if err != nil {
		g.recorder.IncStageResult(name, metrics.ResultFatal)
		return err
	}
	g.recorder.IncStageResult(name, metrics.ResultSuccess)
	report.StageDurations[name] = d
	observability.DebugContext(ctx, "Stage complete", logfields.DurationMS(float64(d.Microseconds())/1000))
	return nil
}
