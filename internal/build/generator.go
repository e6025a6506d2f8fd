package build

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/git"
	"git.home.luguber.info/inful/rhaidoc/internal/linkverify"
	"git.home.luguber.info/inful/rhaidoc/internal/logfields"
	"git.home.luguber.info/inful/rhaidoc/internal/manifest"
	"git.home.luguber.info/inful/rhaidoc/internal/markdown"
	"git.home.luguber.info/inful/rhaidoc/internal/metrics"
	"git.home.luguber.info/inful/rhaidoc/internal/nav"
	"git.home.luguber.info/inful/rhaidoc/internal/observability"
	"git.home.luguber.info/inful/rhaidoc/internal/render"
	"git.home.luguber.info/inful/rhaidoc/internal/site"
)

// textfileWriter is implemented by recorders that can export to a file.
type textfileWriter interface {
	WriteTextfile(path string) error
}

// Generator builds a documentation site.
type Generator struct {
	opts     Options
	recorder metrics.Recorder
}

// NewGenerator creates a Generator. When opts.MetricsFile is set the default
// recorder is a PrometheusRecorder, otherwise a NoopRecorder.
func NewGenerator(opts Options) *Generator {
	opts = opts.withDefaults()
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if opts.MetricsFile != "" {
		rec = metrics.NewPrometheusRecorder(nil)
	}
	return &Generator{opts: opts, recorder: rec}
}

// WithRecorder replaces the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// Options returns the effective options.
func (g *Generator) Options() Options {
	return g.opts
}

// run holds the per-invocation state shared by the stages.
type run struct {
	graph     *nav.Graph
	assembler *site.Assembler
	renderer  *render.Renderer
	markdown  site.Renderers
	meta      site.Meta
}

// Generate writes the site. The returned report is non-nil even on failure and
// describes the stages that completed.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	start := time.Now()
	ctx = observability.WithBuildID(ctx, start.Format("20060102-150405"))
	ctx = observability.WithSource(ctx, g.opts.SourceDir)

	report := &Report{
		OutputPath:     g.opts.DestDir,
		StartTime:      start,
		StageDurations: make(map[string]time.Duration),
	}

	err := g.generate(ctx, report)

	report.Duration = time.Since(start)
	g.recorder.ObserveBuildDuration(report.Duration)
	if err != nil {
		report.Status = StatusFailed
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	} else {
		report.Status = StatusSuccess
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		g.recorder.SetItems("page", report.Pages)
		g.recorder.SetItems("script", report.Scripts)
		g.recorder.SetItems("function", report.Functions)
		g.recorder.SetItems("file", report.Files)
	}
	g.writeMetrics(ctx)

	if err != nil {
		return report, err
	}
	observability.InfoContext(ctx, "Site generated",
		logfields.Path(g.opts.DestDir),
		slog.Int("pages", report.Pages),
		slog.Int("scripts", report.Scripts),
		slog.Int("functions", report.Functions),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return report, nil
}

func (g *Generator) generate(ctx context.Context, report *Report) error {
	cfg := g.opts.Config
	r := &run{}

	renderer, err := render.New(cfg.Resolve(cfg.Templates))
	if err != nil {
		return err
	}
	r.renderer = renderer
	r.markdown = site.Renderers{
		Pages:     markdown.New(markdown.Options{Sanitize: cfg.Sanitize}),
		Functions: markdown.New(markdown.Options{DefaultLanguage: cfg.CodeLang, Sanitize: cfg.Sanitize}),
	}

	r.meta = site.Meta{
		Title:           cfg.Name,
		CodeTheme:       cfg.CodeTheme,
		GoogleAnalytics: cfg.GoogleAnalytics,
		Links:           cfg.Links,
		Root:            cfg.Root,
	}
	if cfg.ShowRevision {
		r.meta.Revision = g.revision(ctx)
		report.Revision = r.meta.Revision
	}

	if err := os.MkdirAll(g.opts.DestDir, 0o750); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create output directory").
			WithPath(g.opts.DestDir).Fatal().Build()
	}

	stages := []stage{
		{StageDiscover, func(context.Context) error { return g.discover(r) }},
		{StageAssets, func(ctx context.Context) error { return g.writeAssets(ctx, r, report) }},
		{StagePages, func(context.Context) error { return g.renderPages(r, report) }},
		{StageIndex, func(ctx context.Context) error { return g.renderIndex(ctx, r, report) }},
		{StageScripts, func(context.Context) error { return g.renderScripts(r, report) }},
	}
	if g.opts.Manifest {
		stages = append(stages, stage{StageManifest, func(context.Context) error { return g.writeManifest(report) }})
	}
	if g.opts.CheckLinks {
		stages = append(stages, stage{StageLinks, func(ctx context.Context) error { return g.checkLinks(ctx, report) }})
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.runStage(ctx, report, s.name, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) discover(r *run) error {
	cfg := g.opts.Config
	graph, err := nav.NewBuilder(nav.Options{
		PagesDir:        g.opts.PagesDir,
		ScriptsDir:      g.opts.SourceDir,
		ScriptExtension: cfg.Extension,
		Index:           cfg.Index,
		IncludePrivate:  g.opts.includePrivate(),
	}).Build()
	if err != nil {
		return err
	}
	r.graph = graph
	return nil
}

func (g *Generator) renderPages(r *run, report *Report) error {
	for _, entry := range r.graph.Pages {
		page, err := r.assembler.AssemblePage(entry, r.graph.Bodies[entry.SourcePath], r.graph.Pages, r.graph.Scripts)
		if err != nil {
			return err
		}
		if err := g.writePage(r, page, report); err != nil {
			return err
		}
		report.Pages++
	}
	return nil
}

// renderIndex writes a landing page when no input claimed index.html.
func (g *Generator) renderIndex(ctx context.Context, r *run, report *Report) error {
	if r.graph.HasIndex() {
		return nil
	}
	observability.DebugContext(ctx, "No index page found, synthesizing one")
	report.SynthesizedIndex = true
	return g.writePage(r, r.assembler.AssembleIndex(r.graph.Pages, r.graph.Scripts), report)
}

func (g *Generator) renderScripts(r *run, report *Report) error {
	for _, entry := range r.graph.Scripts {
		fns := r.graph.Functions(entry.SourcePath)
		page, err := r.assembler.AssembleScript(entry, fns, r.graph.Scripts, r.graph.Pages)
		if err != nil {
			return err
		}
		if err := g.writePage(r, page, report); err != nil {
			return err
		}
		report.Scripts++
		report.Functions += len(fns)
	}
	return nil
}

func (g *Generator) writePage(r *run, page *site.Page, report *Report) error {
	var buf bytes.Buffer
	if err := r.renderer.RenderPage(&buf, page); err != nil {
		return err
	}
	return g.writeFile(r.assembler.OutputPath(page.Link), buf.Bytes(), report)
}

func (g *Generator) writeManifest(report *Report) error {
	m, err := manifest.Collect(g.opts.DestDir)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to collect manifest").
			WithPath(g.opts.DestDir).Fatal().Build()
	}
	if err := m.Write(g.opts.DestDir); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write manifest").
			WithPath(filepath.Join(g.opts.DestDir, manifest.FileName)).Fatal().Build()
	}
	report.Manifest = m
	return nil
}

func (g *Generator) checkLinks(ctx context.Context, report *Report) error {
	result, err := linkverify.NewVerifier(g.opts.DestDir).Verify()
	if err != nil {
		return err
	}
	report.Links = result
	if result.OK() {
		return nil
	}
	for _, b := range result.Broken {
		observability.WarnContext(ctx, "Broken link",
			logfields.File(b.Page), logfields.Link(b.URL), logfields.Reason(b.Reason))
	}
	return derrors.ValidationError("site contains broken internal links").
		WithPath(g.opts.DestDir).
		WithContext("broken", len(result.Broken)).
		WithContext("first", result.Broken[0].String()).
		Fatal().Build()
}

// revision returns the short HEAD commit of the source directory, or "" when
// it cannot be determined.
func (g *Generator) revision(ctx context.Context) string {
	rev, err := git.HeadRevision(g.opts.SourceDir)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, git.ErrNotRepository) {
			level = slog.LevelDebug
		}
		slog.Log(ctx, level, "Source revision unavailable", logfields.Path(g.opts.SourceDir), logfields.Error(err))
		return ""
	}
	return rev.Short()
}

func (g *Generator) writeMetrics(ctx context.Context) {
	if g.opts.MetricsFile == "" {
		return
	}
	w, ok := g.recorder.(textfileWriter)
	if !ok {
		observability.WarnContext(ctx, "Metrics recorder cannot write a textfile", logfields.Path(g.opts.MetricsFile))
		return
	}
	if err := w.WriteTextfile(g.opts.MetricsFile); err != nil {
		observability.WarnContext(ctx, "Failed to write metrics file", logfields.Path(g.opts.MetricsFile), logfields.Error(err))
	}
}
