package build

import (
	"path/filepath"

	"git.home.luguber.info/inful/rhaidoc/internal/config"
)

// DefaultPagesDir is the pages directory below the source directory.
const DefaultPagesDir = "pages"

// Options configures a Generator.
type Options struct {
	// Config is the loaded site configuration. Defaults are used when nil.
	Config *config.Config

	// SourceDir is the scripts root.
	SourceDir string
	// PagesDir holds the narrative pages; defaults to SourceDir/pages.
	PagesDir string
	// DestDir receives the generated site.
	DestDir string

	// IncludePrivate documents private functions regardless of skip_private.
	IncludePrivate bool

	// Manifest writes manifest.json after rendering.
	Manifest bool
	// CheckLinks verifies internal links in the generated HTML.
	CheckLinks bool
	// MetricsFile receives build metrics in the Prometheus text format.
	MetricsFile string
}

func (o Options) withDefaults() Options {
	if o.SourceDir == "" {
		o.SourceDir = "."
	}
	if o.Config == nil {
		o.Config = config.Default()
		o.Config.SetBaseDir(o.SourceDir)
	}
	if o.PagesDir == "" {
		o.PagesDir = filepath.Join(o.SourceDir, DefaultPagesDir)
	}
	if o.DestDir == "" {
		o.DestDir = "dist"
	}
	return o
}

func (o Options) includePrivate() bool {
	return o.IncludePrivate || !o.Config.SkipsPrivate()
}
