package build

import (
	"time"

	"git.home.luguber.info/inful/rhaidoc/internal/linkverify"
	"git.home.luguber.info/inful/rhaidoc/internal/manifest"
)

// Status is the outcome of a build.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Report summarizes one Generate run.
type Report struct {
	Status     Status
	OutputPath string
	StartTime  time.Time
	Duration   time.Duration

	Pages     int
	Scripts   int
	Functions int
	// Files counts every file written, assets included.
	Files int
	// SynthesizedIndex is set when no input rendered to index.html.
	SynthesizedIndex bool

	// Revision is the short source commit stamped on pages, if enabled.
	Revision string

	// StageDurations holds the wall time of each completed stage.
	StageDurations map[string]time.Duration

	Manifest *manifest.SiteManifest
	Links    *linkverify.Report
}
