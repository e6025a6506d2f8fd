// Package build runs the site generation pipeline.
//
// A Generator sequences discovery, shared assets, narrative pages, the
// synthesized landing page and script pages, then the optional manifest,
// link check and metrics export. Every CLI path (build, watch) routes
// through Generator.Generate.
package build
