package build

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/logfields"
	"git.home.luguber.info/inful/rhaidoc/internal/observability"
	"git.home.luguber.info/inful/rhaidoc/internal/render"
	"git.home.luguber.info/inful/rhaidoc/internal/site"
)

// StylesFile is the generated stylesheet.
const StylesFile = "styles.css"

// iconBase is the file name, without extension, of a configured icon.
const iconBase = "logo"

// writeAssets writes the stylesheet, the icon and the custom stylesheet, then
// prepares the assembler with their output names.
func (g *Generator) writeAssets(ctx context.Context, r *run, report *Report) error {
	cfg := g.opts.Config

	var styles bytes.Buffer
	if err := r.renderer.RenderStyles(&styles, cfg.AccentColor()); err != nil {
		return err
	}
	if err := g.writeFile(g.dest(StylesFile), styles.Bytes(), report); err != nil {
		return err
	}

	icon, err := g.writeIcon(report)
	if err != nil {
		return err
	}
	r.meta.Icon = icon

	stylesheet, err := g.copyStylesheet(ctx, report)
	if err != nil {
		return err
	}
	r.meta.Stylesheet = stylesheet

	r.assembler = site.NewAssembler(r.meta, r.markdown, g.opts.DestDir)
	return nil
}

// writeIcon copies the configured icon as logo.<ext>, or writes the default.
func (g *Generator) writeIcon(report *Report) (string, error) {
	cfg := g.opts.Config
	if cfg.Icon == "" {
		return render.DefaultIcon, g.writeFile(g.dest(render.DefaultIcon), render.DefaultIconData(), report)
	}

	src := cfg.Resolve(cfg.Icon)
	ext := filepath.Ext(src)
	if ext == "" || ext == "." {
		return "", derrors.ValidationError("icon must have an extension").WithPath(src).Fatal().Build()
	}
	// #nosec G304 - icon path comes from the site configuration
	data, err := os.ReadFile(src)
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryFileSystem, "cannot load icon").
			WithPath(src).Fatal().Build()
	}
	name := iconBase + ext
	return name, g.writeFile(g.dest(name), data, report)
}

// copyStylesheet copies the custom stylesheet next to styles.css. A missing
// file is skipped with a warning.
func (g *Generator) copyStylesheet(ctx context.Context, report *Report) (string, error) {
	cfg := g.opts.Config
	if cfg.Stylesheet == "" {
		return "", nil
	}

	src := cfg.Resolve(cfg.Stylesheet)
	// #nosec G304 - stylesheet path comes from the site configuration
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		observability.WarnContext(ctx, "Custom stylesheet not found, skipping", logfields.Path(src))
		return "", nil
	}
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryFileSystem, "cannot load stylesheet").
			WithPath(src).Fatal().Build()
	}

	name := filepath.Base(src)
	if name == StylesFile {
		return "", derrors.ValidationError("custom stylesheet must not be named " + StylesFile).
			WithPath(src).Fatal().Build()
	}
	observability.DebugContext(ctx, "Custom stylesheet", logfields.Path(src))
	return name, g.writeFile(g.dest(name), data, report)
}

func (g *Generator) dest(name string) string {
	return filepath.Join(g.opts.DestDir, name)
}

// writeFile writes data to path, creating parent directories on demand.
func (g *Generator) writeFile(path string, data []byte, report *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create directory").
			WithPath(filepath.Dir(path)).Fatal().Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write file").
			WithPath(path).Fatal().Build()
	}
	report.Files++
	return nil
}
