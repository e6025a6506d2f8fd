package commands

import (
	"errors"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/inspect"
	"git.home.luguber.info/inful/rhaidoc/internal/script"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Script string `arg:"" help:"Script to document" type:"existingfile"`
	Dir    string `short:"d" help:"Source directory holding the configuration" default:"." type:"path"`
	All    bool   `short:"a" help:"Include private functions"`
	Style  string `help:"Terminal style (auto, dark, light, notty, ...)" default:"auto"`
	Width  int    `help:"Word-wrap column" default:"100"`
}

func (i *InspectCmd) Run(g *Global, root *CLI) error {
	cfg, err := SourceFlags{Dir: i.Dir}.LoadConfig(root.Config)
	if err != nil {
		return err
	}
	file, err := script.Parse(i.Script)
	if err != nil {
		category := derrors.CategoryFileSystem
		var perr *script.ParseError
		if errors.As(err, &perr) {
			category = derrors.CategoryParse
		}
		return derrors.WrapError(err, category, "cannot inspect script").WithPath(i.Script).Build()
	}

	title := strings.TrimSuffix(filepath.Base(i.Script), filepath.Ext(i.Script))
	md := inspect.Markdown(file, title, i.All || !cfg.SkipsPrivate())
	return inspect.Render(g.Out, md, inspect.Options{Style: i.Style, Width: i.Width})
}
