package commands

import (
	"fmt"

	"git.home.luguber.info/inful/rhaidoc/internal/config"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Dir   string `short:"d" help:"Directory to write the configuration into" default:"." type:"path"`
	Force bool   `help:"Overwrite an existing configuration file"`
}

func (n *NewCmd) Run(g *Global, root *CLI) error {
	path := resolveConfigPath(n.Dir, root.Config)
	if err := config.Init(path, n.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Wrote configuration to %s\n", path)
	return nil
}
