// Package commands implements the rhaidoc command line.
package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rhaidoc/internal/config"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing output.
	Out io.Writer
}

// CLI is the root command with the global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file, relative to --dir" default:"${config_file}"`
	Verbose bool             `short:"v" help:"Enable verbose logging" xor:"verbosity"`
	Quiet   bool             `short:"q" help:"Only log errors" xor:"verbosity"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Generate the documentation site"`
	New     NewCmd     `cmd:"" help:"Write a starter configuration file"`
	Inspect InspectCmd `cmd:"" help:"Print the documentation of one script in the terminal"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild the site whenever sources change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(NewLogger(os.Stderr, c.Verbose, c.Quiet))
	return nil
}

// NewLogger returns the text logger used by every command.
func NewLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SourceFlags locate the inputs and the output of a site.
type SourceFlags struct {
	Dir   string `short:"d" help:"Source directory holding the scripts" default:"." type:"path"`
	Pages string `short:"p" help:"Pages directory (default: <dir>/pages)" type:"path"`
	Dest  string `short:"D" help:"Output directory" default:"dist" type:"path"`
	All   bool   `short:"a" help:"Include private functions"`
}

// ConfigPath resolves the configuration file against the source directory.
func (s SourceFlags) ConfigPath(file string) string {
	return resolveConfigPath(s.Dir, file)
}

// LoadConfig loads the site configuration for the source directory.
func (s SourceFlags) LoadConfig(file string) (*config.Config, error) {
	return config.Load(s.ConfigPath(file), s.Dir)
}

func resolveConfigPath(dir, file string) string {
	if file == "" {
		file = config.DefaultFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}
