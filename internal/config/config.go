// Package config loads the site configuration file.
package config

import (
	"fmt"
	"path/filepath"
)

// DefaultFile is the configuration file name looked up in the source directory.
const DefaultFile = "rhai.toml"

const (
	DefaultIndex     = "index.md"
	DefaultExtension = "rhai"
	DefaultCodeLang  = "rust"
)

// DefaultColor is the accent color used when none is configured.
var DefaultColor = RGB{246, 119, 2}

// Config is the site configuration. Every field is optional.
type Config struct {
	Name            string `toml:"name,omitempty" yaml:"name,omitempty"`
	Color           []int  `toml:"color,omitempty" yaml:"color,omitempty"`
	Icon            string `toml:"icon,omitempty" yaml:"icon,omitempty"`
	Stylesheet      string `toml:"stylesheet,omitempty" yaml:"stylesheet,omitempty"`
	CodeTheme       string `toml:"code_theme,omitempty" yaml:"code_theme,omitempty"`
	CodeLang        string `toml:"code_lang,omitempty" yaml:"code_lang,omitempty"`
	Root            string `toml:"root,omitempty" yaml:"root,omitempty"`
	Index           string `toml:"index,omitempty" yaml:"index,omitempty"`
	Extension       string `toml:"extension,omitempty" yaml:"extension,omitempty"`
	Links           []Link `toml:"links,omitempty" yaml:"links,omitempty"`
	GoogleAnalytics string `toml:"google_analytics,omitempty" yaml:"google_analytics,omitempty"`
	SkipPrivate     *bool  `toml:"skip_private,omitempty" yaml:"skip_private,omitempty"`

	// Templates is a directory whose files replace the embedded page templates.
	Templates string `toml:"templates,omitempty" yaml:"templates,omitempty"`
	// Sanitize passes rendered markdown through an HTML sanitizer.
	Sanitize bool `toml:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	// ShowRevision stamps pages with the source repository's HEAD revision.
	ShowRevision bool `toml:"show_revision,omitempty" yaml:"show_revision,omitempty"`

	// dir is the directory relative paths in the file resolve against.
	dir string
}

// Link is an external navigation link.
type Link struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	Link string `toml:"link" yaml:"link" json:"link"`
}

// RGB is an accent color.
type RGB [3]uint8

// CSS renders the color as a CSS rgb() value.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c[0], c[1], c[2])
}

// CSSAlpha renders the color as a CSS rgba() value with alpha out of 255.
func (c RGB) CSSAlpha(alpha uint8) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c[0], c[1], c[2], float32(alpha)/255)
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Index == "" {
		c.Index = DefaultIndex
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.CodeLang == "" {
		c.CodeLang = DefaultCodeLang
	}
	if c.SkipPrivate == nil {
		skip := true
		c.SkipPrivate = &skip
	}
}

// AccentColor returns the configured color or DefaultColor.
// It assumes the configuration passed validation.
func (c *Config) AccentColor() RGB {
	if len(c.Color) != 3 {
		return DefaultColor
	}
	return RGB{uint8(c.Color[0]), uint8(c.Color[1]), uint8(c.Color[2])}
}

// SkipsPrivate reports whether private functions are left out of the site.
func (c *Config) SkipsPrivate() bool {
	return c.SkipPrivate == nil || *c.SkipPrivate
}

// Resolve interprets p relative to the configuration's base directory.
// Absolute and empty paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// SetBaseDir sets the directory relative paths resolve against.
func (c *Config) SetBaseDir(dir string) {
	c.dir = dir
}
