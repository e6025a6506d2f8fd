package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
)

// Starter returns the configuration written by Init.
func Starter() *Config {
	skip := true
	return &Config{
		Name:      "My Rhai Project",
		Color:     []int{int(DefaultColor[0]), int(DefaultColor[1]), int(DefaultColor[2])},
		CodeTheme: "atom-one-light",
		CodeLang:  DefaultCodeLang,
		Index:     DefaultIndex,
		Extension: DefaultExtension,
		Links: []Link{
			{Name: "Rhai", Link: "https://rhai.rs"},
		},
		SkipPrivate: &skip,
	}
}

// Init writes a starter configuration file to path. The format follows the
// file extension, as in Parse. An existing file is only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithPath(path).Build()
	}

	data, err := marshal(path, Starter())
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to encode starter configuration").Build()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return derrors.FileSystemError("failed to create configuration directory").
				WithCause(err).WithPath(dir).Build()
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return derrors.FileSystemError("failed to write configuration file").
			WithCause(err).WithPath(path).Build()
	}
	return nil
}

func marshal(path string, cfg *Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
