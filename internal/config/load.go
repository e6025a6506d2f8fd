package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/logfields"
)

// Load reads the configuration at path. Relative paths inside it resolve
// against baseDir.
//
// A missing file is not an error: the defaults are returned. `.env` files next
// to the configuration are loaded into the environment (existing variables
// win) and `${VAR}` references in the file are expanded before decoding.
func Load(path, baseDir string) (*Config, error) {
	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("Configuration file not found, using defaults", logfields.Path(path))
		cfg := Default()
		cfg.SetBaseDir(baseDir)
		return cfg, nil
	}
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read configuration").
			WithPath(path).Build()
	}

	cfg, err := Parse(path, []byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.SetBaseDir(baseDir)
	return cfg, nil
}

// Parse decodes and validates configuration data. The format is chosen by the
// extension of path: `.yaml` and `.yml` are YAML, everything else is TOML.
// Unknown keys are rejected.
func Parse(path string, data []byte) (*Config, error) {
	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid configuration file").
			WithPath(path).Build()
	}
	if err := cfg.Validate(); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryValidation, "configuration validation failed").
			WithPath(path).Build()
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return errors.New(strict.String())
			}
			return err
		}
		return nil
	}
}

// loadEnvFiles loads .env and .env.local from dir. Missing files are ignored.
func loadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(p), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
	}
}
