// Package config loads CLI profiles: a YAML file of default reduce settings
// that explicitly set command-line flags override.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/erraggy/oasreduce/oaserrors"
)

// DefaultFile is the profile read from the working directory when no
// explicit path is given.
const DefaultFile = "oasreduce.yaml"

// Profile keys, shared with the CLI flag names.
const (
	KeyFile               = "file"
	KeyEndpoints          = "endpoints"
	KeyOutput             = "output"
	KeyFormat             = "format"
	KeyQuiet              = "quiet"
	KeyPreserveExtensions = "preserve-extensions"
)

// Config holds the settings of a reduce run.
type Config struct {
	File               string   `koanf:"file"`
	Endpoints          []string `koanf:"endpoints"`
	Output             string   `koanf:"output"`
	Format             string   `koanf:"format"`
	Quiet              bool     `koanf:"quiet"`
	PreserveExtensions bool     `koanf:"preserve-extensions"`

	// Source is the profile file that was loaded, if any
	Source string `koanf:"-"`
}

// Load reads the profile at path and applies overrides on top of it.
// With an empty path, DefaultFile is used when it exists in the working
// directory. overrides is keyed by the Key* constants.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				path = ""
			} else {
				return nil, &oaserrors.ConfigError{
					Option:  "config",
					Value:   path,
					Message: "reading config file",
					Cause:   err,
				}
			}
		}
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("config: loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &oaserrors.ConfigError{
			Option:  "config",
			Value:   path,
			Message: "unmarshaling config",
			Cause:   err,
		}
	}
	cfg.Source = path

	return &cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.File == "" {
		return &oaserrors.ConfigError{
			Option:  KeyFile,
			Message: "no input document (use --file or set file in the profile)",
		}
	}

	switch c.Format {
	case "", "json", "yaml", "yml":
	default:
		return &oaserrors.ConfigError{
			Option:  KeyFormat,
			Value:   c.Format,
			Message: "invalid format (valid: json, yaml)",
		}
	}

	return nil
}

// RequireEndpoints checks that at least one endpoint selector is configured.
func (c *Config) RequireEndpoints() error {
	if len(c.Endpoints) == 0 {
		return &oaserrors.ConfigError{
			Option:  KeyEndpoints,
			Message: "No endpoints provided. Nothing to do.",
		}
	}
	return nil
}
