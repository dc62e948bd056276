package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasreduce/oaserrors"
)

func writeProfile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeProfile(t, t.TempDir(), `
file: openapi.json
endpoints:
  - GET:/blueprints
  - POST:/compose
output: reduced.json
format: yaml
quiet: true
preserve-extensions: true
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		File:               "openapi.json",
		Endpoints:          []string{"GET:/blueprints", "POST:/compose"},
		Output:             "reduced.json",
		Format:             "yaml",
		Quiet:              true,
		PreserveExtensions: true,
		Source:             path,
	}, cfg)
}

func TestLoad_OverridesWin(t *testing.T) {
	path := writeProfile(t, t.TempDir(), `
file: openapi.json
endpoints: [GET:/blueprints]
quiet: true
`)

	cfg, err := Load(path, map[string]any{
		KeyEndpoints: []string{"/compose"},
		KeyQuiet:     false,
		KeyFormat:    "json",
	})
	require.NoError(t, err)
	assert.Equal(t, "openapi.json", cfg.File)
	assert.Equal(t, []string{"/compose"}, cfg.Endpoints)
	assert.False(t, cfg.Quiet)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_NoProfile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", map[string]any{KeyFile: "spec.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "spec.yaml", cfg.File)
	assert.Empty(t, cfg.Source)
	assert.Empty(t, cfg.Endpoints)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("file: from-default.json\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-default.json", cfg.File)
	assert.Equal(t, DefaultFile, cfg.Source)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("invalid YAML", func(t *testing.T) {
		path := writeProfile(t, t.TempDir(), "file: [unclosed\n")
		_, err := Load(path, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		errContains string
	}{
		{name: "valid", config: Config{File: "a.json"}},
		{name: "valid yaml format", config: Config{File: "a.json", Format: "yml"}},
		{name: "missing file", config: Config{}, errContains: "no input document"},
		{name: "bad format", config: Config{File: "a.json", Format: "xml"}, errContains: "invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		})
	}
}

func TestRequireEndpoints(t *testing.T) {
	err := (&Config{}).RequireEndpoints()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No endpoints provided. Nothing to do.")

	assert.NoError(t, (&Config{Endpoints: []string{"/a"}}).RequireEndpoints())
}
