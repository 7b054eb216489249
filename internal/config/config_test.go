// ABOUTME: Tests for YAML config loading, env expansion, and validation
// ABOUTME: Covers defaults, overrides, ${VAR} substitution, and rejection of bad values

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "paperlike.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /var/lib/paperlike/drawings.db
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/paperlike/drawings.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "unset fields keep defaults")
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("PAPERLIKE_TEST_DB", "/tmp/env.db")
	path := writeConfig(t, `
database:
  path: ${PAPERLIKE_TEST_DB}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestLoad_RejectsInvalidLevel(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: verbose
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid logging level")
}

func TestLoad_RejectsEmptyDatabasePath(t *testing.T) {
	t.Setenv("PAPERLIKE_UNSET_VAR", "")
	path := writeConfig(t, `
database:
  path: ${PAPERLIKE_UNSET_VAR}
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "database path")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "warn"
	assert.Equal(t, "WARN", cfg.SlogLevel().String())
}
