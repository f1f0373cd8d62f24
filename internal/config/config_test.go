package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Data.Dir)
	assert.Equal(t, []string{"en"}, cfg.Data.Languages)
	assert.Equal(t, "mhw.db", cfg.Output.Path)
	assert.Equal(t, "", cfg.Output.Summary)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.yaml")
	err := os.WriteFile(path, []byte(`
data:
  dir: ./data
  languages: [en, ja]
output:
  path: out/mhw.db
  summary: out/summary.yaml
logging:
  level: debug
  format: json
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, []string{"en", "ja"}, cfg.Data.Languages)
	assert.Equal(t, "out/mhw.db", cfg.Output.Path)
	assert.Equal(t, "out/summary.yaml", cfg.Output.Summary)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MHWDB_OUTPUT_PATH", "/tmp/other.db")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Output.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := Default()
	cfg.Data.Dir = ""
	cfg.Data.Languages = []string{"EN", "en", "en"}
	cfg.Output.Path = ""
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "data.dir")
	assert.Contains(t, msg, `"EN"`)
	assert.Contains(t, msg, "repeated")
	assert.Contains(t, msg, "output.path")
	assert.Contains(t, msg, "logging.format")
}

func TestValidate_EmptyLanguages(t *testing.T) {
	cfg := Default()
	cfg.Data.Languages = nil
	assert.Error(t, cfg.Validate())
}

func TestValidate_RequiresEnglish(t *testing.T) {
	cfg := Default()
	cfg.Data.Languages = []string{"ja", "fr"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `data.languages must include "en"`)
}

func TestProperty_InvalidLevelRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.StringMatching(`[a-z]{1,8}`).Filter(func(s string) bool {
			return s != "debug" && s != "info" && s != "warn" && s != "error"
		}).Draw(rt, "level")
		cfg := Default()
		cfg.Logging.Level = level
		if cfg.Validate() == nil {
			rt.Fatalf("expected level %q to be rejected", level)
		}
	})
}
