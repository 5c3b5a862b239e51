package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdata/config"
)

// Runs first in the package: Load must complete before any LoadFrom has
// marked the lazy load as done.
func TestLoadBeforeLoadFrom(t *testing.T) {
	t.Chdir(t.TempDir())

	done := make(chan error, 1)
	go func() { done <- config.Load() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("config.Load did not return")
	}
	assert.Equal(t, "ecommerce.db", config.DatabasePath())
	require.NoError(t, config.LoadFrom("", ""))
}

func TestDefaults(t *testing.T) {
	require.NoError(t, config.LoadFrom("", ""))

	assert.Equal(t, "local", config.AppEnv())
	assert.Equal(t, "warn", config.LogLevel())
	assert.Equal(t, ".", config.DataDir())
	assert.Equal(t, "ecommerce.db", config.DatabasePath())
	assert.Equal(t, uint64(42), config.Seed())
	assert.Equal(t, 20, config.RowCount())
	assert.Equal(t, "local", config.StorageDisk())
	assert.Empty(t, config.MetricsFile())
}

func TestReportDatabasePathFallsBackToDatabasePath(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("DB_PATH=/data/shop.db\n"), 0o644))

	require.NoError(t, config.LoadFrom("", envPath))
	assert.Equal(t, "/data/shop.db", config.ReportDatabasePath())
}

func TestDotEnvOverridesJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"seed": 7, "row_count": "5", "data_dir": "csv"}`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nDATA_DIR=\"exports\"\nREPORT_DB_PATH=report.db\n"), 0o644))

	require.NoError(t, config.LoadFrom(jsonPath, envPath))

	assert.Equal(t, uint64(7), config.Seed())
	assert.Equal(t, 5, config.RowCount())
	assert.Equal(t, "exports", config.DataDir())
	assert.Equal(t, "report.db", config.ReportDatabasePath())
}

func TestInvalidNumbersUseDefaults(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("SEED=abc\nROW_COUNT=-3\n"), 0o644))

	require.NoError(t, config.LoadFrom("", envPath))
	assert.Equal(t, uint64(42), config.Seed())
	assert.Equal(t, 20, config.RowCount())
}

func TestMissingFilesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.LoadFrom(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.env")))
	assert.Equal(t, "ecommerce.db", config.DatabasePath())
}

func TestMalformedJSONFails(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{not json`), 0o644))

	assert.Error(t, config.LoadFrom(jsonPath, ""))
}
