package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOBUDGET_LOG_LEVEL",
		"GOBUDGET_LOG_FORMAT",
		"GOBUDGET_DATA_LEDGER_FILE",
		"GOBUDGET_DATA_BUDGET_FILE",
		"GOBUDGET_LABELING_BATCH_SIZE",
		"GOBUDGET_LABELING_MAX_SPLIT",
		"GOBUDGET_AI_ENABLED",
		"GOBUDGET_AI_MODEL",
		"GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "data/ledger.csv", config.Data.LedgerFile)
	assert.Equal(t, "data/budget.yaml", config.Data.BudgetFile)
	assert.Equal(t, 20, config.Labeling.BatchSize)
	assert.Equal(t, 5, config.Labeling.MaxSplit)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", config.AI.Model)
}

func TestInitializeConfig_EnvironmentOverrides(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	t.Setenv("GOBUDGET_LOG_LEVEL", "debug")
	t.Setenv("GOBUDGET_LABELING_BATCH_SIZE", "5")
	t.Setenv("GOBUDGET_DATA_LEDGER_FILE", "/tmp/other-ledger.csv")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, 5, config.Labeling.BatchSize)
	assert.Equal(t, "/tmp/other-ledger.csv", config.Data.LedgerFile)
}

func TestInitializeConfig_GeminiKeyUnprefixed(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GOBUDGET_AI_ENABLED", "true")

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-key", config.AI.APIKey)
	assert.True(t, config.AI.Enabled)
}

func TestInitializeConfig_AIEnabledWithoutKey(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	t.Setenv("GOBUDGET_AI_ENABLED", "true")

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	t.Chdir(dir)

	configContent := `
log:
  level: "warn"
labeling:
  batch_size: 10
data:
  ledger_file: "ledger/master.csv"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, 10, config.Labeling.BatchSize)
	assert.Equal(t, "ledger/master.csv", config.Data.LedgerFile)
	// Unspecified keys keep their defaults.
	assert.Equal(t, 5, config.Labeling.MaxSplit)
}

func TestInitializeConfig_EnvBeatsConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("log:\n  level: \"warn\"\n"), 0600))
	t.Setenv("GOBUDGET_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "error", config.Log.Level)
}

func TestInitializeConfig_InvalidLogLevel(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	t.Setenv("GOBUDGET_LOG_LEVEL", "super-loud")

	_, err := InitializeConfig()
	assert.Error(t, err)
}
