package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/perform-engine/config"
	"github.com/warp/perform-engine/perform"
)

func TestDefault_MatchesEngineDefaults(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, []int{500, 300, 150}, cfg.AwardAmounts)

	w := cfg.WeightConfig()
	assert.Equal(t, perform.DefaultWeights(), w)
	assert.Equal(t, perform.WeightBalanced, perform.Report(w).Status)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PERFORM_CONFIG", "")
	t.Setenv("PERFORM_ADDR", ":3000")
	t.Setenv("PERFORM_DB_PATH", "/tmp/perform-test.db")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "/tmp/perform-test.db", cfg.DBPath)
	// Untouched fields keep their defaults.
	assert.Equal(t, []int{500, 300, 150}, cfg.AwardAmounts)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "perform.yaml")
	yaml := "addr: \":4000\"\nseed_demo: false\nweights:\n  attendance: 1.0\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("PERFORM_CONFIG", path)
	t.Setenv("PERFORM_ADDR", ":5000") // env wins over file

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Addr)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, 1.0, cfg.Weights["attendance"])
}
