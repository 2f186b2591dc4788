package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault_DocumentedValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.75, cfg.Confidence.AutoAcceptThreshold)
	assert.Equal(t, 0.6, cfg.Risk.HighThreshold)
	assert.Equal(t, 0.35, cfg.Risk.ModerateThreshold)
	assert.Equal(t, 30, cfg.SlotGranularityMin)
	assert.Equal(t, 3, cfg.RecomputeRetryLimit)
	assert.Equal(t, 20*time.Second, cfg.ExtractTimeout.Std())
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"db_path: /tmp/planner.db\n"+
			"slot_granularity_min: 15\n"+
			"extract_timeout: 45s\n"+
			"confidence:\n"+
			"  auto_accept_threshold: 0.9\n"+
			"risk:\n"+
			"  high_threshold: 0.7\n"+
			"  moderate_threshold: 0.4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/planner.db", cfg.DBPath)
	assert.Equal(t, 15, cfg.SlotGranularityMin)
	assert.Equal(t, 45*time.Second, cfg.ExtractTimeout.Std())
	assert.Equal(t, 0.9, cfg.Confidence.AutoAcceptThreshold)
	assert.Equal(t, 0.7, cfg.Risk.HighThreshold)
	assert.Equal(t, 0.15, cfg.Confidence.Heading, "unset keys keep their defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slot_granularity_min: 15\n"), 0o644))

	t.Setenv("STUDYPLANNER_SLOT_MIN", "45")
	t.Setenv("STUDYPLANNER_AUTO_ACCEPT", "0.85")
	t.Setenv("STUDYPLANNER_EXTRACT_TIMEOUT", "5s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.SlotGranularityMin)
	assert.Equal(t, 0.85, cfg.Confidence.AutoAcceptThreshold)
	assert.Equal(t, 5*time.Second, cfg.ExtractTimeout.Std())
}

func TestLoad_InvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slot_granularity_min: [nope\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold above one", func(c *Config) { c.Confidence.AutoAcceptThreshold = 1.2 }},
		{"inverted risk bands", func(c *Config) { c.Risk.ModerateThreshold = 0.8 }},
		{"zero granularity", func(c *Config) { c.SlotGranularityMin = 0 }},
		{"zero retries", func(c *Config) { c.RecomputeRetryLimit = 0 }},
		{"zero timeout", func(c *Config) { c.ExtractTimeout = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDuration_ParseErrors(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("extract_timeout: banana\n"), &cfg)
	assert.Error(t, err)
}
