package main

import (
	"flag"
	"testing"

	"github.com/anapaulaelz/final-practicum-project/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestApplyOverrides(t *testing.T) {
	app := newApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse([]string{"--data-dir", "/tmp/exports", "--critical-threshold", "10", "--exclude", "prueba1", "--exclude", "demo"}))

	cfg := config.Config{}
	cfg.App.DataDir = "./data"
	cfg.Thresholds.Critical = 15
	cfg.Thresholds.Low = 30

	applyOverrides(cli.NewContext(app, set, nil), &cfg)

	assert.Equal(t, "/tmp/exports", cfg.App.DataDir)
	assert.Equal(t, 10, cfg.Thresholds.Critical)
	assert.Equal(t, 30, cfg.Thresholds.Low)
	assert.Equal(t, []string{"prueba1", "demo"}, cfg.App.ExcludeProducts)
}

func TestPipelineConfig(t *testing.T) {
	cfg := config.Config{}
	cfg.Thresholds.Critical = 15
	cfg.Thresholds.Low = 30
	cfg.Planner.CoverageDays = 21
	cfg.Planner.MinReorderQty = 50
	cfg.Financials.Markup = 2
	cfg.App.ExcludeProducts = []string{"prueba1"}

	pc := pipelineConfig(cfg)
	assert.Equal(t, 15, pc.Thresholds.Critical)
	assert.Equal(t, 21, pc.Planner.CoverageDays)
	assert.Equal(t, 50.0, pc.Financials.MinReorderQty)
	assert.Equal(t, []string{"prueba1"}, pc.ExcludeProducts)
}

func TestAppCommands(t *testing.T) {
	app := newApp()
	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"analyze", "quick", "financials", "fetch", "cache"}, names)

	var sub []string
	for _, cmd := range app.Commands[4].Subcommands {
		sub = append(sub, cmd.Name)
	}
	assert.Equal(t, []string{"show", "clear"}, sub)
}

func TestCacheCommandsRequireEnabledCache(t *testing.T) {
	st := &state{}
	st.cfg.Cache.Enabled = false

	_, err := st.newCacheService()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_ENABLED")
}
