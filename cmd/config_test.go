package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimtools/armortrim/pkg/ranker"
)

func resetViper(t *testing.T) {
	viper.Reset()
	setDefaults()
	t.Cleanup(viper.Reset)
}

func TestBuildConfigDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, ranker.DefaultSchedule, cfg.Schedule)
	assert.Equal(t, []string{"Warlock"}, cfg.Filter.IncludeClasses)
	assert.True(t, cfg.Filter.IgnoreInLoadout)
	assert.Equal(t, 3, cfg.BonusAmount)
	assert.Equal(t, "artifice", cfg.BonusMarker)
	assert.False(t, cfg.Parallel)
}

func TestBuildConfigCommaSeparatedOverride(t *testing.T) {
	resetViper(t)
	viper.Set("filter.include_classes", "Hunter, Titan")
	viper.Set("ranking.multipliers", "3 2.5 2 1.5 1.2 1")

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"Hunter", "Titan"}, cfg.Filter.IncludeClasses)
	assert.Equal(t, ranker.Schedule{3, 2.5, 2, 1.5, 1.2, 1}, cfg.Schedule)
}

func TestBuildConfigRejectsBadSchedule(t *testing.T) {
	resetViper(t)
	viper.Set("ranking.multipliers", []float64{1, 2, 3, 4, 5, 6})
	_, err := buildConfig()
	assert.Error(t, err)

	viper.Set("ranking.multipliers", []string{"3", "x"})
	_, err = buildConfig()
	assert.Error(t, err)
}
