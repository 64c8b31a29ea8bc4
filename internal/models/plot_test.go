package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrowthDuration(t *testing.T) {
	base := 60 * time.Minute

	assert.Equal(t, 60*time.Minute, GrowthDuration(base, 1))
	assert.Equal(t, 30*time.Minute, GrowthDuration(base, 2))
	assert.Equal(t, 40*time.Minute, GrowthDuration(base, 1.5))
	assert.Equal(t, 60*time.Minute, GrowthDuration(base, 0), "non-positive multiplier falls back to 1")
}

func TestPlotReady(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	plantID := 1
	carrot := &PlantType{ID: plantID, Slug: "carrot", GrowMinutes: 10}

	t.Run("empty plot is never ready", func(t *testing.T) {
		p := &Plot{}
		assert.True(t, p.Empty())
		assert.False(t, p.Ready(now, 1))
	})

	t.Run("still growing", func(t *testing.T) {
		planted := now.Add(-5 * time.Minute)
		p := &Plot{PlantTypeID: &plantID, PlantedAt: &planted, Plant: carrot}
		assert.False(t, p.Ready(now, 1))
	})

	t.Run("done at the exact boundary", func(t *testing.T) {
		planted := now.Add(-10 * time.Minute)
		p := &Plot{PlantTypeID: &plantID, PlantedAt: &planted, Plant: carrot}
		assert.True(t, p.Ready(now, 1))
	})

	t.Run("growth multiplier shortens the wait", func(t *testing.T) {
		planted := now.Add(-5 * time.Minute)
		p := &Plot{PlantTypeID: &plantID, PlantedAt: &planted, Plant: carrot}
		assert.False(t, p.Ready(now, 1))
		assert.True(t, p.Ready(now, 2))
	})
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 2, LevelForXP(399))
	assert.Equal(t, 3, LevelForXP(400))
	assert.Equal(t, 4, LevelForXP(900))
}
