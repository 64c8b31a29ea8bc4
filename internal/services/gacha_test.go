package services

import (
	"testing"

	"github.com/mroth/weightedrand/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceGachaPick(t *testing.T) {
	choices := []weightedrand.Choice[string, int]{
		weightedrand.NewChoice("common", 90),
		weightedrand.NewChoice("rare", 10),
	}

	gacha, err := NewServiceGacha(choices)
	require.NoError(t, err)

	seen := map[string]int{}
	for i := 0; i < 1000; i++ {
		seen[gacha.Pick()]++
	}

	assert.Greater(t, seen["common"], seen["rare"])
	assert.Equal(t, 1000, seen["common"]+seen["rare"])
}

func TestServiceGachaRejectsEmptyChoices(t *testing.T) {
	_, err := NewServiceGacha[string](nil)
	assert.Error(t, err)
}

func TestSeedPackDropTableCoversAllKinds(t *testing.T) {
	kinds := map[string]bool{}
	total := 0
	for _, drop := range seedPackDrops {
		kinds[drop.Kind] = true
		total += drop.Chance
	}

	assert.True(t, kinds["coins"])
	assert.True(t, kinds["gems"])
	assert.True(t, kinds["growth_boost"])
	assert.True(t, kinds["nothing"])
	assert.Equal(t, 1000, total)
}
