package datastore

import (
	"context"
	"testing"
	"time"

	"idlegrow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPlotPlantedClaimsOnce(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, CreateTablePlantType(ctx, db))
	require.NoError(t, CreateTablePlot(ctx, db))

	userID := time.Now().UnixNano()
	require.NoError(t, InsertPlots(ctx, db, []*models.Plot{{UserID: userID, Position: 0}}))

	plot, err := GetPlot(ctx, db, userID, 0)
	require.NoError(t, err)
	require.True(t, plot.Empty())

	now := time.Now()
	claimed, err := SetPlotPlanted(ctx, db, plot, 1, now)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A second plant racing on the same plot matches zero rows and must
	// report it, so the caller never charges twice.
	claimed, err = SetPlotPlanted(ctx, db, plot, 2, now)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestClearPlotClearsOnce(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, CreateTablePlantType(ctx, db))
	require.NoError(t, CreateTablePlot(ctx, db))

	userID := time.Now().UnixNano()
	require.NoError(t, InsertPlots(ctx, db, []*models.Plot{{UserID: userID, Position: 0}}))

	plot, err := GetPlot(ctx, db, userID, 0)
	require.NoError(t, err)

	claimed, err := SetPlotPlanted(ctx, db, plot, 1, time.Now())
	require.NoError(t, err)
	require.True(t, claimed)

	plot, err = GetPlot(ctx, db, userID, 0)
	require.NoError(t, err)

	cleared, err := ClearPlot(ctx, db, plot)
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = ClearPlot(ctx, db, plot)
	require.NoError(t, err)
	assert.False(t, cleared, "double harvest must clear once")
}
