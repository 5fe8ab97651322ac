package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildingstore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/building/store"
)

func TestDefaultBuildingConfig(t *testing.T) {
	config, err := defaultBuildingConfig()
	require.NoError(t, err)

	assert.Equal(t, 100.0, config.MaxOccupancyPercentage)
	assert.Equal(t, "08:00", config.OpeningHours.Weekdays.Open)
	assert.Equal(t, "21:30", config.OpeningHours.Weekdays.Close)
	assert.Equal(t, "09:00", config.OpeningHours.Saturday.Open)
	assert.True(t, config.OpeningHours.Sunday.IsClosed())
}

func TestDefaultBuildingConfigSeedsInMemoryStore(t *testing.T) {
	config, err := defaultBuildingConfig()
	require.NoError(t, err)

	store := buildingstore.NewInMemory(config)
	got, err := store.GetDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config, got)
}
