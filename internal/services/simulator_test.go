package services_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/benmeehan/accident-agent/internal/detector"
	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/benmeehan/accident-agent/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedStart = time.Date(2024, 12, 1, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedStart }

func TestSimulator_GenerateCount(t *testing.T) {
	sim := services.NewSimulator(100, 5*time.Second, rand.New(rand.NewSource(1)), fixedClock)

	assert.Len(t, sim.Generate(2*time.Second), 200)
	assert.Len(t, sim.Generate(0), 0)
}

func TestSimulator_GenerateRangesAndTimes(t *testing.T) {
	sim := services.NewSimulator(100, time.Second, rand.New(rand.NewSource(7)), fixedClock)

	samples := sim.Generate(3 * time.Second)

	require.Len(t, samples, 300)
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.Acceleration, 0.0)
		assert.Less(t, s.Acceleration, 20.0)
		assert.GreaterOrEqual(t, s.Impact, 0.0)
		assert.Less(t, s.Impact, 100.0)
		assert.GreaterOrEqual(t, s.GPS.Latitude, -90.0)
		assert.Less(t, s.GPS.Latitude, 90.0)
		assert.GreaterOrEqual(t, s.GPS.Longitude, -180.0)
		assert.Less(t, s.GPS.Longitude, 180.0)
	}
	assert.Equal(t, "2024-12-01 12:00:00", samples[0].Time)
	assert.Equal(t, "2024-12-01 12:00:00", samples[99].Time)
	assert.Equal(t, "2024-12-01 12:00:01", samples[100].Time)
	assert.Equal(t, "2024-12-01 12:00:02", samples[299].Time)
}

func TestSimulator_ReadProducesValidRecords(t *testing.T) {
	sim := services.NewSimulator(10, 2*time.Second, rand.New(rand.NewSource(3)), fixedClock)

	records, err := sim.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 20)

	for _, r := range records {
		_, err := detector.Extract(r)
		assert.NoError(t, err)
	}
}

func TestSimulator_ReadCancelled(t *testing.T) {
	sim := services.NewSimulator(10, time.Second, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_Deterministic(t *testing.T) {
	a := services.NewSimulator(10, time.Second, rand.New(rand.NewSource(42)), fixedClock).Generate(time.Second)
	b := services.NewSimulator(10, time.Second, rand.New(rand.NewSource(42)), fixedClock).Generate(time.Second)

	assert.Equal(t, a, b)
	assert.IsType(t, []models.Sample{}, a)
}
