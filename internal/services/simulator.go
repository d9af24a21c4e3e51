package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/benmeehan/accident-agent/internal/constants"
	"github.com/benmeehan/accident-agent/internal/models"
)

// Source produces one batch of sensor records per call.
type Source interface {
	Read(ctx context.Context) ([]models.Record, error)
}

// Simulator generates synthetic sensor data at a fixed sample rate.
type Simulator struct {
	sampleRate int
	duration   time.Duration
	rng        *rand.Rand
	clock      func() time.Time
}

// NewSimulator creates a Simulator. Nil rng and clock fall back to a time-seeded source and time.Now.
func NewSimulator(sampleRate int, duration time.Duration, rng *rand.Rand, clock func() time.Time) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if clock == nil {
		clock = time.Now
	}
	return &Simulator{
		sampleRate: sampleRate,
		duration:   duration,
		rng:        rng,
		clock:      clock,
	}
}

// Generate produces duration × sample rate samples, spaced 1/sample rate apart.
func (s *Simulator) Generate(duration time.Duration) []models.Sample {
	count := int(duration.Seconds() * float64(s.sampleRate))
	if count <= 0 {
		return nil
	}

	start := s.clock()
	step := time.Second / time.Duration(s.sampleRate)
	samples := make([]models.Sample, 0, count)
	for i := 0; i < count; i++ {
		ts := start.Add(time.Duration(i) * step)
		samples = append(samples, models.Sample{
			Time:         ts.Format(models.TimeLayout),
			Acceleration: s.rng.Float64() * constants.MaxSimulatedAcceleration,
			Impact:       s.rng.Float64() * constants.MaxSimulatedImpact,
			GPS: models.GPS{
				Latitude:  s.rng.Float64()*180 - 90,
				Longitude: s.rng.Float64()*360 - 180,
			},
		})
	}
	return samples
}

// Read returns one configured duration of synthetic records.
func (s *Simulator) Read(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	samples := s.Generate(s.duration)
	records := make([]models.Record, len(samples))
	for i, sample := range samples {
		records[i] = sample.Record()
	}
	return records, nil
}
