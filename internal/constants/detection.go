package constants

import "time"

// Detection defaults.
const (
	// DefaultAccelerationThreshold is the acceleration (m/s²) above which a sample is flagged.
	DefaultAccelerationThreshold = 9.8

	// DefaultImpactThreshold is the impact force (N) above which a sample is flagged.
	DefaultImpactThreshold = 50.0

	// DefaultSampleRate is the sensor sampling rate in Hz.
	DefaultSampleRate = 100

	// DefaultDuration is how much synthetic data the simulator produces per run.
	DefaultDuration = 5 * time.Second

	// DefaultInterval is the pause between scans in continuous mode.
	DefaultInterval = 5 * time.Second
)

// Simulated reading ranges.
const (
	MaxSimulatedAcceleration = 20.0
	MaxSimulatedImpact       = 100.0
)

// Data source types
const (
	SourceSimulator = "simulator"
	SourceSerial    = "serial"
)

// Storage backends
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)
