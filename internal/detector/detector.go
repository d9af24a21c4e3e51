package detector

import (
	"errors"

	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/rs/zerolog"
)

// ScanResult is the outcome of a single scan.
type ScanResult struct {
	Detected  bool
	Flagged   *models.Sample
	Malformed []*MalformedRecordError
}

// Detector flags the first sample that exceeds its thresholds and records it in
// the accident log it was given.
type Detector struct {
	thresholds models.Thresholds
	log        *models.AccidentLog
	logger     zerolog.Logger
}

// NewDetector creates a Detector appending flagged samples to log.
// A nil log is replaced by an empty one.
func NewDetector(thresholds models.Thresholds, log *models.AccidentLog, logger zerolog.Logger) *Detector {
	if log == nil {
		log = models.NewAccidentLog()
	}
	return &Detector{
		thresholds: thresholds,
		log:        log,
		logger:     logger,
	}
}

// Thresholds returns the detector's configured thresholds.
func (d *Detector) Thresholds() models.Thresholds {
	return d.thresholds
}

// Log returns the accident log owned by the detector.
func (d *Detector) Log() *models.AccidentLog {
	return d.log
}

// Scan walks records in order and stops at the first one above either threshold.
// Malformed records are skipped and reported in the result.
func (d *Detector) Scan(records []models.Record) ScanResult {
	var result ScanResult

	for i, record := range records {
		sample, err := Extract(record)
		if err != nil {
			var recordErr *MalformedRecordError
			if errors.As(err, &recordErr) {
				recordErr.Index = i
				result.Malformed = append(result.Malformed, recordErr)
			}
			d.logger.Warn().Err(err).Int("index", i).Msg("Skipping malformed sensor record")
			continue
		}

		if d.flag(sample) {
			result.Detected = true
			result.Flagged = &sample
			return result
		}
	}

	d.logger.Debug().
		Int("records", len(records)).
		Int("malformed", len(result.Malformed)).
		Msg("No accident detected")
	return result
}

// ScanSamples is Scan for samples that are already typed.
func (d *Detector) ScanSamples(samples []models.Sample) ScanResult {
	for _, sample := range samples {
		if d.flag(sample) {
			flagged := sample
			return ScanResult{Detected: true, Flagged: &flagged}
		}
	}
	return ScanResult{}
}

func (d *Detector) flag(sample models.Sample) bool {
	if !d.thresholds.Exceeded(sample) {
		return false
	}

	d.log.Append(sample)
	d.logger.Warn().
		Str("time", sample.Time).
		Float64("acceleration", sample.Acceleration).
		Float64("impact", sample.Impact).
		Float64("latitude", sample.GPS.Latitude).
		Float64("longitude", sample.GPS.Longitude).
		Msg("Accident detected")
	return true
}
