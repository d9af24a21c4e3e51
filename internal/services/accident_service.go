package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benmeehan/accident-agent/internal/detector"
	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/benmeehan/accident-agent/pkg/identity"
	"github.com/benmeehan/accident-agent/pkg/location"
	"github.com/benmeehan/accident-agent/pkg/notify"
	"github.com/benmeehan/accident-agent/pkg/s3"
	"github.com/benmeehan/accident-agent/pkg/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccidentService reads sensor data, scans it and handles flagged accidents.
type AccidentService struct {
	// Configuration fields
	recipient string
	interval  time.Duration

	// Dependencies
	detector    *detector.Detector
	source      Source
	store       storage.Store
	notifier    notify.Notifier
	vehicleInfo identity.VehicleInfoInterface
	archiver    s3.Archiver
	geocoder    location.Geocoder
	logger      zerolog.Logger

	newID func() string
	now   func() time.Time

	// Internal state management
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAccidentService creates a new AccidentService instance.
func NewAccidentService(recipient string, interval time.Duration, det *detector.Detector, source Source,
	store storage.Store, notifier notify.Notifier, vehicleInfo identity.VehicleInfoInterface, logger zerolog.Logger) *AccidentService {
	return &AccidentService{
		recipient:   recipient,
		interval:    interval,
		detector:    det,
		source:      source,
		store:       store,
		notifier:    notifier,
		vehicleInfo: vehicleInfo,
		logger:      logger,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// SetArchiver enables uploading the saved log after each detection.
func (s *AccidentService) SetArchiver(archiver s3.Archiver) {
	s.archiver = archiver
}

// SetGeocoder enables address lookup for alerts.
func (s *AccidentService) SetGeocoder(geocoder location.Geocoder) {
	s.geocoder = geocoder
}

// SetIDGenerator replaces the alert ID generator.
func (s *AccidentService) SetIDGenerator(newID func() string) {
	s.newID = newID
}

// SetClock replaces the clock used for alert timestamps.
func (s *AccidentService) SetClock(now func() time.Time) {
	s.now = now
}

// Log returns a snapshot of the accident log.
func (s *AccidentService) Log() []models.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detector.Log().Samples()
}

// LoadLog replaces the in-memory accident log with the persisted one.
func (s *AccidentService) LoadLog() error {
	loaded, err := s.store.Load()
	if err != nil {
		s.logger.Error().Err(err).Str("location", s.store.Location()).Msg("Failed to load accident log")
		return err
	}

	s.mu.Lock()
	s.detector.Log().Replace(loaded)
	s.mu.Unlock()

	s.logger.Info().Str("location", s.store.Location()).Int("entries", loaded.Len()).Msg("Accident log loaded")
	return nil
}

// RunOnce reads one batch of sensor data and scans it. Persistence and notification
// failures are logged; only a failure to read the data is returned.
func (s *AccidentService) RunOnce(ctx context.Context) (bool, error) {
	records, err := s.source.Read(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read sensor data")
		return false, fmt.Errorf("failed to read sensor data: %w", err)
	}

	s.mu.Lock()
	result := s.detector.Scan(records)
	s.mu.Unlock()

	if len(result.Malformed) > 0 {
		s.logger.Warn().Int("malformed", len(result.Malformed)).Int("records", len(records)).Msg("Malformed sensor records skipped")
	}

	if !result.Detected {
		s.logger.Info().Int("records", len(records)).Msg("No accident detected")
		return false, nil
	}

	s.handleAccident(ctx, *result.Flagged)
	return true, nil
}

func (s *AccidentService) handleAccident(ctx context.Context, sample models.Sample) {
	alert := s.buildAlert(ctx, sample)

	if s.persist() && s.archiver != nil {
		objectName := s3.ObjectName(alert.VehicleID, alert.ID)
		objectPath, err := s.archiver.Archive(ctx, objectName, s.store.Location())
		if err != nil {
			s.logger.Error().Err(err).Str("object", objectName).Msg("Failed to archive accident log")
		} else {
			s.logger.Info().Str("object", objectPath).Msg("Accident log archived")
		}
	}

	if s.notifier == nil {
		s.logger.Warn().Msg("No notifier configured, alert not sent")
		return
	}
	if err := s.notifier.Notify(ctx, s.recipient, alert); err != nil {
		s.logger.Error().Err(err).Str("recipient", s.recipient).Msg("Error sending notification")
		return
	}
	s.logger.Info().Str("recipient", s.recipient).Str("alert_id", alert.ID).Msg("Emergency contact notified")
}

func (s *AccidentService) persist() bool {
	s.mu.Lock()
	err := s.store.Save(s.detector.Log())
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("Error saving accident log")
		return false
	}
	s.logger.Info().Str("location", s.store.Location()).Msg("Accident log saved")
	return true
}

func (s *AccidentService) buildAlert(ctx context.Context, sample models.Sample) models.Alert {
	alert := models.Alert{
		ID:         s.newID(),
		DetectedAt: s.now().UTC(),
		Sample:     sample,
	}
	if s.vehicleInfo != nil {
		alert.VehicleID = s.vehicleInfo.GetVehicleID()
	}

	if s.geocoder != nil && !sample.GPS.IsZero() {
		address, err := s.geocoder.ReverseGeocode(ctx, sample.GPS.Latitude, sample.GPS.Longitude)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to resolve accident address")
		} else {
			alert.Address = address
		}
	}
	return alert
}

// Start scans continuously, one batch every interval, until Stop is called.
func (s *AccidentService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil {
		s.logger.Warn().Msg("AccidentService is already running")
		return errors.New("accident service is already running")
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go func(ctx context.Context) {
		defer s.wg.Done()
		s.runLoop(ctx)
	}(s.ctx)

	s.logger.Info().Dur("interval", s.interval).Msg("AccidentService started successfully")
	return nil
}

// Stop gracefully stops the continuous scan.
func (s *AccidentService) Stop() error {
	s.mu.Lock()
	if s.ctx == nil {
		s.mu.Unlock()
		s.logger.Warn().Msg("AccidentService is not running")
		return errors.New("accident service is not running")
	}
	cancel := s.cancel
	s.ctx = nil
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()

	s.logger.Info().Msg("AccidentService stopped successfully")
	return nil
}

func (s *AccidentService) runLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("Scan failed")
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			s.logger.Info().Msg("AccidentService stopping gracefully")
			return
		}
	}
}
