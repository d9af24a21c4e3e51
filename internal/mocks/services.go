package mocks

import (
	"context"

	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/benmeehan/accident-agent/pkg/identity"
	"github.com/stretchr/testify/mock"
)

// Notifier is a mock implementation of notify.Notifier
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Notifier) Notify(ctx context.Context, recipient string, alert models.Alert) error {
	args := m.Called(ctx, recipient, alert)
	return args.Error(0)
}

// Store is a mock implementation of storage.Store
type Store struct {
	mock.Mock
}

func (m *Store) Save(log *models.AccidentLog) error {
	args := m.Called(log)
	return args.Error(0)
}

func (m *Store) Load() (*models.AccidentLog, error) {
	args := m.Called()
	log, _ := args.Get(0).(*models.AccidentLog)
	return log, args.Error(1)
}

func (m *Store) Location() string {
	args := m.Called()
	return args.String(0)
}

// Source is a mock implementation of services.Source
type Source struct {
	mock.Mock
}

func (m *Source) Read(ctx context.Context) ([]models.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.Record)
	return records, args.Error(1)
}

// Geocoder is a mock implementation of location.Geocoder
type Geocoder struct {
	mock.Mock
}

func (m *Geocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	args := m.Called(ctx, latitude, longitude)
	return args.String(0), args.Error(1)
}

// Archiver is a mock implementation of s3.Archiver
type Archiver struct {
	mock.Mock
}

func (m *Archiver) Archive(ctx context.Context, objectName, filePath string) (string, error) {
	args := m.Called(ctx, objectName, filePath)
	return args.String(0), args.Error(1)
}

// VehicleInfo is a mock implementation of identity.VehicleInfoInterface
type VehicleInfo struct {
	mock.Mock
}

func (m *VehicleInfo) LoadVehicleInfo() error {
	args := m.Called()
	return args.Error(0)
}

func (m *VehicleInfo) GetVehicleID() string {
	args := m.Called()
	return args.String(0)
}

func (m *VehicleInfo) GetVehicle() identity.Vehicle {
	args := m.Called()
	return args.Get(0).(identity.Vehicle)
}
