package service_registry

import (
	"fmt"

	"github.com/benmeehan/accident-agent/internal/constants"
	"github.com/benmeehan/accident-agent/internal/detector"
	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/benmeehan/accident-agent/internal/services"
	"github.com/benmeehan/accident-agent/internal/utils"
	"github.com/benmeehan/accident-agent/pkg/file"
	"github.com/benmeehan/accident-agent/pkg/identity"
	"github.com/benmeehan/accident-agent/pkg/location"
	"github.com/benmeehan/accident-agent/pkg/mqtt"
	"github.com/benmeehan/accident-agent/pkg/notify"
	"github.com/benmeehan/accident-agent/pkg/s3"
	"github.com/benmeehan/accident-agent/pkg/sensor"
	"github.com/benmeehan/accident-agent/pkg/storage"
	"github.com/google/uuid"
)

// MQTTConnector opens a broker connection.
type MQTTConnector func(opts mqtt.Options) (mqtt.MQTTClient, error)

// Builder assembles the accident pipeline from configuration.
type Builder struct {
	registry   *ServiceRegistry
	fileClient file.FileOperations

	ConnectMQTT MQTTConnector
}

// NewBuilder creates a Builder whose resources are released by registry.Close.
func NewBuilder(registry *ServiceRegistry, fileClient file.FileOperations) *Builder {
	b := &Builder{
		registry:   registry,
		fileClient: fileClient,
	}
	b.ConnectMQTT = b.connectMQTT
	return b
}

func (b *Builder) connectMQTT(opts mqtt.Options) (mqtt.MQTTClient, error) {
	client := mqtt.NewMqttService(b.fileClient)
	if err := client.Initialize(opts); err != nil {
		return nil, err
	}
	return client, nil
}

// BuildAccidentService wires the detector, data source, store, archive and notifiers.
func (b *Builder) BuildAccidentService(config *utils.Config, vehicleInfo identity.VehicleInfoInterface) (*services.AccidentService, error) {
	logger := b.registry.Logger

	det := detector.NewDetector(models.Thresholds{
		Acceleration: config.Detection.AccelerationThreshold,
		Impact:       config.Detection.ImpactThreshold,
	}, models.NewAccidentLog(), logger.With().Str("component", "detector").Logger())

	source, err := b.buildSource(config)
	if err != nil {
		return nil, err
	}

	store, err := b.buildStore(config)
	if err != nil {
		return nil, err
	}

	notifier, err := b.buildNotifier(config)
	if err != nil {
		return nil, err
	}

	service := services.NewAccidentService(
		config.Notification.Recipient,
		config.Detection.Interval,
		det,
		source,
		store,
		notifier,
		vehicleInfo,
		logger.With().Str("service", "accident").Logger(),
	)

	if config.Archive.Enabled {
		archiver, err := s3.NewObjectStorage(s3.Options{
			Endpoint:  config.Archive.Endpoint,
			AccessKey: config.Archive.AccessKey,
			SecretKey: config.Archive.SecretKey,
			UseSSL:    config.Archive.UseSSL,
			Bucket:    config.Archive.Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create archive client: %w", err)
		}
		service.SetArchiver(archiver)
		logger.Info().Str("endpoint", config.Archive.Endpoint).Str("bucket", config.Archive.Bucket).Msg("Log archive enabled")
	}

	if config.Notification.MapsAPIKey != "" {
		geocoder, err := location.NewGoogleGeocoder(config.Notification.MapsAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create geocoder: %w", err)
		}
		service.SetGeocoder(geocoder)
	}

	return service, nil
}

func (b *Builder) buildSource(config *utils.Config) (services.Source, error) {
	switch config.Source.Type {
	case constants.SourceSimulator:
		return services.NewSimulator(config.Detection.SampleRate, config.Detection.Duration, nil, nil), nil
	case constants.SourceSerial:
		if config.Source.SerialPort == "" {
			return nil, fmt.Errorf("serial source requires serial_port")
		}
		return sensor.NewSerialSource(config.Source.SerialPort, config.Source.BaudRate, config.Window(),
			b.registry.Logger.With().Str("component", "serial").Logger()), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", config.Source.Type)
	}
}

func (b *Builder) buildStore(config *utils.Config) (storage.Store, error) {
	switch config.Storage.Backend {
	case constants.StorageJSON:
		return storage.NewJSONStore(config.Storage.Path, b.fileClient), nil
	case constants.StorageSQLite:
		store, err := storage.NewSQLiteStore(config.Storage.Path)
		if err != nil {
			return nil, err
		}
		b.registry.onClose(store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}
}

// buildNotifier creates the enabled notifiers in a fixed order. It returns nil when none is enabled.
func (b *Builder) buildNotifier(config *utils.Config) (notify.Notifier, error) {
	logger := b.registry.Logger
	var notifiers []notify.Notifier

	notifiersInOrder := []struct {
		name        string
		enabled     bool
		constructor func() (notify.Notifier, error)
	}{
		{
			name:    "email",
			enabled: config.Notification.Email.Enabled,
			constructor: func() (notify.Notifier, error) {
				email := config.Notification.Email
				return notify.NewEmailNotifier(notify.EmailConfig{
					Host:     email.Host,
					Port:     email.Port,
					Username: email.Username,
					Password: email.Password,
					Sender:   email.Sender,
				}, nil, logger), nil
			},
		},
		{
			name:    "mqtt",
			enabled: config.Notification.MQTT.Enabled,
			constructor: func() (notify.Notifier, error) {
				cfg := config.Notification.MQTT
				clientID := cfg.ClientID + "-" + uuid.New().String()
				client, err := b.ConnectMQTT(mqtt.Options{
					Broker:        cfg.Broker,
					ClientID:      clientID,
					CACertificate: cfg.CACertificate,
					Username:      cfg.Username,
					Password:      cfg.Password,
				})
				if err != nil {
					return nil, err
				}
				b.registry.onClose(func() error {
					client.Disconnect(250)
					return nil
				})
				logger.Info().Str("client_id", clientID).Str("broker", cfg.Broker).Msg("Connected to MQTT broker")
				return notify.NewMQTTNotifier(cfg.Topic, cfg.QOS, client, logger), nil
			},
		},
	}

	for _, n := range notifiersInOrder {
		if !n.enabled {
			logger.Debug().Str("notifier", n.name).Msg("Notifier is disabled, skipping")
			continue
		}
		instance, err := n.constructor()
		if err != nil {
			logger.Error().Err(err).Msgf("Failed to initialize %s notifier", n.name)
			return nil, fmt.Errorf("failed to initialize %s notifier: %w", n.name, err)
		}
		notifiers = append(notifiers, instance)
		logger.Info().Str("notifier", n.name).Msg("Notifier initialized")
	}

	if len(notifiers) == 0 {
		logger.Warn().Msg("No notifier enabled")
		return nil, nil
	}
	return notify.NewMulti(notifiers...), nil
}
