package utils

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/benmeehan/accident-agent/internal/constants"
	"github.com/benmeehan/accident-agent/pkg/file"
)

// Config represents the structure of the configuration file.
type Config struct {
	Logging struct {
		Level string `yaml:"level"` // zerolog level name
		File  string `yaml:"file"`  // Path of the process log file, "-" disables it
	} `yaml:"logging"`

	Detection struct {
		AccelerationThreshold float64       `yaml:"acceleration_threshold"` // m/s²
		ImpactThreshold       float64       `yaml:"impact_threshold"`       // N
		SampleRate            int           `yaml:"sample_rate"`            // Hz
		Duration              time.Duration `yaml:"duration"`               // Data read per scan
		Continuous            bool          `yaml:"continuous"`             // Keep scanning until stopped
		Interval              time.Duration `yaml:"interval"`               // Pause between scans in continuous mode
	} `yaml:"detection"`

	Vehicle struct {
		IdentityFile string `yaml:"identity_file"` // Path to the vehicle identity JSON file
	} `yaml:"vehicle"`

	Source struct {
		Type       string `yaml:"type"`        // simulator or serial
		SerialPort string `yaml:"serial_port"` // Device path of the sensor board
		BaudRate   int    `yaml:"baud_rate"`
	} `yaml:"source"`

	Storage struct {
		Backend        string `yaml:"backend"`          // json or sqlite
		Path           string `yaml:"path"`             // Log file or database path
		RestoreOnStart bool   `yaml:"restore_on_start"` // Load the previous log at startup
	} `yaml:"storage"`

	Archive struct {
		Enabled   bool   `yaml:"enabled"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		UseSSL    bool   `yaml:"use_ssl"`
		Bucket    string `yaml:"bucket"`
	} `yaml:"archive"`

	Notification struct {
		Recipient  string `yaml:"recipient"`    // Emergency contact address
		MapsAPIKey string `yaml:"maps_api_key"` // Enables address lookup when set

		Email struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Username string `yaml:"username"`
			Password string `yaml:"password"`
			Sender   string `yaml:"sender"`
		} `yaml:"email"`

		MQTT struct {
			Enabled       bool   `yaml:"enabled"`
			Broker        string `yaml:"broker"`         // MQTT broker address
			ClientID      string `yaml:"client_id"`      // MQTT client ID prefix
			CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate
			Username      string `yaml:"username"`
			Password      string `yaml:"password"`
			Topic         string `yaml:"topic"`
			QOS           int    `yaml:"qos"`
		} `yaml:"mqtt"`
	} `yaml:"notification"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	config := &Config{}
	config.Detection.AccelerationThreshold = constants.DefaultAccelerationThreshold
	config.Detection.ImpactThreshold = constants.DefaultImpactThreshold
	config.Notification.Email.Enabled = true
	config.ApplyDefaults()
	return config
}

// LoadConfig loads the YAML configuration from the specified file on top of
// DefaultConfig, so keys absent from the file keep their defaults.
// A missing or empty file yields DefaultConfig.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	config := DefaultConfig()
	err := fileClient.ReadYamlFile(filename, config)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, io.EOF) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	config.ApplyDefaults()
	return config, nil
}

// ApplyDefaults fills zero-valued settings. Thresholds are left alone since
// zero is a valid threshold.
func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = constants.DefaultLogLevel
	}
	if c.Logging.File == "" {
		c.Logging.File = constants.DefaultLogFile
	}

	if c.Detection.SampleRate <= 0 {
		c.Detection.SampleRate = constants.DefaultSampleRate
	}
	if c.Detection.Duration <= 0 {
		c.Detection.Duration = constants.DefaultDuration
	}
	if c.Detection.Interval <= 0 {
		c.Detection.Interval = constants.DefaultInterval
	}

	if c.Source.Type == "" {
		c.Source.Type = constants.SourceSimulator
	}
	if c.Source.BaudRate <= 0 {
		c.Source.BaudRate = constants.DefaultBaudRate
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = constants.StorageJSON
	}
	if c.Storage.Path == "" {
		c.Storage.Path = constants.DefaultStorePath
	}

	if c.Notification.Recipient == "" {
		c.Notification.Recipient = constants.DefaultRecipient
	}
	if c.Notification.Email.Host == "" {
		c.Notification.Email.Host = constants.DefaultSMTPHost
	}
	if c.Notification.Email.Port <= 0 {
		c.Notification.Email.Port = constants.DefaultSMTPPort
	}
	if c.Notification.MQTT.ClientID == "" {
		c.Notification.MQTT.ClientID = "accident-agent"
	}
}

// Window is the number of samples read per scan.
func (c *Config) Window() int {
	return int(c.Detection.Duration.Seconds() * float64(c.Detection.SampleRate))
}
