package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benmeehan/accident-agent/internal/constants"
	"github.com/benmeehan/accident-agent/internal/utils"
	"github.com/benmeehan/accident-agent/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := utils.LoadConfig(filepath.Join(t.TempDir(), "config.yaml"), file.NewFileService())
	require.NoError(t, err)

	assert.Equal(t, 9.8, config.Detection.AccelerationThreshold)
	assert.Equal(t, 50.0, config.Detection.ImpactThreshold)
	assert.Equal(t, 100, config.Detection.SampleRate)
	assert.Equal(t, 5*time.Second, config.Detection.Duration)
	assert.Equal(t, 500, config.Window())
	assert.Equal(t, "emergency_contact@example.com", config.Notification.Recipient)
	assert.Equal(t, "accident_log.json", config.Storage.Path)
	assert.Equal(t, constants.StorageJSON, config.Storage.Backend)
	assert.Equal(t, constants.SourceSimulator, config.Source.Type)
	assert.Equal(t, "accident_detection.log", config.Logging.File)
	assert.True(t, config.Notification.Email.Enabled)
	assert.False(t, config.Detection.Continuous)
}

func TestLoadConfig_FromYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
detection:
  acceleration_threshold: 10
  impact_threshold: 70
  sample_rate: 50
  duration: 2s
storage:
  backend: sqlite
  path: /var/lib/agent/accidents.db
notification:
  recipient: ops@example.com
  email:
    enabled: false
  mqtt:
    enabled: true
    broker: tcp://broker:1883
    topic: vehicles/accidents
    qos: 1
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	config, err := utils.LoadConfig(path, file.NewFileService())
	require.NoError(t, err)

	assert.Equal(t, 10.0, config.Detection.AccelerationThreshold)
	assert.Equal(t, 70.0, config.Detection.ImpactThreshold)
	assert.Equal(t, 100, config.Window())
	assert.Equal(t, constants.StorageSQLite, config.Storage.Backend)
	assert.Equal(t, "ops@example.com", config.Notification.Recipient)
	assert.True(t, config.Notification.MQTT.Enabled)
	assert.Equal(t, 1, config.Notification.MQTT.QOS)
	assert.False(t, config.Notification.Email.Enabled)
	assert.Equal(t, constants.DefaultSMTPPort, config.Notification.Email.Port)
	assert.Equal(t, constants.DefaultInterval, config.Detection.Interval)
}

func TestLoadConfig_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detection: [unclosed"), 0600))

	_, err := utils.LoadConfig(path, file.NewFileService())
	assert.Error(t, err)
}

func TestLoadConfig_ZeroThresholdsAreKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
detection:
  acceleration_threshold: 0
  impact_threshold: 0
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	config, err := utils.LoadConfig(path, file.NewFileService())
	require.NoError(t, err)

	assert.Equal(t, 0.0, config.Detection.AccelerationThreshold)
	assert.Equal(t, 0.0, config.Detection.ImpactThreshold)
	assert.Equal(t, constants.DefaultSampleRate, config.Detection.SampleRate)
}

func TestLoadConfig_AbsentKeysKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detection:\n  impact_threshold: 70\n"), 0600))

	config, err := utils.LoadConfig(path, file.NewFileService())
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultAccelerationThreshold, config.Detection.AccelerationThreshold)
	assert.Equal(t, 70.0, config.Detection.ImpactThreshold)
	assert.True(t, config.Notification.Email.Enabled)
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	config, err := utils.LoadConfig(path, file.NewFileService())
	require.NoError(t, err)

	assert.Equal(t, utils.DefaultConfig(), config)
}
