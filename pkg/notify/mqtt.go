package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/benmeehan/accident-agent/pkg/mqtt"
	"github.com/rs/zerolog"
)

// MQTTNotifier publishes alerts as JSON to a broker topic.
type MQTTNotifier struct {
	topic      string
	qos        int
	timeout    time.Duration
	mqttClient mqtt.MQTTClient
	logger     zerolog.Logger
}

// NewMQTTNotifier creates a new MQTTNotifier instance.
func NewMQTTNotifier(topic string, qos int, mqttClient mqtt.MQTTClient, logger zerolog.Logger) *MQTTNotifier {
	return &MQTTNotifier{
		topic:      topic,
		qos:        qos,
		timeout:    10 * time.Second,
		mqttClient: mqttClient,
		logger:     logger,
	}
}

// Name identifies the notifier in logs.
func (m *MQTTNotifier) Name() string {
	return "mqtt"
}

// Notify publishes the alert. The recipient travels inside the payload.
func (m *MQTTNotifier) Notify(ctx context.Context, recipient string, alert models.Alert) error {
	payload, err := json.Marshal(struct {
		Recipient string `json:"recipient"`
		models.Alert
	}{recipient, alert})
	if err != nil {
		return fmt.Errorf("%w: serialize alert: %v", ErrDelivery, err)
	}

	token := m.mqttClient.Publish(m.topic, byte(m.qos), false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrDelivery, ctx.Err())
	case <-time.After(m.timeout):
		return fmt.Errorf("%w: publish to %s timed out", ErrDelivery, m.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: publish to %s: %v", ErrDelivery, m.topic, err)
	}

	m.logger.Info().Str("topic", m.topic).Str("alert_id", alert.ID).Msg("Alert published successfully")
	return nil
}
