package mocks

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/mock"
)

// MQTTClient is a mock implementation of the MQTTClient interface
type MQTTClient struct {
	mock.Mock
}

func (m *MQTTClient) Connect() mqtt.Token {
	args := m.Called()
	return args.Get(0).(mqtt.Token)
}

func (m *MQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	args := m.Called(topic, qos, retained, payload)
	return args.Get(0).(mqtt.Token)
}

func (m *MQTTClient) Disconnect(quiesce uint) {
	m.Called(quiesce)
}

// Token is a completed mqtt.Token carrying err.
type Token struct {
	Err error
}

// NewToken returns a token that is already done.
func NewToken(err error) *Token {
	return &Token{Err: err}
}

func (t *Token) Wait() bool                     { return true }
func (t *Token) WaitTimeout(time.Duration) bool { return true }
func (t *Token) Error() error                   { return t.Err }

func (t *Token) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// PendingToken never completes.
type PendingToken struct{}

func (PendingToken) Wait() bool                     { return false }
func (PendingToken) WaitTimeout(time.Duration) bool { return false }
func (PendingToken) Error() error                   { return nil }
func (PendingToken) Done() <-chan struct{}          { return make(chan struct{}) }
