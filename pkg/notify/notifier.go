package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/benmeehan/accident-agent/internal/models"
)

// ErrDelivery wraps every failure to deliver an alert.
var ErrDelivery = errors.New("alert delivery failed")

// Notifier delivers an accident alert to a recipient.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, recipient string, alert models.Alert) error
}

// Multi delivers alerts through each notifier in order.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a fan-out notifier.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Name returns the names of the wrapped notifiers.
func (m *Multi) Name() string {
	name := "multi("
	for i, n := range m.notifiers {
		if i > 0 {
			name += ","
		}
		name += n.Name()
	}
	return name + ")"
}

// Len returns the number of wrapped notifiers.
func (m *Multi) Len() int {
	return len(m.notifiers)
}

// Notify tries every notifier and joins the failures. One failure does not stop the rest.
func (m *Multi) Notify(ctx context.Context, recipient string, alert models.Alert) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, recipient, alert); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}
