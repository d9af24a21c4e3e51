package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/benmeehan/accident-agent/internal/constants"
	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/rs/zerolog"
)

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailConfig holds the SMTP account used to send alerts.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// EmailNotifier sends alerts over SMTP. smtp.SendMail upgrades to STARTTLS when the server offers it.
type EmailNotifier struct {
	config   EmailConfig
	sendMail SendMailFunc
	logger   zerolog.Logger
}

// NewEmailNotifier creates an EmailNotifier. A nil sendMail uses smtp.SendMail.
func NewEmailNotifier(config EmailConfig, sendMail SendMailFunc, logger zerolog.Logger) *EmailNotifier {
	if sendMail == nil {
		sendMail = smtp.SendMail
	}
	if config.Sender == "" {
		config.Sender = config.Username
	}
	return &EmailNotifier{
		config:   config,
		sendMail: sendMail,
		logger:   logger,
	}
}

// Name identifies the notifier in logs.
func (e *EmailNotifier) Name() string {
	return "email"
}

// Notify emails the alert to recipient.
func (e *EmailNotifier) Notify(ctx context.Context, recipient string, alert models.Alert) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	msg, err := BuildMessage(recipient, alert)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	addr := net.JoinHostPort(e.config.Host, strconv.Itoa(e.config.Port))
	var auth smtp.Auth
	if e.config.Username != "" {
		auth = smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)
	}

	if err := e.sendMail(addr, auth, e.config.Sender, []string{recipient}, msg); err != nil {
		return fmt.Errorf("%w: send to %s via %s: %v", ErrDelivery, recipient, addr, err)
	}

	e.logger.Info().Str("recipient", recipient).Str("alert_id", alert.ID).Msg("Notification sent")
	return nil
}

// BuildMessage renders the alert email: subject header, blank line, then the sample as indented JSON.
func BuildMessage(recipient string, alert models.Alert) ([]byte, error) {
	details, err := json.MarshalIndent(alert.Sample, "", "    ")
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", constants.AlertSubject)
	b.WriteString("\r\n")
	b.WriteString("Accident detected!\r\n")
	if alert.VehicleID != "" {
		fmt.Fprintf(&b, "Vehicle: %s\r\n", alert.VehicleID)
	}
	if alert.Address != "" {
		fmt.Fprintf(&b, "Location: %s\r\n", alert.Address)
	}
	b.WriteString("Details:\r\n")
	b.WriteString(strings.ReplaceAll(string(details), "\n", "\r\n"))
	b.WriteString("\r\n")

	return []byte(b.String()), nil
}
