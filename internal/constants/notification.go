package constants

const (
	DefaultRecipient  = "emergency_contact@example.com"
	DefaultLogFile    = "accident_detection.log"
	DefaultLogLevel   = "info"
	DefaultConfigFile = "configs/config.yaml"
	DefaultStorePath  = "accident_log.json"

	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587

	DefaultBaudRate = 9600

	// AlertSubject is the subject line of emergency emails.
	AlertSubject = "Accident Alert"
)
