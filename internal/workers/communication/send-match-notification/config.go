// internal/workers/communication/send-match-notification/config.go
package sendmatchnotification

import "time"

type Config struct {
	EmailEnabled bool
	FromEmail    string
	SMSEnabled   bool
	// SMSScoreThreshold gates SMS: only matches scoring at or above it are
	// urgent enough to text about.
	SMSScoreThreshold float64
	Timeout           time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled:      true,
		FromEmail:         "no-reply@pathmatch.example.edu",
		SMSEnabled:        false,
		SMSScoreThreshold: 80,
		Timeout:           10 * time.Second,
	}
}
