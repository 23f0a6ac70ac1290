// internal/workers/auth/register-user/config.go
package registeruser

import "time"

type Config struct {
	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		BcryptCost: 12,
		Timeout:    10 * time.Second,
	}
}
