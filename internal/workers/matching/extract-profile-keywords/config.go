// internal/workers/matching/extract-profile-keywords/config.go
package extractprofilekeywords

import "time"

type Config struct {
	Timeout   time.Duration
	Thesaurus map[string][]string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
