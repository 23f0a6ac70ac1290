// internal/workers/matching/calculate-compatibility/config.go
package calculatecompatibility

import "time"

type Config struct {
	CacheTTL           time.Duration
	Timeout            time.Duration
	SemanticMultiplier float64
	Thesaurus          map[string][]string
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: time.Hour,
		Timeout:  30 * time.Second,
	}
}
