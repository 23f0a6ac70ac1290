// internal/workers/matching/find-top-matches/config.go
package findtopmatches

import "time"

type Config struct {
	CacheTTL           time.Duration
	Timeout            time.Duration
	DefaultLimit       int
	SemanticMultiplier float64
	Thesaurus          map[string][]string
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL:     time.Hour,
		Timeout:      30 * time.Second,
		DefaultLimit: 10,
	}
}
