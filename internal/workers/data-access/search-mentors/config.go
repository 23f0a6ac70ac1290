// internal/workers/data-access/search-mentors/config.go
package searchmentors

import "time"

type Config struct {
	// Index is the Elasticsearch index mentor documents are searched in.
	Index       string
	DefaultSize int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:       "mentors",
		DefaultSize: 10,
		Timeout:     15 * time.Second,
	}
}
