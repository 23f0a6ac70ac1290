// internal/workers/data-access/index-mentor-search/config.go
package indexmentorsearch

import "time"

type Config struct {
	// Index is the Elasticsearch index mentor documents land in.
	Index     string
	Timeout   time.Duration
	Thesaurus map[string][]string
}

func LoadConfig() *Config {
	return &Config{
		Index:   "mentors",
		Timeout: 15 * time.Second,
	}
}
