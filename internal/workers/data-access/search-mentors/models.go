// internal/workers/data-access/search-mentors/models.go
package searchmentors

type Input struct {
	Query        string `json:"query"`
	Availability string `json:"availability,omitempty"`
	Size         int    `json:"size,omitempty"`
}

// Hit is one search result with its Elasticsearch relevance score.
type Hit struct {
	MentorID      string   `json:"mentorId"`
	Name          string   `json:"name"`
	Concentration string   `json:"concentration,omitempty"`
	Career        string   `json:"career,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	Availability  string   `json:"availability,omitempty"`
	Score         float64  `json:"score"`
}

type Output struct {
	Hits      []Hit   `json:"hits"`
	TotalHits int64   `json:"totalHits"`
	MaxScore  float64 `json:"maxScore"`
	Took      int64   `json:"took"` // milliseconds reported by Elasticsearch
}
