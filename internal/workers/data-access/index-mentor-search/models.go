// internal/workers/data-access/index-mentor-search/models.go
package indexmentorsearch

type Input struct {
	MentorID string `json:"mentorId"`
}

type Output struct {
	MentorID     string `json:"mentorId"`
	Indexed      bool   `json:"indexed"`
	KeywordCount int    `json:"keywordCount"`
}
