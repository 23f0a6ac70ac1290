// internal/workers/match/create-match-record/models.go
package creatematchrecord

type Input struct {
	MentorID           string  `json:"mentorId"`
	MenteeID           string  `json:"menteeId"`
	CompatibilityScore float64 `json:"compatibilityScore"`
}

type Output struct {
	MatchID   string `json:"matchId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}
