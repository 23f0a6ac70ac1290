// internal/workers/match/update-match-status/models.go
package updatematchstatus

type Input struct {
	MatchID string `json:"matchId"`
	Status  string `json:"status"`
}

type Output struct {
	MatchID   string `json:"matchId"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
	// SchedulingURL carries the mentor's calendly link when the match is
	// confirmed so the flow can surface it to the mentee.
	SchedulingURL string `json:"schedulingUrl,omitempty"`
}
