// internal/workers/communication/send-match-notification/models.go
package sendmatchnotification

type Input struct {
	RecipientID      string    `json:"recipientId"`
	RecipientType    string    `json:"recipientType"`    // mentor | mentee
	NotificationType string    `json:"notificationType"` // match_created | match_confirmed
	MatchID          string    `json:"matchId"`
	Metadata         *Metadata `json:"metadata,omitempty"`
}

// Metadata carries the match details the templates render.
type Metadata struct {
	MenteeName    string  `json:"menteeName,omitempty"`
	MentorName    string  `json:"mentorName,omitempty"`
	Score         float64 `json:"score,omitempty"`
	SchedulingURL string  `json:"schedulingUrl,omitempty"`
}

type Output struct {
	EmailSent  bool   `json:"emailSent"`
	SMSSent    bool   `json:"smsSent"`
	Skipped    bool   `json:"skipped"`
	SkipReason string `json:"skipReason,omitempty"`
}
