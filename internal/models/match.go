package models

import "time"

// Match lifecycle states.
const (
	MatchStatusPending   = "pending"
	MatchStatusConfirmed = "confirmed"
	MatchStatusCompleted = "completed"
	MatchStatusCancelled = "cancelled"
)

// ValidMatchStatuses is consulted by match-status validation.
var ValidMatchStatuses = map[string]bool{
	MatchStatusPending:   true,
	MatchStatusConfirmed: true,
	MatchStatusCompleted: true,
	MatchStatusCancelled: true,
}

// Match represents a mentee/mentor pairing. The (mentor_id, mentee_id) pair
// is unique; repeated requests surface as duplicates instead of new rows.
type Match struct {
	ID                 string     `json:"id" db:"id"`
	MentorID           string     `json:"mentorId" db:"mentor_id"`
	MenteeID           string     `json:"menteeId" db:"mentee_id"`
	CompatibilityScore float64    `json:"compatibilityScore" db:"compatibility_score"`
	Status             string     `json:"status" db:"status"`
	MeetingScheduled   bool       `json:"meetingScheduled" db:"meeting_scheduled"`
	MeetingDate        *time.Time `json:"meetingDate,omitempty" db:"meeting_date"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`
}
