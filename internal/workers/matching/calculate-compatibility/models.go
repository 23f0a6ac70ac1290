// internal/workers/matching/calculate-compatibility/models.go
package calculatecompatibility

import "pathmatch-workers/internal/matching"

type Input struct {
	MenteeID      string          `json:"menteeId"`
	MentorID      string          `json:"mentorId"`
	MenteeProfile *MenteeSnapshot `json:"menteeProfile,omitempty"`
	MentorProfile *MentorSnapshot `json:"mentorProfile,omitempty"`
}

// MenteeSnapshot is an inline mentee profile for flows that already carry
// the profile as process variables and want to skip the lookup.
type MenteeSnapshot struct {
	AdvisingNeeds       []string `json:"advisingNeeds"`
	CareersInterestedIn []string `json:"careersInterestedIn"`
	InfoConcentration   string   `json:"infoConcentration"`
	Bio                 string   `json:"bio"`
	FieldInterests      []string `json:"fieldInterests"`
}

// MentorSnapshot is the mentor-side equivalent of MenteeSnapshot.
type MentorSnapshot struct {
	Name               string   `json:"name"`
	AdvisingTopics     []string `json:"advisingTopics"`
	CareerPursuing     string   `json:"careerPursuing"`
	InfoConcentration  string   `json:"infoConcentration"`
	Bio                string   `json:"bio"`
	Experiences        string   `json:"experiences"`
	CalendlyLink       string   `json:"calendlyLink"`
	AvailabilityStatus string   `json:"availabilityStatus"`
}

type Output struct {
	MenteeID  string             `json:"menteeId"`
	MentorID  string             `json:"mentorId"`
	Score     float64            `json:"score"`
	Quality   string             `json:"quality"`
	Breakdown matching.Breakdown `json:"breakdown"`
	Reasons   []string           `json:"reasons"`
}
