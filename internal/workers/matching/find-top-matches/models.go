// internal/workers/matching/find-top-matches/models.go
package findtopmatches

import "pathmatch-workers/internal/matching"

type Input struct {
	MenteeID      string          `json:"menteeId"`
	MenteeProfile *MenteeSnapshot `json:"menteeProfile,omitempty"`
	Limit         int             `json:"limit,omitempty"`
}

// MenteeSnapshot is an inline mentee profile for flows that already carry
// the profile as process variables.
type MenteeSnapshot struct {
	AdvisingNeeds       []string `json:"advisingNeeds"`
	CareersInterestedIn []string `json:"careersInterestedIn"`
	InfoConcentration   string   `json:"infoConcentration"`
	Bio                 string   `json:"bio"`
	FieldInterests      []string `json:"fieldInterests"`
}

// MatchCandidate is one ranked mentor with the fields the match flow needs
// to present and act on the recommendation.
type MatchCandidate struct {
	MentorID          string             `json:"mentorId"`
	Name              string             `json:"name"`
	CareerPursuing    string             `json:"careerPursuing"`
	InfoConcentration string             `json:"infoConcentration"`
	CalendlyLink      string             `json:"calendlyLink,omitempty"`
	Score             float64            `json:"score"`
	Quality           string             `json:"quality"`
	Breakdown         matching.Breakdown `json:"breakdown"`
	Reasons           []string           `json:"reasons"`
}

type Output struct {
	MenteeID     string           `json:"menteeId"`
	Matches      []MatchCandidate `json:"matches"`
	TotalMentors int              `json:"totalMentors"`
	Returned     int              `json:"returned"`
}
