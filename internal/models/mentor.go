package models

import (
	"time"

	"pathmatch-workers/internal/matching"
)

// Availability states a mentor can publish. Anything else is treated as
// unavailable by ranking.
const (
	AvailabilityAvailable   = "available"
	AvailabilityDND         = "dnd"
	AvailabilityUnavailable = "unavailable"
)

// ValidAvailabilityStatuses is consulted by profile validation.
var ValidAvailabilityStatuses = map[string]bool{
	AvailabilityAvailable:   true,
	AvailabilityDND:         true,
	AvailabilityUnavailable: true,
}

// MentorProfile represents a graduating senior offering mentorship. Name is
// populated from the joined users row; list fields are stored as JSON text
// columns and decoded with DecodeStringList.
type MentorProfile struct {
	ID                     string    `json:"id" db:"id"`
	UserID                 string    `json:"userId" db:"user_id"`
	Name                   string    `json:"name" db:"name"`
	GraduatingYear         int       `json:"graduatingYear" db:"graduating_year"`
	InfoConcentration      string    `json:"infoConcentration" db:"info_concentration"`
	PreferredCommunication []string  `json:"preferredCommunication" db:"preferred_communication"`
	AdvisingTopics         []string  `json:"advisingTopics" db:"advising_topics"`
	CareerPursuing         string    `json:"careerPursuing" db:"career_pursuing"`
	Experiences            string    `json:"experiences" db:"experiences"`
	Biography              string    `json:"bio" db:"bio"`
	CalendlyLink           string    `json:"calendlyLink" db:"calendly_link"`
	AvailabilityStatus     string    `json:"availabilityStatus" db:"availability_status"`
	RatingsFeedback        string    `json:"ratingsFeedback,omitempty" db:"ratings_feedback"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}

// MatchingMentor maps the profile onto the compatibility engine's input.
func (m *MentorProfile) MatchingMentor() matching.Mentor {
	return matching.Mentor{
		ID:                 m.ID,
		Name:               m.Name,
		AdvisingTopics:     m.AdvisingTopics,
		CareerPursuing:     m.CareerPursuing,
		InfoConcentration:  m.InfoConcentration,
		Biography:          m.Biography,
		Experiences:        m.Experiences,
		CalendlyLink:       m.CalendlyLink,
		AvailabilityStatus: m.AvailabilityStatus,
	}
}
