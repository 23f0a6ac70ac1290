package models

import (
	"time"

	"pathmatch-workers/internal/matching"
)

// MenteeProfile represents an underclassman seeking mentorship. List fields
// are stored as JSON text columns and decoded with DecodeStringList.
type MenteeProfile struct {
	ID                     string    `json:"id" db:"id"`
	UserID                 string    `json:"userId" db:"user_id"`
	Name                   string    `json:"name" db:"name"`
	GraduatingYear         int       `json:"graduatingYear" db:"graduating_year"`
	InfoConcentration      string    `json:"infoConcentration" db:"info_concentration"`
	PreferredCommunication []string  `json:"preferredCommunication" db:"preferred_communication"`
	AdvisingNeeds          []string  `json:"advisingNeeds" db:"advising_needs"`
	CareersInterestedIn    []string  `json:"careersInterestedIn" db:"careers_interested_in"`
	FieldInterests         []string  `json:"fieldInterests" db:"field_interests"`
	Biography              string    `json:"bio" db:"bio"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}

// MatchingMentee maps the profile onto the compatibility engine's input.
func (m *MenteeProfile) MatchingMentee() matching.Mentee {
	return matching.Mentee{
		AdvisingNeeds:       m.AdvisingNeeds,
		CareersInterestedIn: m.CareersInterestedIn,
		InfoConcentration:   m.InfoConcentration,
		Biography:           m.Biography,
		FieldInterests:      m.FieldInterests,
	}
}
