// internal/workers/profile/save-mentee-profile/models.go
package savementeeprofile

import (
	"encoding/json"
	"strings"
)

type Input struct {
	UserID                 string   `json:"userId"`
	GraduatingYear         int      `json:"graduatingYear"`
	InfoConcentration      string   `json:"infoConcentration"`
	PreferredCommunication []string `json:"preferredCommunication"`
	AdvisingNeeds          []string `json:"advisingNeeds"`
	// CareersInterestedIn accepts either a JSON array or a single
	// comma-separated string; the intake form has shipped both shapes.
	CareersInterestedIn json.RawMessage `json:"careersInterestedIn"`
	FieldInterests      []string        `json:"fieldInterests"`
	Bio                 string          `json:"bio"`
}

type Output struct {
	MenteeID string `json:"menteeId"`
	Created  bool   `json:"created"`
}

// Careers normalizes the flexible careersInterestedIn field into a list.
// Malformed payloads yield an empty list, consistent with how list columns
// are decoded everywhere else.
func (in *Input) Careers() []string {
	if len(in.CareersInterestedIn) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(in.CareersInterestedIn, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	var single string
	if err := json.Unmarshal(in.CareersInterestedIn, &single); err == nil {
		parts := strings.Split(single, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	return []string{}
}
