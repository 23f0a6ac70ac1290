package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeStringList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "valid list",
			raw:  `["phd", "job"]`,
			want: []string{"phd", "job"},
		},
		{
			name: "empty list",
			raw:  `[]`,
			want: []string{},
		},
		{
			name: "empty column",
			raw:  "",
			want: []string{},
		},
		{
			name: "json null",
			raw:  `null`,
			want: []string{},
		},
		{
			name: "malformed json",
			raw:  `["phd", `,
			want: []string{},
		},
		{
			name: "wrong shape",
			raw:  `{"topics": ["phd"]}`,
			want: []string{},
		},
		{
			name: "mixed element types",
			raw:  `["phd", 7]`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeStringList(tt.raw))
		})
	}
}

func TestEncodeStringList(t *testing.T) {
	assert.Equal(t, `["phd","job"]`, EncodeStringList([]string{"phd", "job"}))
	assert.Equal(t, `[]`, EncodeStringList(nil))
	assert.Equal(t, `[]`, EncodeStringList([]string{}))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []string{"machine learning", "ux-ui", "I don't know"}
	assert.Equal(t, original, DecodeStringList(EncodeStringList(original)))
}

func TestMatchingConversions(t *testing.T) {
	mentor := &MentorProfile{
		ID:                 "mentor-1",
		Name:               "Andrew Lin",
		AdvisingTopics:     []string{"job"},
		CareerPursuing:     "Software Engineering",
		InfoConcentration:  "Interactive Technologies",
		Biography:          "bio",
		Experiences:        "exp",
		CalendlyLink:       "https://calendly.com/andrew",
		AvailabilityStatus: AvailabilityAvailable,
	}

	converted := mentor.MatchingMentor()
	assert.Equal(t, mentor.ID, converted.ID)
	assert.Equal(t, mentor.Name, converted.Name)
	assert.Equal(t, mentor.AdvisingTopics, converted.AdvisingTopics)
	assert.Equal(t, mentor.AvailabilityStatus, converted.AvailabilityStatus)

	mentee := &MenteeProfile{
		AdvisingNeeds:       []string{"job"},
		CareersInterestedIn: []string{"Software Engineer"},
		InfoConcentration:   "UX",
		Biography:           "bio",
		FieldInterests:      []string{"programming"},
	}

	menteeInput := mentee.MatchingMentee()
	assert.Equal(t, mentee.AdvisingNeeds, menteeInput.AdvisingNeeds)
	assert.Equal(t, mentee.FieldInterests, menteeInput.FieldInterests)
	assert.Equal(t, mentee.InfoConcentration, menteeInput.InfoConcentration)
}
