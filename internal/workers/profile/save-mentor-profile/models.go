// internal/workers/profile/save-mentor-profile/models.go
package savementorprofile

type Input struct {
	UserID                 string   `json:"userId"`
	GraduatingYear         int      `json:"graduatingYear"`
	InfoConcentration      string   `json:"infoConcentration"`
	PreferredCommunication []string `json:"preferredCommunication"`
	AdvisingTopics         []string `json:"advisingTopics"`
	CareerPursuing         string   `json:"careerPursuing"`
	Experiences            string   `json:"experiences"`
	Bio                    string   `json:"bio"`
	CalendlyLink           string   `json:"calendlyLink"`
	AvailabilityStatus     string   `json:"availabilityStatus"`
	RatingsFeedback        string   `json:"ratingsFeedback"`
}

type Output struct {
	MentorID string `json:"mentorId"`
	Created  bool   `json:"created"`
}
