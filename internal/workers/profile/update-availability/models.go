// internal/workers/profile/update-availability/models.go
package updateavailability

type Input struct {
	MentorID           string `json:"mentorId"`
	AvailabilityStatus string `json:"availabilityStatus"`
}

type Output struct {
	MentorID           string `json:"mentorId"`
	AvailabilityStatus string `json:"availabilityStatus"`
	UpdatedAt          string `json:"updatedAt"`
}
