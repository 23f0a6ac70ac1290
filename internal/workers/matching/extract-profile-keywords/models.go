// internal/workers/matching/extract-profile-keywords/models.go
package extractprofilekeywords

type Input struct {
	Text string `json:"text"`
	// Expand defaults to true; synonym expansion is skipped only when the
	// flow asks for raw extraction explicitly.
	Expand *bool `json:"expand,omitempty"`
}

type Output struct {
	Keywords      []string `json:"keywords"`
	BaseCount     int      `json:"baseCount"`
	ExpandedCount int      `json:"expandedCount"`
}
