// internal/workers/auth/logout-user/models.go
package logoutuser

type Input struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type Output struct {
	LoggedOut bool `json:"loggedOut"`
}
