// internal/workers/auth/refresh-session/models.go
package refreshsession

type Input struct {
	RefreshToken string `json:"refreshToken"`
}

type Output struct {
	UserID       string `json:"userId"`
	Role         string `json:"role"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expiresAt"`
}
