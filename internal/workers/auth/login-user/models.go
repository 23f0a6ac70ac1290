// internal/workers/auth/login-user/models.go
package loginuser

type Input struct {
	NetID    string `json:"netId"`
	Password string `json:"password"`
}

type Output struct {
	UserID       string `json:"userId"`
	Role         string `json:"role"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expiresAt"`
}
