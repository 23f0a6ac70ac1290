package models

import "time"

// Session is an issued access/refresh token pair. Sessions live in redis
// keyed by token; there is no sessions table.
type Session struct {
	UserID       string    `json:"userId"`
	NetID        string    `json:"netId"`
	Role         Role      `json:"role"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	IssuedAt     time.Time `json:"issuedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// IsExpired checks if the access token has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
