// internal/workers/auth/register-user/models.go
package registeruser

type Input struct {
	NetID    string `json:"netId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

type Output struct {
	UserID string `json:"userId"`
	NetID  string `json:"netId"`
	Role   string `json:"role"`
}
