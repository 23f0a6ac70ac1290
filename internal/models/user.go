package models

import "time"

// Role identifies which side of the mentorship an account is on.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// ValidRoles is consulted by registration validation.
var ValidRoles = map[string]bool{
	string(RoleMentor): true,
	string(RoleMentee): true,
}

// User represents a platform account
type User struct {
	ID           string    `json:"id" db:"id"`
	NetID        string    `json:"netId" db:"net_id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Role         Role      `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
