package model

import "time"

const (
	RoleStudent    = "student"
	RoleRestaurant = "restaurant"
	RoleManager    = "manager"
)

type Auth struct {
	AuthID       int64      `json:"auth_id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	Role         string     `json:"role"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
