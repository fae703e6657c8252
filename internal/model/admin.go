package model

import "time"

const RoleAdmin = "admin"

// Admin is the single operator credential of an organization. Password holds
// only the bcrypt hash, never the plaintext.
type Admin struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	ID        int64     `json:"id,string"`
}
