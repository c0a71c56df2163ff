package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	CompanyName  *string   `json:"company_name" db:"company_name"`
	ContactName  string    `json:"contact_name" db:"contact_name"`
	Address      string    `json:"address" db:"address"`
	PhoneNumber  *string   `json:"phone_number" db:"phone_number"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile is the projection returned by register/login responses.
// It never carries credential material.
type UserProfile struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	CompanyName *string   `json:"company_name"`
	ContactName string    `json:"contact_name"`
	IsAdmin     bool      `json:"is_admin"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:          u.ID,
		Email:       u.Email,
		CompanyName: u.CompanyName,
		ContactName: u.ContactName,
		IsAdmin:     u.IsAdmin,
	}
}
