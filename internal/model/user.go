package model

import "time"

// Profile holds optional user profile details.
type Profile struct {
	FirstName string   `json:"firstName,omitempty" gorm:"size:255"`
	LastName  string   `json:"lastName,omitempty" gorm:"size:255"`
	Age       int      `json:"age,omitempty"`
	Addresses []string `json:"address,omitempty" gorm:"serializer:json"`
}

// User represents an authenticated user in the system.
// Email is stored lower-cased so the unique index is case-insensitive.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Phone        string    `json:"phone,omitempty" gorm:"size:20"`
	Role         string    `json:"role" gorm:"size:50;default:'user'"`
	RefreshToken string    `json:"-" gorm:"size:512"` // single active token, overwritten on login
	Profile      Profile   `json:"profile" gorm:"embedded;embeddedPrefix:profile_"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
