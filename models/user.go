// File: /models/user.go
package models

import (
	"strings"
	"time"
)

type User struct {
	ID          string    `json:"_id" gorm:"primaryKey;size:191"`
	LoginName   string    `json:"login_name" gorm:"uniqueIndex;not null;size:100"`
	Password    string    `json:"-" gorm:"not null;size:255"`
	FirstName   string    `json:"first_name" gorm:"not null;size:255"`
	LastName    string    `json:"last_name" gorm:"size:255"`
	Email       string    `json:"email,omitempty" gorm:"size:255"`
	Location    string    `json:"location" gorm:"size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Occupation  string    `json:"occupation" gorm:"size:255"`
	Avatar      string    `json:"avatar" gorm:"size:500"`
	AvatarKey   string    `json:"-" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName joins first and last name the way the UI displays it.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PublicProfile is the projection of a user other people are allowed to see.
type PublicProfile struct {
	ID         string `json:"_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Avatar     string `json:"avatar"`
	Occupation string `json:"occupation"`
	Location   string `json:"location"`
}

func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Avatar:     u.Avatar,
		Occupation: u.Occupation,
		Location:   u.Location,
	}
}

// UserSummary is the profile shape returned by user listings.
type UserSummary struct {
	ID          string `json:"_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
	LoginName   string `json:"login_name"`
	Avatar      string `json:"avatar"`
}

func (u *User) ToSummary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
		LoginName:   u.LoginName,
		Avatar:      u.Avatar,
	}
}

// NormalizeLoginName trims surrounding whitespace from a login name.
func NormalizeLoginName(name string) string {
	return strings.TrimSpace(name)
}
