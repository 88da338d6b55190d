// File: /models/photo.go
package models

import "time"

type Photo struct {
	ID            string        `json:"_id" gorm:"primaryKey;size:191"`
	Title         string        `json:"title" gorm:"size:255"`
	FileName      string        `json:"file_name" gorm:"not null;size:500"`
	StorageKey    string        `json:"-" gorm:"size:500"`
	UserID        string        `json:"user_id" gorm:"not null;size:191;index:idx_photos_user_date,priority:1"`
	DateTime      time.Time     `json:"date_time" gorm:"index:idx_photos_user_date,priority:2,sort:desc"`
	ReactionStats ReactionStats `json:"reaction_stats" gorm:"embedded;embeddedPrefix:reaction_"`

	Comments  []Comment  `json:"comments" gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE"`
	Reactions []Reaction `json:"reactions" gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE"`
}

// PhotoResponse is a photo with its comments resolved to their authors.
type PhotoResponse struct {
	ID            string            `json:"_id"`
	UserID        string            `json:"user_id"`
	Title         string            `json:"title"`
	FileName      string            `json:"file_name"`
	DateTime      time.Time         `json:"date_time"`
	Comments      []CommentResponse `json:"comments"`
	ReactionStats ReactionStats     `json:"reaction_stats"`
}
