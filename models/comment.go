// File: /models/comment.go
package models

import (
	"time"
)

type Comment struct {
	ID       string    `json:"_id" gorm:"primaryKey;size:191"`
	PhotoID  string    `json:"photo_id" gorm:"not null;size:191;index"`
	UserID   string    `json:"user_id" gorm:"not null;size:191;index"`
	Comment  string    `json:"comment" gorm:"type:text;not null"`
	DateTime time.Time `json:"date_time"`
}

// CommentAuthor is the minimal author projection attached to a comment.
type CommentAuthor struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CommentResponse struct {
	ID       string         `json:"_id"`
	Comment  string         `json:"comment"`
	DateTime time.Time      `json:"date_time"`
	UserID   string         `json:"user_id"`
	User     *CommentAuthor `json:"user"`
}

// ToResponse resolves the comment against its author; author may be nil
// when the account no longer exists.
func (c *Comment) ToResponse(author *User) CommentResponse {
	resp := CommentResponse{
		ID:       c.ID,
		Comment:  c.Comment,
		DateTime: c.DateTime,
		UserID:   c.UserID,
	}
	if author != nil {
		resp.User = &CommentAuthor{
			ID:        author.ID,
			FirstName: author.FirstName,
			LastName:  author.LastName,
		}
	}
	return resp
}
