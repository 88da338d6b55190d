// File: /models/reaction.go
package models

import (
	"fmt"
	"time"
)

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// ReactionTypes lists every accepted reaction in display order.
var ReactionTypes = []ReactionType{
	ReactionLike,
	ReactionLove,
	ReactionHaha,
	ReactionWow,
	ReactionSad,
	ReactionAngry,
}

func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// ParseReactionType validates a raw reaction name.
func ParseReactionType(raw string) (ReactionType, error) {
	t := ReactionType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("invalid reaction type %q", raw)
	}
	return t, nil
}

// Reaction is one user's emoji response to a photo. At most one exists per
// (photo, user).
type Reaction struct {
	ID       string       `json:"_id" gorm:"primaryKey;size:191"`
	PhotoID  string       `json:"-" gorm:"not null;size:191;uniqueIndex:uk_reactions_photo_user,priority:1"`
	UserID   string       `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_reactions_photo_user,priority:2;index:idx_reactions_user_type,priority:1"`
	Type     ReactionType `json:"type" gorm:"not null;size:20;index:idx_reactions_user_type,priority:2"`
	DateTime time.Time    `json:"date_time"`
}

type ReactionAction string

const (
	ReactionAdded   ReactionAction = "added"
	ReactionRemoved ReactionAction = "removed"
	ReactionUpdated ReactionAction = "updated"
)

// ReactionStats is the cached per-type aggregate of a photo's reactions.
type ReactionStats struct {
	Like  int `json:"like" gorm:"not null;default:0"`
	Love  int `json:"love" gorm:"not null;default:0"`
	Haha  int `json:"haha" gorm:"not null;default:0"`
	Wow   int `json:"wow" gorm:"not null;default:0"`
	Sad   int `json:"sad" gorm:"not null;default:0"`
	Angry int `json:"angry" gorm:"not null;default:0"`
	Total int `json:"total" gorm:"not null;default:0"`
}

func (s *ReactionStats) counter(t ReactionType) *int {
	switch t {
	case ReactionLike:
		return &s.Like
	case ReactionLove:
		return &s.Love
	case ReactionHaha:
		return &s.Haha
	case ReactionWow:
		return &s.Wow
	case ReactionSad:
		return &s.Sad
	case ReactionAngry:
		return &s.Angry
	}
	return nil
}

// Count returns the counter for t, zero for unknown types.
func (s ReactionStats) Count(t ReactionType) int {
	if c := s.counter(t); c != nil {
		return *c
	}
	return 0
}

// Add records a new reaction of type t.
func (s *ReactionStats) Add(t ReactionType) {
	if c := s.counter(t); c != nil {
		*c++
		s.Total++
	}
}

// Remove forgets a reaction of type t. Counters never go below zero.
func (s *ReactionStats) Remove(t ReactionType) {
	if c := s.counter(t); c != nil && *c > 0 {
		*c--
	}
	if s.Total > 0 {
		s.Total--
	}
}

// Move shifts one reaction from one type to another; the total is unchanged.
func (s *ReactionStats) Move(from, to ReactionType) {
	if c := s.counter(from); c != nil && *c > 0 {
		*c--
	}
	if c := s.counter(to); c != nil {
		*c++
	}
}

// StatsFromReactions rebuilds the aggregate from the authoritative records.
func StatsFromReactions(reactions []Reaction) ReactionStats {
	var stats ReactionStats
	for _, r := range reactions {
		stats.Add(r.Type)
	}
	return stats
}

// Reactor is the part of a user shown next to their reaction.
type Reactor struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// ReactionWithUser is a reaction with the reacting user resolved; User is nil
// when the account no longer exists.
type ReactionWithUser struct {
	ID       string       `json:"_id"`
	Type     ReactionType `json:"type"`
	DateTime time.Time    `json:"date_time"`
	UserID   string       `json:"user_id"`
	User     *Reactor     `json:"user"`
}

// ReactionResult is returned by every reaction mutation.
type ReactionResult struct {
	Action       ReactionAction `json:"action"`
	ReactionType ReactionType   `json:"reactionType,omitempty"`
	RemovedType  ReactionType   `json:"removedType,omitempty"`
	Stats        ReactionStats  `json:"stats"`
}

type PhotoReactions struct {
	Reactions []ReactionWithUser `json:"reactions"`
	Stats     ReactionStats      `json:"stats"`
}

type UserReaction struct {
	Type     ReactionType `json:"type"`
	DateTime time.Time    `json:"date_time"`
}

type UserReactionStatus struct {
	HasReaction bool          `json:"hasReaction"`
	Reaction    *UserReaction `json:"reaction"`
}
