package models

import "time"

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusDeclined FriendshipStatus = "declined"
	FriendshipStatusBlocked  FriendshipStatus = "blocked"
)

func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipStatusPending, FriendshipStatusAccepted, FriendshipStatusDeclined, FriendshipStatusBlocked:
		return true
	}
	return false
}

// IsResponse reports whether s is a status the recipient may answer a request with.
func (s FriendshipStatus) IsResponse() bool {
	return s == FriendshipStatusAccepted || s == FriendshipStatusDeclined
}

// Friendship is the directed request record between two users. At most one
// record exists per unordered pair.
type Friendship struct {
	ID          string           `json:"_id" gorm:"primaryKey;size:191"`
	RequesterID string           `json:"requester_id" gorm:"not null;size:191;uniqueIndex:uk_friendships_pair,priority:1;index:idx_friendships_requester_status,priority:1"`
	RecipientID string           `json:"recipient_id" gorm:"not null;size:191;uniqueIndex:uk_friendships_pair,priority:2;index:idx_friendships_recipient_status,priority:1"`
	Status      FriendshipStatus `json:"status" gorm:"not null;default:'pending';size:20;index:idx_friendships_requester_status,priority:2;index:idx_friendships_recipient_status,priority:2"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Requester User `json:"-" gorm:"foreignKey:RequesterID"`
	Recipient User `json:"-" gorm:"foreignKey:RecipientID"`
}

// Involves reports whether userID is either party of the record.
func (f *Friendship) Involves(userID string) bool {
	return f.RequesterID == userID || f.RecipientID == userID
}

// Counterpart returns the id of the party that is not userID.
func (f *Friendship) Counterpart(userID string) string {
	if f.RequesterID == userID {
		return f.RecipientID
	}
	return f.RequesterID
}

// FriendRequestResponse is a pending request with the requester resolved.
type FriendRequestResponse struct {
	ID          string           `json:"_id"`
	RequesterID string           `json:"requester_id"`
	RecipientID string           `json:"recipient_id"`
	Requester   *PublicProfile   `json:"requester"`
	Recipient   *PublicProfile   `json:"recipient,omitempty"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FriendshipStatusResponse describes the relationship between the caller and another user.
type FriendshipStatusResponse struct {
	IsFriend           bool   `json:"is_friend"`
	HasPendingSent     bool   `json:"has_pending_sent"`
	HasPendingReceived bool   `json:"has_pending_received"`
	FriendshipID       string `json:"friendship_id,omitempty"`
}
