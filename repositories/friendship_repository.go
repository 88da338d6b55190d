// File: /repositories/friendship_repository.go
package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"photoshare-api/models"
)

type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) GetFriendship(ctx context.Context, id string) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).First(&friendship, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &friendship, nil
}

// FindBetween returns the record linking a and b in either direction.
func (r *FriendshipRepository) FindBetween(ctx context.Context, a, b string) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)", a, b, b, a).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &friendship, nil
}

func (r *FriendshipRepository) CreateFriendship(ctx context.Context, friendship *models.Friendship) error {
	return r.db.WithContext(ctx).Create(friendship).Error
}

// Transition rewrites the parties, status and timestamps of a record, but
// only while it is still in status from. It reports whether the row was
// updated.
func (r *FriendshipRepository) Transition(ctx context.Context, friendship *models.Friendship, from models.FriendshipStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ? AND status = ?", friendship.ID, from).
		Updates(map[string]interface{}{
			"requester_id": friendship.RequesterID,
			"recipient_id": friendship.RecipientID,
			"status":       friendship.Status,
			"created_at":   friendship.CreatedAt,
			"updated_at":   friendship.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListByUser returns records with the given status where userID is either party.
func (r *FriendshipRepository) ListByUser(ctx context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error) {
	friendships := []models.Friendship{}
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?", userID, userID, status).
		Order("updated_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

// ListIncoming returns records addressed to userID, newest first.
func (r *FriendshipRepository) ListIncoming(ctx context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error) {
	friendships := []models.Friendship{}
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", userID, status).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

// ListOutgoing returns records sent by userID, newest first.
func (r *FriendshipRepository) ListOutgoing(ctx context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error) {
	friendships := []models.Friendship{}
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, status).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}
