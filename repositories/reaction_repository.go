// File: /repositories/reaction_repository.go
package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"photoshare-api/models"
)

// ReactionTx is the view of the reaction tables available inside a locked
// photo transaction.
type ReactionTx interface {
	FindReaction(photoID, userID string) (*models.Reaction, error)
	ListReactions(photoID string) ([]models.Reaction, error)
	CreateReaction(reaction *models.Reaction) error
	UpdateReaction(reaction *models.Reaction) error
	DeleteReaction(id string) error
	SaveStats(photoID string, stats models.ReactionStats) error
}

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// WithLockedPhoto runs fn in a transaction that holds a row lock on the
// photo, so mutations on one photo's reactions are serialized. photo is nil
// when no such photo exists.
func (r *ReactionRepository) WithLockedPhoto(ctx context.Context, photoID string, fn func(tx ReactionTx, photo *models.Photo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		err := lockPhoto(tx, photoID, &photo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fn(&reactionTx{db: tx}, nil)
		}
		if err != nil {
			return err
		}
		return fn(&reactionTx{db: tx}, &photo)
	})
}

// lockPhoto loads the photo row with SELECT ... FOR UPDATE.
func lockPhoto(tx *gorm.DB, photoID string, photo *models.Photo) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(photo, "id = ?", photoID)
}

func (r *ReactionRepository) FindReaction(ctx context.Context, photoID, userID string) (*models.Reaction, error) {
	return (&reactionTx{db: r.db.WithContext(ctx)}).FindReaction(photoID, userID)
}

// ListReactions returns a photo's reactions, optionally restricted to one type.
func (r *ReactionRepository) ListReactions(ctx context.Context, photoID string, filter models.ReactionType) ([]models.Reaction, error) {
	return (&reactionTx{db: r.db.WithContext(ctx)}).listReactions(photoID, filter)
}

// ListReactedPhotoIDs returns the photos userID has a reaction on.
func (r *ReactionRepository) ListReactedPhotoIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("photo_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type reactionTx struct {
	db *gorm.DB
}

func (t *reactionTx) FindReaction(photoID, userID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := t.db.Where("photo_id = ? AND user_id = ?", photoID, userID).First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (t *reactionTx) ListReactions(photoID string) ([]models.Reaction, error) {
	return t.listReactions(photoID, "")
}

func (t *reactionTx) listReactions(photoID string, filter models.ReactionType) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	query := t.db.Where("photo_id = ?", photoID)
	if filter != "" {
		query = query.Where("type = ?", filter)
	}
	if err := query.Order("date_time DESC").Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

func (t *reactionTx) CreateReaction(reaction *models.Reaction) error {
	return t.db.Create(reaction).Error
}

func (t *reactionTx) UpdateReaction(reaction *models.Reaction) error {
	return t.db.Model(&models.Reaction{}).
		Where("id = ?", reaction.ID).
		Updates(map[string]interface{}{
			"type":      reaction.Type,
			"date_time": reaction.DateTime,
		}).Error
}

func (t *reactionTx) DeleteReaction(id string) error {
	return t.db.Delete(&models.Reaction{}, "id = ?", id).Error
}

func (t *reactionTx) SaveStats(photoID string, stats models.ReactionStats) error {
	return t.db.Model(&models.Photo{}).
		Where("id = ?", photoID).
		Updates(map[string]interface{}{
			"reaction_like":  stats.Like,
			"reaction_love":  stats.Love,
			"reaction_haha":  stats.Haha,
			"reaction_wow":   stats.Wow,
			"reaction_sad":   stats.Sad,
			"reaction_angry": stats.Angry,
			"reaction_total": stats.Total,
		}).Error
}
