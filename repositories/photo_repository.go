// File: /repositories/photo_repository.go
package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"photoshare-api/models"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// GetPhoto loads the photo row without its children.
func (r *PhotoRepository) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepository) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	photos := []models.Photo{}
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("date_time ASC") }).
		Preload("Reactions").
		Order("date_time DESC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ListPhotosByUser returns a user's photos newest first with comments attached.
func (r *PhotoRepository) ListPhotosByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	photos := []models.Photo{}
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("date_time ASC") }).
		Where("user_id = ?", userID).
		Order("date_time DESC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepository) ListPhotoIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&models.Photo{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PhotoRepository) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Omit("Comments", "Reactions").Create(photo).Error
}

// DeletePhoto removes the photo together with its comments and reactions.
func (r *PhotoRepository) DeletePhoto(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Photo{}, "id = ?", id).Error
	})
}

func (r *PhotoRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PhotoRepository) ListComments(ctx context.Context, photoID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", photoID).
		Order("date_time ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
