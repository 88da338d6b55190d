// File: /services/photo_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photoshare-api/logging"
	"photoshare-api/models"
)

type PhotoService struct {
	photos  PhotoStore
	users   UserStore
	storage FileStorage
	cache   ReactionCache
	logger  *zap.Logger
	now     func() time.Time
}

func NewPhotoService(photos PhotoStore, users UserStore, storage FileStorage, c ReactionCache) *PhotoService {
	return &PhotoService{
		photos:  photos,
		users:   users,
		storage: storage,
		cache:   c,
		logger:  logging.WithComponent("photo_service"),
		now:     time.Now,
	}
}

// Upload stores an image for userID and records it as a new photo.
func (s *PhotoService) Upload(ctx context.Context, userID, title string, data []byte) (*models.PhotoResponse, error) {
	owner, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if owner == nil {
		return nil, notFound("User not found")
	}

	stored, err := s.storage.Save(ctx, FolderPhotos, "photo", data)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		ID:         uuid.New().String(),
		Title:      strings.TrimSpace(title),
		FileName:   stored.URL,
		StorageKey: stored.Key,
		UserID:     userID,
		DateTime:   s.now(),
	}
	if err := s.photos.CreatePhoto(ctx, photo); err != nil {
		if delErr := s.storage.Delete(ctx, stored.Key); delErr != nil {
			s.logger.Warn("Failed to clean up upload", zap.String("key", stored.Key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	s.logger.Info("Photo uploaded", zap.String("photo_id", photo.ID), zap.String("user_id", userID))
	return &models.PhotoResponse{
		ID:            photo.ID,
		UserID:        photo.UserID,
		Title:         photo.Title,
		FileName:      photo.FileName,
		DateTime:      photo.DateTime,
		Comments:      []models.CommentResponse{},
		ReactionStats: photo.ReactionStats,
	}, nil
}

func (s *PhotoService) ListAll(ctx context.Context) ([]models.Photo, error) {
	photos, err := s.photos.ListPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// ListByUser returns userID's photos newest first with comment authors resolved.
func (s *PhotoService) ListByUser(ctx context.Context, userID string) ([]models.PhotoResponse, error) {
	owner, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if owner == nil {
		return nil, notFound("User not found")
	}

	photos, err := s.photos.ListPhotosByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	if len(photos) == 0 {
		return nil, notFound("No photos for this user yet")
	}

	var authorIDs []string
	for i := range photos {
		for j := range photos[i].Comments {
			authorIDs = append(authorIDs, photos[i].Comments[j].UserID)
		}
	}
	authors, err := indexUsers(ctx, s.users, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment authors: %w", err)
	}

	out := make([]models.PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, models.PhotoResponse{
			ID:            p.ID,
			UserID:        p.UserID,
			Title:         p.Title,
			FileName:      p.FileName,
			DateTime:      p.DateTime,
			Comments:      resolveComments(p.Comments, authors),
			ReactionStats: p.ReactionStats,
		})
	}
	return out, nil
}

// Delete removes a photo owned by userID along with its file.
func (s *PhotoService) Delete(ctx context.Context, photoID, userID string) error {
	photo, err := s.photos.GetPhoto(ctx, photoID)
	if err != nil {
		return fmt.Errorf("failed to load photo: %w", err)
	}
	if photo == nil {
		return notFound("Photo not found")
	}
	if photo.UserID != userID {
		return forbidden("You can only delete your own photos")
	}

	if err := s.photos.DeletePhoto(ctx, photoID); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if err := s.storage.Delete(ctx, photo.StorageKey); err != nil {
		s.logger.Warn("Failed to remove photo file", zap.String("key", photo.StorageKey), zap.Error(err))
	}
	invalidateReactionCache(ctx, s.cache, s.logger, photoID)

	s.logger.Info("Photo deleted", zap.String("photo_id", photoID), zap.String("user_id", userID))
	return nil
}

func (s *PhotoService) AddComment(ctx context.Context, photoID, userID, text string) (*models.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalidArgument("Comment must not be empty")
	}

	author, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if author == nil {
		return nil, notFound("User not found")
	}

	photo, err := s.photos.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}
	if photo == nil {
		return nil, notFound("Photo not found")
	}

	comment := &models.Comment{
		ID:       uuid.New().String(),
		PhotoID:  photoID,
		UserID:   userID,
		Comment:  text,
		DateTime: s.now(),
	}
	if err := s.photos.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	resp := comment.ToResponse(author)
	return &resp, nil
}

func (s *PhotoService) ListComments(ctx context.Context, photoID string) ([]models.CommentResponse, error) {
	photo, err := s.photos.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}
	if photo == nil {
		return nil, notFound("Photo not found")
	}

	comments, err := s.photos.ListComments(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	ids := make([]string, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].UserID)
	}
	authors, err := indexUsers(ctx, s.users, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment authors: %w", err)
	}
	return resolveComments(comments, authors), nil
}

func resolveComments(comments []models.Comment, authors map[string]models.User) []models.CommentResponse {
	out := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		var author *models.User
		if u, ok := authors[comments[i].UserID]; ok {
			author = &u
		}
		out = append(out, comments[i].ToResponse(author))
	}
	return out
}
