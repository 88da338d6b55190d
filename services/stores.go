// File: /services/stores.go
package services

import (
	"context"

	"photoshare-api/models"
	"photoshare-api/repositories"
)

// Lookups return nil, nil when the record does not exist. Inserts that hit a
// unique key fail with gorm.ErrDuplicatedKey.

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByLoginName(ctx context.Context, loginName string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
}

type FriendshipStore interface {
	GetFriendship(ctx context.Context, id string) (*models.Friendship, error)
	FindBetween(ctx context.Context, a, b string) (*models.Friendship, error)
	CreateFriendship(ctx context.Context, friendship *models.Friendship) error
	Transition(ctx context.Context, friendship *models.Friendship, from models.FriendshipStatus) (bool, error)
	ListByUser(ctx context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error)
	ListIncoming(ctx context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error)
	ListOutgoing(ctx context.Context, userID string, status models.FriendshipStatus) ([]models.Friendship, error)
}

type PhotoStore interface {
	GetPhoto(ctx context.Context, id string) (*models.Photo, error)
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	ListPhotosByUser(ctx context.Context, userID string) ([]models.Photo, error)
	ListPhotoIDs(ctx context.Context) ([]string, error)
	CreatePhoto(ctx context.Context, photo *models.Photo) error
	DeletePhoto(ctx context.Context, id string) error
	AddComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, photoID string) ([]models.Comment, error)
}

type ReactionStore interface {
	WithLockedPhoto(ctx context.Context, photoID string, fn func(tx repositories.ReactionTx, photo *models.Photo) error) error
	FindReaction(ctx context.Context, photoID, userID string) (*models.Reaction, error)
	ListReactions(ctx context.Context, photoID string, filter models.ReactionType) ([]models.Reaction, error)
	ListReactedPhotoIDs(ctx context.Context, userID string) ([]string, error)
}

// indexUsers resolves ids against store in one query.
func indexUsers(ctx context.Context, store UserStore, ids []string) (map[string]models.User, error) {
	users, err := store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
