// File: /repositories/user_repository.go
package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"photoshare-api/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser returns nil, nil when no user has the id.
func (r *UserRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("login_name = ?", loginName).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs returns the users that exist among ids, in no particular order.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("first_name ASC, last_name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"location":    user.Location,
		"description": user.Description,
		"occupation":  user.Occupation,
		"avatar":      user.Avatar,
		"avatar_key":  user.AvatarKey,
		"email":       user.Email,
	}).Error
}
