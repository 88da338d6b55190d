// File: /services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"photoshare-api/logging"
	"photoshare-api/models"
)

type RegisterInput struct {
	LoginName   string
	Password    string
	FirstName   string
	LastName    string
	Location    string
	Description string
	Occupation  string
	Email       string
}

// ProfileUpdate carries the editable profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Location    *string
	Description *string
	Occupation  *string
	Email       *string
}

// ReactorRefresher is told when a user's public name or avatar changes.
type ReactorRefresher interface {
	RefreshReactor(ctx context.Context, userID string) error
}

type UserService struct {
	users    UserStore
	tokens   *TokenService
	storage  FileStorage
	mailer   WelcomeMailer
	reactors ReactorRefresher
	logger   *zap.Logger
	now      func() time.Time
}

// NewUserService wires account handling. mailer and reactors may be nil.
func NewUserService(users UserStore, tokens *TokenService, storage FileStorage, mailer WelcomeMailer, reactors ReactorRefresher) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		storage:  storage,
		mailer:   mailer,
		reactors: reactors,
		logger:   logging.WithComponent("user_service"),
		now:      time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.LoginName = models.NormalizeLoginName(in.LoginName)
	if in.LoginName == "" || in.Password == "" {
		return nil, invalidArgument("login_name and password are required")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return nil, invalidArgument("first_name is required")
	}

	existing, err := s.users.GetUserByLoginName(ctx, in.LoginName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, conflict("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:          uuid.New().String(),
		LoginName:   in.LoginName,
		Password:    string(hashed),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Location:    in.Location,
		Description: in.Description,
		Occupation:  in.Occupation,
		Email:       strings.TrimSpace(in.Email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("User already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID), zap.String("login_name", user.LoginName))

	if s.mailer != nil && user.Email != "" {
		go func(email, name string) {
			if err := s.mailer.SendWelcomeEmail(email, name); err != nil {
				s.logger.Warn("Failed to send welcome email", zap.String("email", email), zap.Error(err))
			}
		}(user.Email, user.FullName())
	}

	return user, nil
}

// Login checks credentials and returns a signed token for the user.
func (s *UserService) Login(ctx context.Context, loginName, password string) (string, *models.User, error) {
	user, err := s.users.GetUserByLoginName(ctx, models.NormalizeLoginName(loginName))
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, unauthorized("Invalid login name or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&user.FirstName, update.FirstName)
	apply(&user.LastName, update.LastName)
	apply(&user.Location, update.Location)
	apply(&user.Description, update.Description)
	apply(&user.Occupation, update.Occupation)
	apply(&user.Email, update.Email)

	if user.FirstName == "" {
		return nil, invalidArgument("first_name must not be empty")
	}
	user.UpdatedAt = s.now()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.refreshReactor(ctx, user.ID)
	return user, nil
}

// UpdateAvatar stores a new avatar image and removes the previous one.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, data []byte) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.Save(ctx, FolderAvatars, "avatar", data)
	if err != nil {
		return nil, err
	}

	previous := user.AvatarKey
	user.Avatar = stored.URL
	user.AvatarKey = stored.Key
	user.UpdatedAt = s.now()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		if delErr := s.storage.Delete(ctx, stored.Key); delErr != nil {
			s.logger.Warn("Failed to clean up avatar", zap.String("key", stored.Key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	s.refreshReactor(ctx, user.ID)

	if previous != "" {
		if err := s.storage.Delete(ctx, previous); err != nil {
			s.logger.Warn("Failed to remove old avatar", zap.String("key", previous), zap.Error(err))
		}
	}
	return user, nil
}

func (s *UserService) refreshReactor(ctx context.Context, userID string) {
	if s.reactors == nil {
		return
	}
	if err := s.reactors.RefreshReactor(ctx, userID); err != nil {
		s.logger.Warn("Failed to refresh cached reactions", zap.String("user_id", userID), zap.Error(err))
	}
}
