// File: /services/friend_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"photoshare-api/logging"
	"photoshare-api/models"
	"photoshare-api/telemetry"
)

// FriendService owns the friend request state machine. Each unordered pair
// of users has at most one record: pending until the recipient answers,
// then accepted or declined. A declined record may be re-opened by either
// party sending a new request.
type FriendService struct {
	users       UserStore
	friendships FriendshipStore
	publicURL   string
	logger      *zap.Logger
	now         func() time.Time
}

func NewFriendService(users UserStore, friendships FriendshipStore, publicURL string) *FriendService {
	return &FriendService{
		users:       users,
		friendships: friendships,
		publicURL:   strings.TrimRight(publicURL, "/"),
		logger:      logging.WithComponent("friend_service"),
		now:         time.Now,
	}
}

// SendRequest creates a pending request from requesterID to recipientID.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, recipientID string) (*models.Friendship, error) {
	ctx, span := telemetry.StartSpan(ctx, "FriendService.SendRequest")
	defer span.End()

	if recipientID == "" {
		return nil, invalidArgument("recipientId is required")
	}
	if requesterID == recipientID {
		return nil, invalidArgument("Cannot send a friend request to yourself")
	}

	recipient, err := s.users.GetUser(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	if recipient == nil {
		return nil, notFound("User not found")
	}

	existing, err := s.friendships.FindBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up friendship: %w", err)
	}

	now := s.now()
	if existing != nil {
		switch existing.Status {
		case models.FriendshipStatusAccepted:
			return nil, conflict("Already friends")
		case models.FriendshipStatusPending:
			return nil, conflict("Friend request already sent")
		case models.FriendshipStatusBlocked:
			return nil, conflict("Friend request not allowed")
		}

		reopened := *existing
		reopened.RequesterID = requesterID
		reopened.RecipientID = recipientID
		reopened.Status = models.FriendshipStatusPending
		reopened.CreatedAt = now
		reopened.UpdatedAt = now

		ok, err := s.friendships.Transition(ctx, &reopened, models.FriendshipStatusDeclined)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, conflict("Friend request already sent")
			}
			return nil, fmt.Errorf("failed to re-open friend request: %w", err)
		}
		if !ok {
			return nil, conflict("Friend request already sent")
		}

		s.logger.Info("Friend request re-opened",
			zap.String("friendship_id", reopened.ID),
			zap.String("requester_id", requesterID),
			zap.String("recipient_id", recipientID))
		telemetry.RecordFriendship(ctx, string(models.FriendshipStatusPending))
		return &reopened, nil
	}

	friendship := &models.Friendship{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.FriendshipStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.friendships.CreateFriendship(ctx, friendship); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Friend request already sent")
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	s.logger.Info("Friend request sent",
		zap.String("friendship_id", friendship.ID),
		zap.String("requester_id", requesterID),
		zap.String("recipient_id", recipientID))
	telemetry.RecordFriendship(ctx, string(models.FriendshipStatusPending))
	return friendship, nil
}

// Respond lets the recipient of a pending request accept or decline it.
func (s *FriendService) Respond(ctx context.Context, friendshipID, responderID string, action models.FriendshipStatus) (*models.Friendship, error) {
	ctx, span := telemetry.StartSpan(ctx, "FriendService.Respond")
	defer span.End()

	if !action.IsResponse() {
		return nil, invalidArgument("action must be accepted or declined")
	}

	friendship, err := s.friendships.GetFriendship(ctx, friendshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friend request: %w", err)
	}
	if friendship == nil ||
		friendship.Status != models.FriendshipStatusPending ||
		friendship.RecipientID != responderID {
		return nil, notFound("Friend request not found")
	}

	friendship.Status = action
	friendship.UpdatedAt = s.now()

	ok, err := s.friendships.Transition(ctx, friendship, models.FriendshipStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update friend request: %w", err)
	}
	if !ok {
		// answered concurrently
		return nil, notFound("Friend request not found")
	}

	s.logger.Info("Friend request answered",
		zap.String("friendship_id", friendship.ID),
		zap.String("status", string(action)))
	telemetry.RecordFriendship(ctx, string(action))
	return friendship, nil
}

// ListFriends returns the public profiles of everyone userID is friends with.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]models.PublicProfile, error) {
	friends, err := s.friendUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.PublicProfile, 0, len(friends))
	for i := range friends {
		profiles = append(profiles, friends[i].ToPublicProfile())
	}
	return profiles, nil
}

// ListFriendSummaries is ListFriends with the fuller listing projection.
func (s *FriendService) ListFriendSummaries(ctx context.Context, userID string) ([]models.UserSummary, error) {
	friends, err := s.friendUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.UserSummary, 0, len(friends))
	for i := range friends {
		summaries = append(summaries, friends[i].ToSummary())
	}
	return summaries, nil
}

func (s *FriendService) friendUsers(ctx context.Context, userID string) ([]models.User, error) {
	friendships, err := s.friendships.ListByUser(ctx, userID, models.FriendshipStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	ids := make([]string, 0, len(friendships))
	for i := range friendships {
		ids = append(ids, friendships[i].Counterpart(userID))
	}
	byID, err := indexUsers(ctx, s.users, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}

	friends := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			friends = append(friends, u)
		}
	}
	return friends, nil
}

// ListPendingRequests returns requests waiting on userID, newest first.
func (s *FriendService) ListPendingRequests(ctx context.Context, userID string) ([]models.FriendRequestResponse, error) {
	friendships, err := s.friendships.ListIncoming(ctx, userID, models.FriendshipStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return s.toRequestResponses(ctx, friendships, true)
}

// ListSentRequests returns requests userID is still waiting on, newest first.
func (s *FriendService) ListSentRequests(ctx context.Context, userID string) ([]models.FriendRequestResponse, error) {
	friendships, err := s.friendships.ListOutgoing(ctx, userID, models.FriendshipStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent requests: %w", err)
	}
	return s.toRequestResponses(ctx, friendships, false)
}

func (s *FriendService) toRequestResponses(ctx context.Context, friendships []models.Friendship, incoming bool) ([]models.FriendRequestResponse, error) {
	ids := make([]string, 0, len(friendships))
	for i := range friendships {
		if incoming {
			ids = append(ids, friendships[i].RequesterID)
		} else {
			ids = append(ids, friendships[i].RecipientID)
		}
	}
	byID, err := indexUsers(ctx, s.users, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	responses := make([]models.FriendRequestResponse, 0, len(friendships))
	for _, f := range friendships {
		resp := models.FriendRequestResponse{
			ID:          f.ID,
			RequesterID: f.RequesterID,
			RecipientID: f.RecipientID,
			Status:      f.Status,
			CreatedAt:   f.CreatedAt,
			UpdatedAt:   f.UpdatedAt,
		}
		if incoming {
			if u, ok := byID[f.RequesterID]; ok {
				p := u.ToPublicProfile()
				resp.Requester = &p
			}
		} else if u, ok := byID[f.RecipientID]; ok {
			p := u.ToPublicProfile()
			resp.Recipient = &p
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ListDiscoverable returns every user other than userID who is not already
// an accepted friend. Pending and declined relationships do not hide a user.
func (s *FriendService) ListDiscoverable(ctx context.Context, userID string) ([]models.UserSummary, error) {
	friendships, err := s.friendships.ListByUser(ctx, userID, models.FriendshipStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	excluded := map[string]bool{userID: true}
	for i := range friendships {
		excluded[friendships[i].Counterpart(userID)] = true
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	available := make([]models.UserSummary, 0, len(users))
	for i := range users {
		if excluded[users[i].ID] {
			continue
		}
		available = append(available, users[i].ToSummary())
	}
	return available, nil
}

// Status describes how userID relates to targetID.
func (s *FriendService) Status(ctx context.Context, userID, targetID string) (*models.FriendshipStatusResponse, error) {
	friendship, err := s.friendships.FindBetween(ctx, userID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up friendship: %w", err)
	}

	status := &models.FriendshipStatusResponse{}
	if friendship == nil {
		return status, nil
	}
	status.FriendshipID = friendship.ID
	switch friendship.Status {
	case models.FriendshipStatusAccepted:
		status.IsFriend = true
	case models.FriendshipStatusPending:
		status.HasPendingSent = friendship.RequesterID == userID
		status.HasPendingReceived = friendship.RecipientID == userID
	}
	return status, nil
}

// FriendLink is the add-friend URL encoded in a user's QR code.
func (s *FriendService) FriendLink(userID string) string {
	return fmt.Sprintf("%s/add-friend/%s", s.publicURL, userID)
}
