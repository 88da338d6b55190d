// File: /services/reaction_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"photoshare-api/cache"
	"photoshare-api/logging"
	"photoshare-api/models"
	"photoshare-api/repositories"
	"photoshare-api/telemetry"
)

// ReactionCache is the part of the Redis cache the reaction listings use.
// *cache.Cache implements it.
type ReactionCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}) error
	Incr(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, keys ...string) error
}

// ReactionService keeps each photo's reactions and its cached reaction
// stats in step. Every mutation runs under the photo's row lock.
type ReactionService struct {
	photos    PhotoStore
	reactions ReactionStore
	users     UserStore
	cache     ReactionCache
	logger    *zap.Logger
	now       func() time.Time
}

// NewReactionService wires reaction handling. c may be nil to disable caching.
func NewReactionService(photos PhotoStore, reactions ReactionStore, users UserStore, c ReactionCache) *ReactionService {
	return &ReactionService{
		photos:    photos,
		reactions: reactions,
		users:     users,
		cache:     c,
		logger:    logging.WithComponent("reaction_service"),
		now:       time.Now,
	}
}

// React toggles userID's reaction on a photo. No reaction adds one, the same
// type removes it, and a different type replaces it in place.
func (s *ReactionService) React(ctx context.Context, photoID, userID, rawType string) (*models.ReactionResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReactionService.React")
	defer span.End()

	reactionType, err := models.ParseReactionType(rawType)
	if err != nil {
		return nil, invalidArgument("Invalid reaction type")
	}
	span.SetAttributes(attribute.String("photo.id", photoID), attribute.String("reaction.type", string(reactionType)))

	var result *models.ReactionResult
	err = s.reactions.WithLockedPhoto(ctx, photoID, func(tx repositories.ReactionTx, photo *models.Photo) error {
		if photo == nil {
			return notFound("Photo not found")
		}

		existing, err := tx.FindReaction(photoID, userID)
		if err != nil {
			return err
		}

		switch {
		case existing == nil:
			reaction := &models.Reaction{
				ID:       uuid.New().String(),
				PhotoID:  photoID,
				UserID:   userID,
				Type:     reactionType,
				DateTime: s.now(),
			}
			if err := tx.CreateReaction(reaction); err != nil {
				return err
			}
			stats := photo.ReactionStats
			stats.Add(reactionType)
			if err := tx.SaveStats(photoID, stats); err != nil {
				return err
			}
			result = &models.ReactionResult{Action: models.ReactionAdded, ReactionType: reactionType, Stats: stats}

		case existing.Type == reactionType:
			stats, err := removeReaction(tx, photo, existing)
			if err != nil {
				return err
			}
			result = &models.ReactionResult{Action: models.ReactionRemoved, Stats: stats}

		default:
			previous := existing.Type
			existing.Type = reactionType
			existing.DateTime = s.now()
			if err := tx.UpdateReaction(existing); err != nil {
				return err
			}
			stats := photo.ReactionStats
			stats.Move(previous, reactionType)
			if err := tx.SaveStats(photoID, stats); err != nil {
				return err
			}
			result = &models.ReactionResult{Action: models.ReactionUpdated, ReactionType: reactionType, Stats: stats}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Reaction changed concurrently, try again")
		}
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to react to photo %s: %w", photoID, err)
	}

	s.invalidate(ctx, photoID)
	telemetry.RecordReaction(ctx, string(result.Action), string(reactionType))
	s.logger.Debug("Reaction applied",
		zap.String("photo_id", photoID),
		zap.String("user_id", userID),
		zap.String("action", string(result.Action)),
		zap.String("type", string(reactionType)))
	return result, nil
}

// Unreact removes userID's reaction whatever its type.
func (s *ReactionService) Unreact(ctx context.Context, photoID, userID string) (*models.ReactionResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReactionService.Unreact")
	defer span.End()

	var result *models.ReactionResult
	err := s.reactions.WithLockedPhoto(ctx, photoID, func(tx repositories.ReactionTx, photo *models.Photo) error {
		if photo == nil {
			return notFound("Photo not found")
		}
		existing, err := tx.FindReaction(photoID, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound("You have not reacted to this photo")
		}
		stats, err := removeReaction(tx, photo, existing)
		if err != nil {
			return err
		}
		result = &models.ReactionResult{Action: models.ReactionRemoved, RemovedType: existing.Type, Stats: stats}
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove reaction on photo %s: %w", photoID, err)
	}

	s.invalidate(ctx, photoID)
	telemetry.RecordReaction(ctx, string(models.ReactionRemoved), string(result.RemovedType))
	return result, nil
}

// removeReaction deletes r and decrements the photo's counters. Both the
// toggle-off path of React and Unreact go through here.
func removeReaction(tx repositories.ReactionTx, photo *models.Photo, r *models.Reaction) (models.ReactionStats, error) {
	if err := tx.DeleteReaction(r.ID); err != nil {
		return models.ReactionStats{}, err
	}
	stats := photo.ReactionStats
	stats.Remove(r.Type)
	if err := tx.SaveStats(photo.ID, stats); err != nil {
		return models.ReactionStats{}, err
	}
	return stats, nil
}

// GetReactions lists a photo's reactions with their authors, optionally
// limited to one type, plus the photo's stats.
func (s *ReactionService) GetReactions(ctx context.Context, photoID, filter string) (*models.PhotoReactions, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReactionService.GetReactions")
	defer span.End()

	var filterType models.ReactionType
	if filter != "" {
		t, err := models.ParseReactionType(filter)
		if err != nil {
			return nil, invalidArgument("Invalid reaction type")
		}
		filterType = t
	}

	// The generation is read before the database so a listing loaded across
	// a concurrent mutation is stored under a key that is already retired.
	var key string
	if s.cache != nil {
		gen, err := reactionsGeneration(ctx, s.cache, photoID)
		if err == nil {
			key = reactionsCacheKey(photoID, gen, filterType)
			var cached models.PhotoReactions
			if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
				return &cached, nil
			} else if !errors.Is(err, cache.ErrCacheMiss) {
				s.logger.Warn("Reaction cache read failed", zap.String("key", key), zap.Error(err))
			}
		} else if !errors.Is(err, cache.ErrCacheDisabled) {
			s.logger.Warn("Reaction cache generation read failed", zap.String("photo_id", photoID), zap.Error(err))
		}
	}

	photo, err := s.photos.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}
	if photo == nil {
		return nil, notFound("Photo not found")
	}

	reactions, err := s.reactions.ListReactions(ctx, photoID, filterType)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}

	ids := make([]string, 0, len(reactions))
	for i := range reactions {
		ids = append(ids, reactions[i].UserID)
	}
	byID, err := indexUsers(ctx, s.users, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load reacting users: %w", err)
	}

	out := &models.PhotoReactions{
		Reactions: make([]models.ReactionWithUser, 0, len(reactions)),
		Stats:     photo.ReactionStats,
	}
	for _, r := range reactions {
		item := models.ReactionWithUser{
			ID:       r.ID,
			Type:     r.Type,
			DateTime: r.DateTime,
			UserID:   r.UserID,
		}
		if u, ok := byID[r.UserID]; ok {
			item.User = &models.Reactor{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Avatar:    u.Avatar,
			}
		}
		out.Reactions = append(out.Reactions, item)
	}

	if key != "" {
		if err := s.cache.SetJSON(ctx, key, out); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
			s.logger.Warn("Reaction cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

// GetUserReaction reports whether userID has reacted to the photo.
func (s *ReactionService) GetUserReaction(ctx context.Context, photoID, userID string) (*models.UserReactionStatus, error) {
	photo, err := s.photos.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}
	if photo == nil {
		return nil, notFound("Photo not found")
	}

	reaction, err := s.reactions.FindReaction(ctx, photoID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reaction: %w", err)
	}
	if reaction == nil {
		return &models.UserReactionStatus{}, nil
	}
	return &models.UserReactionStatus{
		HasReaction: true,
		Reaction:    &models.UserReaction{Type: reaction.Type, DateTime: reaction.DateTime},
	}, nil
}

// RecountStats rebuilds a photo's stats from its reaction rows and reports
// whether the stored stats had drifted.
func (s *ReactionService) RecountStats(ctx context.Context, photoID string) (models.ReactionStats, bool, error) {
	var (
		stats   models.ReactionStats
		changed bool
	)
	err := s.reactions.WithLockedPhoto(ctx, photoID, func(tx repositories.ReactionTx, photo *models.Photo) error {
		if photo == nil {
			return notFound("Photo not found")
		}
		reactions, err := tx.ListReactions(photoID)
		if err != nil {
			return err
		}
		stats = models.StatsFromReactions(reactions)
		if stats == photo.ReactionStats {
			return nil
		}
		changed = true
		return tx.SaveStats(photoID, stats)
	})
	if err != nil {
		return models.ReactionStats{}, false, err
	}
	if changed {
		s.invalidate(ctx, photoID)
	}
	return stats, changed, nil
}

// ReconcileAll runs RecountStats over every photo and returns how many were
// repaired.
func (s *ReactionService) ReconcileAll(ctx context.Context) (int, error) {
	ids, err := s.photos.ListPhotoIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list photos: %w", err)
	}

	repaired := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		_, changed, err := s.RecountStats(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return repaired, fmt.Errorf("failed to recount photo %s: %w", id, err)
		}
		if changed {
			repaired++
			s.logger.Warn("Repaired drifted reaction stats", zap.String("photo_id", id))
		}
	}
	return repaired, nil
}

// RefreshReactor drops the cached listings of every photo userID has
// reacted to, so they pick up the user's new name and avatar.
func (s *ReactionService) RefreshReactor(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	photoIDs, err := s.reactions.ListReactedPhotoIDs(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list reacted photos: %w", err)
	}
	for _, id := range photoIDs {
		s.invalidate(ctx, id)
	}
	return nil
}

func (s *ReactionService) invalidate(ctx context.Context, photoID string) {
	invalidateReactionCache(ctx, s.cache, s.logger, photoID)
}

func reactionsGenerationKey(photoID string) string {
	return "reactions:" + photoID + ":gen"
}

func reactionsCacheKey(photoID string, gen int64, filter models.ReactionType) string {
	name := "all"
	if filter != "" {
		name = string(filter)
	}
	return fmt.Sprintf("reactions:%s:%d:%s", photoID, gen, name)
}

// reactionsGeneration returns the photo's current listing generation. A
// photo that was never invalidated is at generation 0.
func reactionsGeneration(ctx context.Context, c ReactionCache, photoID string) (int64, error) {
	var gen int64
	err := c.GetJSON(ctx, reactionsGenerationKey(photoID), &gen)
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	return gen, err
}

// invalidateReactionCache moves the photo to a new generation, then drops the
// listings of the one it replaced. Listings of older generations are left to
// expire.
func invalidateReactionCache(ctx context.Context, c ReactionCache, logger *zap.Logger, photoID string) {
	if c == nil {
		return
	}
	gen, err := c.Incr(ctx, reactionsGenerationKey(photoID))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheDisabled) {
			logger.Warn("Reaction cache invalidation failed", zap.String("photo_id", photoID), zap.Error(err))
		}
		return
	}

	keys := []string{reactionsCacheKey(photoID, gen-1, "")}
	for _, t := range models.ReactionTypes {
		keys = append(keys, reactionsCacheKey(photoID, gen-1, t))
	}
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Warn("Failed to drop retired reaction listings", zap.String("photo_id", photoID), zap.Error(err))
	}
}
