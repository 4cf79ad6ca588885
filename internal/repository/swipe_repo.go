package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/matching"
)

// SwipeRepository appends to and reads the swipe log. Rows are never
// updated or deleted.
type SwipeRepository struct {
	db *gorm.DB
}

func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// Append inserts one swipe action and returns its id.
func (r *SwipeRepository) Append(ctx context.Context, a matching.Action) (uint64, error) {
	row := db.SwipeAction{
		ActorID:   a.ActorID,
		Direction: string(a.Direction),
		CreatedAt: a.CreatedAt,
	}
	switch {
	case a.Target.IsProfile():
		target := a.Target.UserID
		row.TargetUserID = &target
	case a.Target.IsMedia():
		mediaType, mediaID := string(a.Target.MediaType), a.Target.MediaID
		row.MediaType, row.MediaID = &mediaType, &mediaID
	default:
		return 0, fmt.Errorf("swipe target must be a profile or a media item")
	}
	if a.Message != "" {
		msg := a.Message
		row.Message = &msg
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

// SwipedUserIDs returns every user the actor has profile-swiped, either
// direction.
func (r *SwipeRepository) SwipedUserIDs(ctx context.Context, actorID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.SwipeAction{}).
		Distinct("target_user_id").
		Where("actor_id = ? AND target_user_id IS NOT NULL", actorID).
		Pluck("target_user_id", &ids).Error
	return ids, err
}
