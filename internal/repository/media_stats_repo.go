package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// MediaStatsRepository aggregates the reviews table per media item.
type MediaStatsRepository struct {
	db *gorm.DB
}

func NewMediaStatsRepository(database *gorm.DB) *MediaStatsRepository {
	return &MediaStatsRepository{db: database}
}

type mediaStatRow struct {
	MediaType    string
	MediaID      string
	ReviewCount  int64
	AvgRating    float64
	LastReviewAt sqlTime
}

// TopUnswiped returns the most reviewed items the actor has not swiped yet.
//
// Ordered by review_count DESC, avg_rating DESC, last_review_at DESC.
func (r *MediaStatsRepository) TopUnswiped(ctx context.Context, actorID uint64, limit int) ([]swipe.MediaStat, error) {
	var rows []mediaStatRow
	err := r.db.WithContext(ctx).
		Table("reviews r").
		Select(`r.media_type, r.media_id,
			COUNT(*) AS review_count,
			AVG(r.rating) AS avg_rating,
			MAX(r.created_at) AS last_review_at`).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipe_actions s
				WHERE s.actor_id = ?
				  AND s.media_type = r.media_type
				  AND s.media_id = r.media_id
			)`, actorID).
		Group("r.media_type, r.media_id").
		Order("review_count DESC, avg_rating DESC, last_review_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]swipe.MediaStat, len(rows))
	for i, row := range rows {
		out[i] = swipe.MediaStat{
			MediaType:    swipe.MediaType(row.MediaType),
			MediaID:      row.MediaID,
			ReviewCount:  row.ReviewCount,
			AvgRating:    row.AvgRating,
			LastReviewAt: row.LastReviewAt.Time,
		}
	}
	return out, nil
}

// Exists reports whether the item has any review activity.
func (r *MediaStatsRepository) Exists(ctx context.Context, mediaType swipe.MediaType, mediaID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Review{}).
		Where("media_type = ? AND media_id = ?", string(mediaType), mediaID).
		Count(&count).Error
	return count > 0, err
}
