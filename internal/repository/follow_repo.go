package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/matching"
	"github.com/oggyb/swipe-discovery/internal/utils/pagination"
)

// FollowRepository provides data access for follow edges.
type FollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new repository bound to the given DB connection.
func NewFollowRepository(database *gorm.DB) *FollowRepository {
	return &FollowRepository{db: database}
}

// Follow inserts follower -> following.
//
// Behavior:
//   - Composite PK + ON CONFLICT DO NOTHING: repeating is a no-op, never an error.
//   - created is false when the edge already existed.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	edge := db.FollowEdge{FollowerID: followerID, FollowingID: followingID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).
		Create(&edge)
	return res.RowsAffected > 0, res.Error
}

func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&db.FollowEdge{})
	return res.RowsAffected > 0, res.Error
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.FollowEdge{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *FollowRepository) FollowingAmong(ctx context.Context, userID uint64, ids []uint64) (map[uint64]bool, error) {
	out := make(map[uint64]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []uint64
	err := r.db.WithContext(ctx).
		Model(&db.FollowEdge{}).
		Where("follower_id = ? AND following_id IN ?", userID, ids).
		Pluck("following_id", &found).Error
	for _, id := range found {
		out[id] = true
	}
	return out, err
}

func (r *FollowRepository) FollowedByAmong(ctx context.Context, userID uint64, ids []uint64) (map[uint64]bool, error) {
	out := make(map[uint64]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []uint64
	err := r.db.WithContext(ctx).
		Model(&db.FollowEdge{}).
		Where("following_id = ? AND follower_id IN ?", userID, ids).
		Pluck("follower_id", &found).Error
	for _, id := range found {
		out[id] = true
	}
	return out, err
}

// CountFollowers returns how many users follow userID.
// Used in conjunction with the Redis cache (DB is fallback).
func (r *FollowRepository) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.FollowEdge{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ListFollowers returns users following q.UserID.
//
// Behavior:
//   - Hides users with a block relation to q.UserID in either direction.
//   - OnlyNew excludes followers q.UserID already follows back.
//   - Ordered by created_at DESC, follower_id DESC.
//   - Supports cursor-based pagination via q.Token.
func (r *FollowRepository) ListFollowers(ctx context.Context, q matching.FollowerQuery) ([]matching.Follower, *string, error) {
	cursor, err := pagination.Decode(getString(q.Token))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Table("follow_edges f").
		Select("f.follower_id, f.created_at").
		Where("f.following_id = ?", q.UserID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM block_relations b
				WHERE (b.blocker_id = ? AND b.blocked_id = f.follower_id)
				   OR (b.blocker_id = f.follower_id AND b.blocked_id = ?)
			)`, q.UserID, q.UserID).
		Order("f.created_at DESC, f.follower_id DESC").
		Limit(q.Limit + 1)

	if q.OnlyNew {
		query = query.Where(`
			NOT EXISTS (
				SELECT 1 FROM follow_edges f2
				WHERE f2.follower_id = ?
				  AND f2.following_id = f.follower_id
			)`, q.UserID)
	}

	if !cursor.IsZero() {
		ts := cursor.Time()
		query = query.Where(
			"(f.created_at < ? OR (f.created_at = ? AND f.follower_id < ?))",
			ts, ts, cursor.ID,
		)
	}

	var edges []db.FollowEdge
	if err := query.Scan(&edges).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(edges) > q.Limit {
		last := edges[q.Limit-1]
		token, _ := pagination.Encode(pagination.At(last.FollowerID, last.CreatedAt))
		nextToken = &token
		edges = edges[:q.Limit]
	}

	out := make([]matching.Follower, len(edges))
	for i, e := range edges {
		out[i] = matching.Follower{UserID: e.FollowerID, CreatedAt: e.CreatedAt.UTC()}
	}
	return out, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
