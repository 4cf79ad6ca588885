package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/matching"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// UserRepository reads users for discovery.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// candidateRow is a user plus their follower count.
type candidateRow struct {
	db.User
	FollowersCount int64
}

// GetUser loads one user. Returns matching.ErrNotFound when absent.
func (r *UserRepository) GetUser(ctx context.Context, id uint64) (swipe.Profile, error) {
	var row candidateRow
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.*, (SELECT COUNT(*) FROM follow_edges f WHERE f.following_id = u.id) AS followers_count").
		Where("u.id = ?", id).
		Take(&row).Error
	if err != nil {
		return swipe.Profile{}, notFound(err)
	}
	return row.profile(), nil
}

// CandidatePool returns the over-fetched pool for a profile batch.
//
// Behavior:
//   - Excludes the actor, anyone the actor has profile-swiped, and anyone with
//     a block relation to the actor in either direction.
//   - Skips deactivated accounts and anyone born outside [q.BornFrom, q.BornTo],
//     so a small cohort is not crowded out of the pool by the other one.
//   - Ordered by followers_count DESC, created_at DESC, id DESC.
//
// Age, gender and distance are applied in memory by the caller.
func (r *UserRepository) CandidatePool(ctx context.Context, q matching.PoolQuery) ([]swipe.Profile, error) {
	actorID := q.ActorID
	var rows []candidateRow
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.*, (SELECT COUNT(*) FROM follow_edges f WHERE f.following_id = u.id) AS followers_count").
		Where("u.id <> ? AND u.active = ?", actorID, true).
		Where("u.birth_date IS NOT NULL AND u.birth_date BETWEEN ? AND ?", q.BornFrom, q.BornTo).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipe_actions s
				WHERE s.actor_id = ?
				  AND s.target_user_id = u.id
			)`, actorID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM block_relations b
				WHERE (b.blocker_id = ? AND b.blocked_id = u.id)
				   OR (b.blocker_id = u.id AND b.blocked_id = ?)
			)`, actorID, actorID).
		Order("followers_count DESC, u.created_at DESC, u.id DESC").
		Limit(q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]swipe.Profile, len(rows))
	for i, row := range rows {
		out[i] = row.profile()
	}
	return out, nil
}

func (row candidateRow) profile() swipe.Profile {
	return swipe.Profile{
		UserID:         row.ID,
		Username:       row.Username,
		Gender:         swipe.Gender(row.Gender),
		BirthDate:      row.BirthDate,
		Location:       row.Location,
		HideLocation:   row.HideLocation,
		Latitude:       row.Latitude,
		Longitude:      row.Longitude,
		FollowersCount: row.FollowersCount,
		CreatedAt:      row.CreatedAt,
	}
}
