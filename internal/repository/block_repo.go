package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/swipe-discovery/internal/db"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(database *gorm.DB) *BlockRepository {
	return &BlockRepository{db: database}
}

// Block records blocker -> blocked. Repeating is a no-op.
func (r *BlockRepository) Block(ctx context.Context, blockerID, blockedID uint64) error {
	rel := db.BlockRelation{BlockerID: blockerID, BlockedID: blockedID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blocker_id"}, {Name: "blocked_id"}},
			DoNothing: true,
		}).
		Create(&rel).Error
}

func (r *BlockRepository) Unblock(ctx context.Context, blockerID, blockedID uint64) error {
	return r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&db.BlockRelation{}).Error
}

func (r *BlockRepository) BlockedEitherWay(ctx context.Context, a, b uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.BlockRelation{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

func (r *BlockRepository) RelatedTo(ctx context.Context, userID uint64) ([]uint64, error) {
	var rels []db.BlockRelation
	err := r.db.WithContext(ctx).
		Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Find(&rels).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(rels))
	for _, rel := range rels {
		if rel.BlockerID == userID {
			ids = append(ids, rel.BlockedID)
		} else {
			ids = append(ids, rel.BlockerID)
		}
	}
	return ids, nil
}
