package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/matching"
)

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(database *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: database}
}

// Create inserts a new invitation. Every call creates a row; there is no
// dedup against earlier invitations between the same pair. inv.ID and
// inv.CreatedAt are filled in.
func (r *InvitationRepository) Create(ctx context.Context, inv *matching.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = matching.InvitationPending
	}
	row := db.ChatInvitation{
		ID:         inv.ID,
		SenderID:   inv.SenderID,
		ReceiverID: inv.ReceiverID,
		SourceType: inv.SourceType,
		Message:    inv.Message,
		Status:     string(inv.Status),
		CreatedAt:  inv.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	inv.CreatedAt = row.CreatedAt
	return nil
}

func (r *InvitationRepository) Get(ctx context.Context, id string) (matching.Invitation, error) {
	var row db.ChatInvitation
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return matching.Invitation{}, notFound(err)
	}
	return fromInvitationRow(row), nil
}

// ListPending returns pending invitations addressed to receiverID, newest
// first.
func (r *InvitationRepository) ListPending(ctx context.Context, receiverID uint64) ([]matching.Invitation, error) {
	var rows []db.ChatInvitation
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, string(matching.InvitationPending)).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]matching.Invitation, len(rows))
	for i, row := range rows {
		out[i] = fromInvitationRow(row)
	}
	return out, nil
}

// SetStatus only moves invitations that are still pending, so two racing
// responses cannot both win.
func (r *InvitationRepository) SetStatus(ctx context.Context, id string, status matching.InvitationStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db.ChatInvitation{}).
		Where("id = ? AND status = ?", id, string(matching.InvitationPending)).
		Update("status", string(status))
	return res.RowsAffected > 0, res.Error
}

func fromInvitationRow(row db.ChatInvitation) matching.Invitation {
	return matching.Invitation{
		ID:         row.ID,
		SenderID:   row.SenderID,
		ReceiverID: row.ReceiverID,
		SourceType: row.SourceType,
		Message:    row.Message,
		Status:     matching.InvitationStatus(row.Status),
		CreatedAt:  row.CreatedAt.UTC(),
	}
}
