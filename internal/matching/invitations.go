package matching

import (
	"context"
	"errors"

	"github.com/google/uuid"

	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// PendingInvitation is an invitation with the pair's current follow state,
// seen from the receiver.
type PendingInvitation struct {
	Invitation
	Relation swipe.Relation
}

// ListPendingInvitations returns pending invitations addressed to userID,
// newest first. Senders with a block relation to userID are hidden.
func (e *Engine) ListPendingInvitations(ctx context.Context, userID uint64) ([]PendingInvitation, error) {
	if err := requireID(userID, "user_id"); err != nil {
		return nil, err
	}

	invs, err := e.store.Invitations().ListPending(ctx, userID)
	if err != nil {
		e.log.Error("list invitations failed", "user_id", userID, "err", err)
		return nil, svcErr.Transient("list invitations", err)
	}
	blocked, err := e.store.Blocks().RelatedTo(ctx, userID)
	if err != nil {
		return nil, svcErr.Transient("load block relations", err)
	}
	hidden := make(map[uint64]bool, len(blocked))
	for _, id := range blocked {
		hidden[id] = true
	}

	out := make([]PendingInvitation, 0, len(invs))
	for _, inv := range invs {
		if hidden[inv.SenderID] {
			continue
		}
		rel, err := relationOf(ctx, e.store.Follows(), userID, inv.SenderID)
		if err != nil {
			return nil, err
		}
		out = append(out, PendingInvitation{Invitation: inv, Relation: rel})
	}
	return out, nil
}

// RespondInvitation lets the receiver accept or reject a pending
// invitation. Anyone else gets NotFound; answering twice is a Validation
// error.
func (e *Engine) RespondInvitation(ctx context.Context, receiverID uint64, invitationID string, accept bool) (Invitation, error) {
	if err := requireID(receiverID, "user_id"); err != nil {
		return Invitation{}, err
	}
	if _, err := uuid.Parse(invitationID); err != nil {
		return Invitation{}, svcErr.Validation("invitation_id must be a valid uuid")
	}

	inv, err := e.store.Invitations().Get(ctx, invitationID)
	if errors.Is(err, ErrNotFound) {
		return Invitation{}, svcErr.NotFound("invitation not found")
	}
	if err != nil {
		return Invitation{}, svcErr.Transient("load invitation", err)
	}
	if inv.ReceiverID != receiverID {
		return Invitation{}, svcErr.NotFound("invitation not found")
	}
	if inv.Status != InvitationPending {
		return Invitation{}, svcErr.Validationf("invitation already %s", inv.Status)
	}

	status := InvitationRejected
	if accept {
		status = InvitationAccepted
	}
	updated, err := e.store.Invitations().SetStatus(ctx, invitationID, status)
	if err != nil {
		return Invitation{}, svcErr.Transient("update invitation", err)
	}
	if !updated {
		return Invitation{}, svcErr.Validation("invitation already answered")
	}

	inv.Status = status
	e.log.Debug("invitation answered", "id", invitationID, "status", status)
	return inv, nil
}
