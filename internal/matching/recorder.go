package matching

import (
	"context"
	"strings"
	"unicode/utf8"

	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/metrics"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// ProfileSwipe is one decision about another user.
type ProfileSwipe struct {
	ActorID   uint64
	TargetID  uint64
	Direction swipe.Direction
	Message   string
}

type ProfileSwipeResult struct {
	ActionID uint64
	// Relation is the follow state after the swipe, seen from the actor.
	Relation          swipe.Relation
	CanChatDirect     bool
	FollowCreated     bool
	InvitationCreated bool
	Invitation        *Invitation
}

// SwipeProfile records a profile swipe and its side effects in one
// transaction: the log entry, the follow edge on like, and an invitation
// when a like carries a message. Retrying a failed call is safe.
//
// Rejections:
//   - Validation: missing or equal ids, bad direction, message too long,
//     block relation in either direction.
//   - NotFound: actor or target missing.
//   - Policy: actor and target in different age cohorts.
func (e *Engine) SwipeProfile(ctx context.Context, in ProfileSwipe) (ProfileSwipeResult, error) {
	e.log.Debug("SwipeProfile called", "actor", in.ActorID, "target", in.TargetID, "direction", in.Direction)

	msg, err := validateProfileSwipe(&in)
	if err != nil {
		return ProfileSwipeResult{}, e.rejected("profile", err)
	}

	var res ProfileSwipeResult
	err = e.store.WithinTx(ctx, func(tx Store) error {
		res = ProfileSwipeResult{}
		now := e.now()

		actor, err := e.loadUser(ctx, tx.Users(), in.ActorID, "actor")
		if err != nil {
			return err
		}
		target, err := e.loadUser(ctx, tx.Users(), in.TargetID, "target user")
		if err != nil {
			return err
		}

		blocked, err := tx.Blocks().BlockedEitherWay(ctx, in.ActorID, in.TargetID)
		if err != nil {
			return svcErr.Transient("check block relation", err)
		}
		if blocked {
			return svcErr.Validation("cannot swipe a blocked user")
		}
		if swipe.CohortOf(actor.BirthDate, now) != swipe.CohortOf(target.BirthDate, now) {
			return svcErr.Policy("minors and adults cannot interact")
		}

		res.ActionID, err = tx.Swipes().Append(ctx, Action{
			ActorID:   in.ActorID,
			Target:    swipe.ProfileTarget(in.TargetID),
			Direction: in.Direction,
			Message:   msg,
			CreatedAt: now,
		})
		if err != nil {
			return svcErr.Transient("append swipe", err)
		}

		if in.Direction == swipe.Like {
			res.FollowCreated, err = tx.Follows().Follow(ctx, in.ActorID, in.TargetID)
			if err != nil {
				return svcErr.Transient("create follow edge", err)
			}
			if msg != "" {
				inv := &Invitation{
					SenderID:   in.ActorID,
					ReceiverID: in.TargetID,
					SourceType: SourceProfileSwipe,
					Message:    msg,
					Status:     InvitationPending,
					CreatedAt:  now,
				}
				if err := tx.Invitations().Create(ctx, inv); err != nil {
					return svcErr.Transient("create invitation", err)
				}
				res.Invitation = inv
				res.InvitationCreated = true
			}
		}

		res.Relation, err = relationOf(ctx, tx.Follows(), in.ActorID, in.TargetID)
		return err
	})
	if err != nil {
		if svcErr.IsTransient(err) {
			e.log.Error("SwipeProfile failed", "actor", in.ActorID, "target", in.TargetID, "err", err)
		}
		return ProfileSwipeResult{}, e.rejected("profile", err)
	}

	res.CanChatDirect = res.Relation.Mutual()
	metrics.SwipesRecorded.WithLabelValues("profile", string(in.Direction)).Inc()
	if res.InvitationCreated {
		metrics.InvitationsCreated.Inc()
	}
	e.log.Debug("SwipeProfile recorded",
		"actor", in.ActorID,
		"target", in.TargetID,
		"relation", res.Relation.State(),
		"invitation", res.InvitationCreated,
	)
	return res, nil
}

// validateProfileSwipe checks the request and returns the trimmed message.
func validateProfileSwipe(in *ProfileSwipe) (string, error) {
	if err := requirePair(in.ActorID, in.TargetID, "actor_id", "target_id"); err != nil {
		return "", err
	}
	if !in.Direction.Valid() {
		return "", svcErr.Validationf("direction must be %q or %q", swipe.Like, swipe.Pass)
	}
	msg := strings.TrimSpace(in.Message)
	if utf8.RuneCountInString(msg) > swipe.MaxMessageLength {
		return "", svcErr.Validationf("message must be at most %d characters", swipe.MaxMessageLength)
	}
	return msg, nil
}

type MusicSwipeResult struct {
	ActionID  uint64
	Direction swipe.Direction
}

// SwipeMusic appends a music swipe. There are no social side effects.
func (e *Engine) SwipeMusic(ctx context.Context, actorID uint64, mediaType swipe.MediaType, mediaID string, dir swipe.Direction) (MusicSwipeResult, error) {
	e.log.Debug("SwipeMusic called", "actor", actorID, "type", mediaType, "id", mediaID, "direction", dir)

	mediaID = strings.TrimSpace(mediaID)
	switch {
	case actorID == 0:
		return MusicSwipeResult{}, e.rejected("music", svcErr.Validation("actor_id is required"))
	case !mediaType.Valid():
		return MusicSwipeResult{}, e.rejected("music", svcErr.Validationf("unknown media_type %q", mediaType))
	case mediaID == "":
		return MusicSwipeResult{}, e.rejected("music", svcErr.Validation("media_id is required"))
	case !dir.Valid():
		return MusicSwipeResult{}, e.rejected("music", svcErr.Validationf("direction must be %q or %q", swipe.Like, swipe.Pass))
	}

	if _, err := e.loadUser(ctx, e.store.Users(), actorID, "actor"); err != nil {
		return MusicSwipeResult{}, e.rejected("music", err)
	}
	exists, err := e.store.MediaStats().Exists(ctx, mediaType, mediaID)
	if err != nil {
		return MusicSwipeResult{}, svcErr.Transient("check media item", err)
	}
	if !exists {
		return MusicSwipeResult{}, e.rejected("music", svcErr.NotFound("media item not found"))
	}

	id, err := e.store.Swipes().Append(ctx, Action{
		ActorID:   actorID,
		Target:    swipe.MediaTarget(mediaType, mediaID),
		Direction: dir,
		CreatedAt: e.now(),
	})
	if err != nil {
		e.log.Error("SwipeMusic failed", "actor", actorID, "err", err)
		return MusicSwipeResult{}, svcErr.Transient("append swipe", err)
	}

	metrics.SwipesRecorded.WithLabelValues("music", string(dir)).Inc()
	return MusicSwipeResult{ActionID: id, Direction: dir}, nil
}

// rejected counts classified rejections and passes err through.
func (e *Engine) rejected(kind string, err error) error {
	switch k := svcErr.KindOf(err); k {
	case svcErr.KindValidation, svcErr.KindPolicy, svcErr.KindNotFound:
		metrics.SwipesRejected.WithLabelValues(kind, k.String()).Inc()
	}
	return err
}
