package matching

import (
	"context"
	"errors"

	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/swipe"
	"github.com/oggyb/swipe-discovery/internal/utils/pagination"
)

// Follow creates actor -> target outside the swipe flow. Repeating it is a
// no-op; created reports whether a new edge was written.
func (e *Engine) Follow(ctx context.Context, actorID, targetID uint64) (created bool, err error) {
	if err := requirePair(actorID, targetID, "actor_id", "target_id"); err != nil {
		return false, err
	}

	err = e.store.WithinTx(ctx, func(tx Store) error {
		now := e.now()
		actor, err := e.loadUser(ctx, tx.Users(), actorID, "actor")
		if err != nil {
			return err
		}
		target, err := e.loadUser(ctx, tx.Users(), targetID, "target user")
		if err != nil {
			return err
		}

		blocked, err := tx.Blocks().BlockedEitherWay(ctx, actorID, targetID)
		if err != nil {
			return svcErr.Transient("check block relation", err)
		}
		if blocked {
			return svcErr.Validation("cannot follow a blocked user")
		}
		if swipe.CohortOf(actor.BirthDate, now) != swipe.CohortOf(target.BirthDate, now) {
			return svcErr.Policy("minors and adults cannot interact")
		}

		created, err = tx.Follows().Follow(ctx, actorID, targetID)
		if err != nil {
			return svcErr.Transient("create follow edge", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	e.log.Debug("follow", "actor", actorID, "target", targetID, "created", created)
	return created, nil
}

// Unfollow removes actor -> target. A missing edge is not an error.
func (e *Engine) Unfollow(ctx context.Context, actorID, targetID uint64) (removed bool, err error) {
	if err := requirePair(actorID, targetID, "actor_id", "target_id"); err != nil {
		return false, err
	}
	removed, err = e.store.Follows().Unfollow(ctx, actorID, targetID)
	if err != nil {
		e.log.Error("unfollow failed", "actor", actorID, "target", targetID, "err", err)
		return false, svcErr.Transient("remove follow edge", err)
	}
	return removed, nil
}

// Block hides the two users from each other and drops follow edges in both
// directions, so a mutual pair falls back to no relation. Idempotent.
func (e *Engine) Block(ctx context.Context, blockerID, blockedID uint64) error {
	if err := requirePair(blockerID, blockedID, "blocker_id", "blocked_id"); err != nil {
		return err
	}

	err := e.store.WithinTx(ctx, func(tx Store) error {
		if _, err := e.loadUser(ctx, tx.Users(), blockedID, "user"); err != nil {
			return err
		}
		if err := tx.Blocks().Block(ctx, blockerID, blockedID); err != nil {
			return svcErr.Transient("create block", err)
		}
		if _, err := tx.Follows().Unfollow(ctx, blockerID, blockedID); err != nil {
			return svcErr.Transient("remove follow edge", err)
		}
		if _, err := tx.Follows().Unfollow(ctx, blockedID, blockerID); err != nil {
			return svcErr.Transient("remove follow edge", err)
		}
		return nil
	})
	if err != nil {
		if svcErr.IsTransient(err) {
			e.log.Error("block failed", "blocker", blockerID, "blocked", blockedID, "err", err)
		}
		return err
	}
	e.log.Debug("blocked", "blocker", blockerID, "blocked", blockedID)
	return nil
}

// Unblock lifts blocker's block. Removed edges are not restored.
func (e *Engine) Unblock(ctx context.Context, blockerID, blockedID uint64) error {
	if err := requirePair(blockerID, blockedID, "blocker_id", "blocked_id"); err != nil {
		return err
	}
	if err := e.store.Blocks().Unblock(ctx, blockerID, blockedID); err != nil {
		return svcErr.Transient("remove block", err)
	}
	return nil
}

// ListFollowers pages through userID's followers, newest first. With
// onlyNew, followers userID already follows back are skipped.
func (e *Engine) ListFollowers(ctx context.Context, userID uint64, token *string, onlyNew bool) ([]Follower, *string, error) {
	if err := requireID(userID, "user_id"); err != nil {
		return nil, nil, err
	}

	followers, next, err := e.store.Follows().ListFollowers(ctx, FollowerQuery{
		UserID:  userID,
		OnlyNew: onlyNew,
		Token:   token,
		Limit:   e.pageSize,
	})
	if errors.Is(err, pagination.ErrInvalidToken) {
		return nil, nil, svcErr.Validation("invalid pagination token")
	}
	if err != nil {
		e.log.Error("list followers failed", "user_id", userID, "err", err)
		return nil, nil, svcErr.Transient("list followers", err)
	}
	return followers, next, nil
}

// CountFollowers counts edges into userID straight from the store.
func (e *Engine) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	if err := requireID(userID, "user_id"); err != nil {
		return 0, err
	}
	n, err := e.store.Follows().CountFollowers(ctx, userID)
	if err != nil {
		return 0, svcErr.Transient("count followers", err)
	}
	return n, nil
}
