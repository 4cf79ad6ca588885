package matching

import (
	"context"

	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// Relation reads the follow edges between a and b. It is recomputed on
// every call since either edge can change at any time. Mutual is the only
// state that allows direct chat.
func (e *Engine) Relation(ctx context.Context, a, b uint64) (swipe.Relation, error) {
	if err := requirePair(a, b, "user_a", "user_b"); err != nil {
		return swipe.Relation{}, err
	}
	return relationOf(ctx, e.store.Follows(), a, b)
}

func relationOf(ctx context.Context, follows FollowGraphStore, a, b uint64) (swipe.Relation, error) {
	ab, err := follows.IsFollowing(ctx, a, b)
	if err != nil {
		return swipe.Relation{}, svcErr.Transient("read follow edge", err)
	}
	ba, err := follows.IsFollowing(ctx, b, a)
	if err != nil {
		return swipe.Relation{}, svcErr.Transient("read follow edge", err)
	}
	return swipe.Relation{AFollowsB: ab, BFollowsA: ba}, nil
}
