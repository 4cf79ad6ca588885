package matching

import (
	"context"

	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
)

// Exclusion is the set of users an actor must never be offered: the actor,
// every prior profile-swipe target and every block relation in either
// direction. It is computed per batch and never cached.
type Exclusion struct {
	actorID uint64
	ids     map[uint64]struct{}
}

func (x Exclusion) Excludes(id uint64) bool {
	if id == x.actorID {
		return true
	}
	_, ok := x.ids[id]
	return ok
}

func (x Exclusion) Len() int { return len(x.ids) }

// ResolveExclusions reads the current exclusion set for actorID.
func (e *Engine) ResolveExclusions(ctx context.Context, actorID uint64) (Exclusion, error) {
	return resolveExclusions(ctx, e.store, actorID)
}

func resolveExclusions(ctx context.Context, s Store, actorID uint64) (Exclusion, error) {
	swiped, err := s.Swipes().SwipedUserIDs(ctx, actorID)
	if err != nil {
		return Exclusion{}, svcErr.Transient("load swiped users", err)
	}
	blocked, err := s.Blocks().RelatedTo(ctx, actorID)
	if err != nil {
		return Exclusion{}, svcErr.Transient("load block relations", err)
	}

	x := Exclusion{actorID: actorID, ids: make(map[uint64]struct{}, len(swiped)+len(blocked))}
	for _, id := range swiped {
		x.ids[id] = struct{}{}
	}
	for _, id := range blocked {
		x.ids[id] = struct{}{}
	}
	return x, nil
}
