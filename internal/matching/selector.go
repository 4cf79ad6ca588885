package matching

import (
	"context"

	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/metrics"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

const (
	DefaultProfileLimit = 20
	MinProfileLimit     = 1
	MaxProfileLimit     = 50
)

// ProfileCandidate is a filtered profile with follow flags for the UI. The
// flags never influence filtering.
type ProfileCandidate struct {
	swipe.Candidate
	IsFollowing  bool
	IsFollowedBy bool
}

// ListProfileCandidates returns a ranked batch of profiles for actorID.
//
// Behavior:
//   - Preferences are read without writing; defaults apply when none exist.
//   - The pool is over-fetched, then filtered in memory by exclusion,
//     cohort, age range, gender and distance.
//   - Ranked by followers desc, newest account first.
//   - limit is clamped into [1,50]; zero means 20.
func (e *Engine) ListProfileCandidates(ctx context.Context, actorID uint64, limit int) ([]ProfileCandidate, error) {
	if err := requireID(actorID, "user_id"); err != nil {
		return nil, err
	}
	limit = clampLimit(limit, DefaultProfileLimit, MinProfileLimit, MaxProfileLimit)
	now := e.now()

	self, err := e.loadUser(ctx, e.store.Users(), actorID, "user")
	if err != nil {
		return nil, err
	}

	prefs, found, err := e.store.Preferences().Get(ctx, actorID)
	if err != nil {
		return nil, svcErr.Transient("load preferences", err)
	}
	if !found {
		prefs = swipe.DefaultPreferencesFor(swipe.CohortOf(self.BirthDate, now))
	}
	viewer := swipe.NewViewer(self, prefs, now)

	excluded, err := e.ResolveExclusions(ctx, actorID)
	if err != nil {
		e.log.Error("resolve exclusions failed", "actor", actorID, "err", err)
		return nil, err
	}

	bornFrom, bornTo := viewer.Cohort.BirthDates(now)
	pool, err := e.store.Users().CandidatePool(ctx, PoolQuery{
		ActorID:  actorID,
		BornFrom: bornFrom,
		BornTo:   bornTo,
		Limit:    e.poolSize,
	})
	if err != nil {
		e.log.Error("candidate pool failed", "actor", actorID, "err", err)
		return nil, svcErr.Transient("load candidate pool", err)
	}

	eligible := pool[:0:0]
	for _, p := range pool {
		if !excluded.Excludes(p.UserID) {
			eligible = append(eligible, p)
		}
	}

	candidates, rejected := viewer.Filter(eligible, now)
	for reason, n := range rejected {
		metrics.CandidatesFiltered.WithLabelValues(string(reason)).Add(float64(n))
	}
	swipe.RankProfiles(candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out, err := e.withFollowFlags(ctx, actorID, candidates)
	if err != nil {
		return nil, err
	}

	metrics.CandidatesServed.WithLabelValues("profile").Add(float64(len(out)))
	e.log.Debug("profile candidates",
		"actor", actorID,
		"pool", len(pool),
		"served", len(out),
		"minor", viewer.Cohort.IsMinor(),
	)
	return out, nil
}

func (e *Engine) withFollowFlags(ctx context.Context, actorID uint64, cs []swipe.Candidate) ([]ProfileCandidate, error) {
	ids := make([]uint64, len(cs))
	for i, c := range cs {
		ids[i] = c.UserID
	}

	following, err := e.store.Follows().FollowingAmong(ctx, actorID, ids)
	if err != nil {
		return nil, svcErr.Transient("load follow flags", err)
	}
	followedBy, err := e.store.Follows().FollowedByAmong(ctx, actorID, ids)
	if err != nil {
		return nil, svcErr.Transient("load follow flags", err)
	}

	out := make([]ProfileCandidate, len(cs))
	for i, c := range cs {
		out[i] = ProfileCandidate{
			Candidate:    c,
			IsFollowing:  following[c.UserID],
			IsFollowedBy: followedBy[c.UserID],
		}
	}
	return out, nil
}
