package matching

import (
	"context"

	"github.com/oggyb/swipe-discovery/internal/catalog"
	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/metrics"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

const (
	DefaultMusicLimit = 12
	MinMusicLimit     = 4
	MaxMusicLimit     = 40
)

// MusicCandidate is a media item with its review statistics. Metadata is
// nil when the catalog could not resolve it.
type MusicCandidate struct {
	swipe.MediaStat
	Metadata *catalog.Metadata
}

// ListMusicCandidates returns the most reviewed items actorID has not
// swiped yet. limit is clamped into [4,40]; zero means 12. Catalog failures
// only drop metadata.
func (e *Engine) ListMusicCandidates(ctx context.Context, actorID uint64, limit int) ([]MusicCandidate, error) {
	if err := requireID(actorID, "user_id"); err != nil {
		return nil, err
	}
	limit = clampLimit(limit, DefaultMusicLimit, MinMusicLimit, MaxMusicLimit)

	if _, err := e.loadUser(ctx, e.store.Users(), actorID, "user"); err != nil {
		return nil, err
	}

	stats, err := e.store.MediaStats().TopUnswiped(ctx, actorID, limit)
	if err != nil {
		e.log.Error("media stats failed", "actor", actorID, "err", err)
		return nil, svcErr.Transient("load media stats", err)
	}
	swipe.RankMedia(stats)

	out := make([]MusicCandidate, len(stats))
	for i, st := range stats {
		out[i] = MusicCandidate{MediaStat: st}
		if i < e.enrichLimit {
			out[i].Metadata = e.lookupMetadata(ctx, st)
		}
	}

	metrics.CandidatesServed.WithLabelValues("music").Add(float64(len(out)))
	e.log.Debug("music candidates", "actor", actorID, "served", len(out))
	return out, nil
}

func (e *Engine) lookupMetadata(ctx context.Context, st swipe.MediaStat) *catalog.Metadata {
	md, err := e.catalog.Lookup(ctx, st.MediaType, st.MediaID)
	if err != nil {
		e.log.Debug("catalog lookup skipped", "type", st.MediaType, "id", st.MediaID, "err", err)
		return nil
	}
	return &md
}
