package matching_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/swipe-discovery/internal/catalog"
	"github.com/oggyb/swipe-discovery/internal/matching"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

type stubCatalog struct {
	calls int
}

func (s *stubCatalog) Lookup(_ context.Context, mediaType swipe.MediaType, mediaID string) (catalog.Metadata, error) {
	s.calls++
	if mediaID == "broken" {
		return catalog.Metadata{}, errors.New("provider down")
	}
	return catalog.Metadata{MediaType: mediaType, MediaID: mediaID, Title: "title " + mediaID}, nil
}

func musicIDs(cs []matching.MusicCandidate) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.MediaID
	}
	return ids
}

func TestListMusicCandidates_Ranking(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addUser(t, 1, "male", 25)

	// a: 3 reviews; b and c: 2 reviews, c rated higher; d and e: 1 review
	// at 4.0, e more recent
	f.addReview(t, 2, swipe.MediaTrack, "a", 3, 10)
	f.addReview(t, 3, swipe.MediaTrack, "a", 3, 10)
	f.addReview(t, 4, swipe.MediaTrack, "a", 3, 10)
	f.addReview(t, 2, swipe.MediaAlbum, "b", 3, 10)
	f.addReview(t, 3, swipe.MediaAlbum, "b", 4, 10)
	f.addReview(t, 2, swipe.MediaArtist, "c", 5, 10)
	f.addReview(t, 3, swipe.MediaArtist, "c", 5, 10)
	f.addReview(t, 2, swipe.MediaTrack, "d", 4, 30)
	f.addReview(t, 2, swipe.MediaTrack, "e", 4, 5)

	got, err := f.engine.ListMusicCandidates(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b", "e", "d"}, musicIDs(got))
	assert.Equal(t, int64(3), got[0].ReviewCount)
	assert.InDelta(t, 3.5, got[2].AvgRating, 0.001)
	assert.True(t, testNow.Add(-5*time.Minute).Equal(got[3].LastReviewAt), "got %v", got[3].LastReviewAt)
	assert.Nil(t, got[0].Metadata, "no catalog configured")

	// swiped items drop out, either direction
	_, err = f.engine.SwipeMusic(ctx, 1, swipe.MediaTrack, "a", swipe.Pass)
	require.NoError(t, err)
	_, err = f.engine.SwipeMusic(ctx, 1, swipe.MediaArtist, "c", swipe.Like)
	require.NoError(t, err)

	got, err = f.engine.ListMusicCandidates(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "e", "d"}, musicIDs(got))
}

func TestListMusicCandidates_LimitClamp(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addUser(t, 1, "male", 25)
	for i := 0; i < 50; i++ {
		f.addReview(t, 2, swipe.MediaTrack, fmt.Sprintf("t%02d", i), 3, i)
	}

	got, err := f.engine.ListMusicCandidates(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, got, matching.MinMusicLimit)

	got, err = f.engine.ListMusicCandidates(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, got, matching.DefaultMusicLimit)

	got, err = f.engine.ListMusicCandidates(ctx, 1, 100)
	require.NoError(t, err)
	assert.Len(t, got, matching.MaxMusicLimit)
}

// TestListMusicCandidates_Enrichment: catalog failures only drop metadata,
// and lookups stop at the enrich limit.
func TestListMusicCandidates_Enrichment(t *testing.T) {
	ctx := context.Background()
	stub := &stubCatalog{}
	f := setup(t, matching.WithCatalog(stub), matching.WithEnrichLimit(2))
	f.addUser(t, 1, "male", 25)
	f.addReview(t, 2, swipe.MediaTrack, "ok", 5, 1)
	f.addReview(t, 3, swipe.MediaTrack, "ok", 5, 1)
	f.addReview(t, 2, swipe.MediaTrack, "broken", 5, 2)
	f.addReview(t, 2, swipe.MediaTrack, "late", 1, 3)

	got, err := f.engine.ListMusicCandidates(ctx, 1, 4)
	require.NoError(t, err)
	require.Equal(t, []string{"ok", "broken", "late"}, musicIDs(got))

	require.NotNil(t, got[0].Metadata)
	assert.Equal(t, "title ok", got[0].Metadata.Title)
	assert.Nil(t, got[1].Metadata)
	assert.Nil(t, got[2].Metadata, "past the enrich limit")
	assert.Equal(t, 2, stub.calls)
}

func TestListMusicCandidates_UnknownUser(t *testing.T) {
	f := setup(t)
	_, err := f.engine.ListMusicCandidates(context.Background(), 5, 10)
	assertNotFound(t, err)
}
