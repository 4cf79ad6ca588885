package swipe

import (
	"cmp"
	"slices"
	"time"
)

type Direction string

const (
	Like Direction = "like"
	Pass Direction = "pass"
)

func (d Direction) Valid() bool { return d == Like || d == Pass }

const MaxMessageLength = 180

type MediaType string

const (
	MediaTrack  MediaType = "track"
	MediaAlbum  MediaType = "album"
	MediaArtist MediaType = "artist"
)

func (m MediaType) Valid() bool {
	switch m {
	case MediaTrack, MediaAlbum, MediaArtist:
		return true
	}
	return false
}

// Target is what a swipe is about: exactly one of a profile or a media item.
type Target struct {
	UserID    uint64
	MediaType MediaType
	MediaID   string
}

func ProfileTarget(userID uint64) Target { return Target{UserID: userID} }

func MediaTarget(t MediaType, id string) Target { return Target{MediaType: t, MediaID: id} }

func (t Target) IsProfile() bool { return t.UserID != 0 && t.MediaType == "" }

func (t Target) IsMedia() bool { return t.UserID == 0 && t.MediaType != "" && t.MediaID != "" }

// MediaStat is the aggregated review activity for one media item.
type MediaStat struct {
	MediaType    MediaType
	MediaID      string
	ReviewCount  int64
	AvgRating    float64
	LastReviewAt time.Time
}

// RankMedia orders by review count, then average rating, then most recent
// review, all descending.
func RankMedia(stats []MediaStat) {
	slices.SortStableFunc(stats, func(a, b MediaStat) int {
		if c := cmp.Compare(b.ReviewCount, a.ReviewCount); c != 0 {
			return c
		}
		if c := cmp.Compare(b.AvgRating, a.AvgRating); c != 0 {
			return c
		}
		return b.LastReviewAt.Compare(a.LastReviewAt)
	})
}

// Relation is the follow state between two users seen from A.
type Relation struct {
	AFollowsB bool
	BFollowsA bool
}

func (r Relation) Mutual() bool { return r.AFollowsB && r.BFollowsA }

// State names the chat-gating state of the pair.
func (r Relation) State() string {
	switch {
	case r.Mutual():
		return "mutual"
	case r.AFollowsB || r.BFollowsA:
		return "one_way"
	default:
		return "none"
	}
}
