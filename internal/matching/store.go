package matching

import (
	"context"
	"errors"
	"time"

	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// ErrNotFound is returned by stores when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// UserDirectory reads user records owned by the account subsystem.
type UserDirectory interface {
	GetUser(ctx context.Context, id uint64) (swipe.Profile, error)
	// CandidatePool returns up to q.Limit users, most followed first, with
	// self, prior profile-swipe targets, block relations and the viewer's
	// birth-date window already pushed down into the query.
	CandidatePool(ctx context.Context, q PoolQuery) ([]swipe.Profile, error)
}

// PoolQuery narrows the candidate pool before ranking. BornFrom and BornTo
// are inclusive YYYY-MM-DD bounds; rows without a birth date never match.
type PoolQuery struct {
	ActorID  uint64
	BornFrom string
	BornTo   string
	Limit    int
}

type PreferenceStore interface {
	// Get returns the stored preferences; found is false when no row exists.
	Get(ctx context.Context, userID uint64) (prefs swipe.Preferences, found bool, err error)
	// EnsureDefaults inserts defaults if no row exists and returns the row.
	EnsureDefaults(ctx context.Context, userID uint64, defaults swipe.Preferences) (prefs swipe.Preferences, created bool, err error)
	Save(ctx context.Context, userID uint64, prefs swipe.Preferences) error
}

// SwipeLog is the append-only swipe action log.
type SwipeLog interface {
	Append(ctx context.Context, a Action) (uint64, error)
	SwipedUserIDs(ctx context.Context, actorID uint64) ([]uint64, error)
}

type FollowGraphStore interface {
	// Follow creates the edge; an existing edge is a no-op with created=false.
	Follow(ctx context.Context, followerID, followingID uint64) (created bool, err error)
	Unfollow(ctx context.Context, followerID, followingID uint64) (removed bool, err error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	// FollowingAmong reports which of ids userID follows.
	FollowingAmong(ctx context.Context, userID uint64, ids []uint64) (map[uint64]bool, error)
	// FollowedByAmong reports which of ids follow userID.
	FollowedByAmong(ctx context.Context, userID uint64, ids []uint64) (map[uint64]bool, error)
	CountFollowers(ctx context.Context, userID uint64) (int64, error)
	ListFollowers(ctx context.Context, q FollowerQuery) ([]Follower, *string, error)
}

type BlockStore interface {
	Block(ctx context.Context, blockerID, blockedID uint64) error
	Unblock(ctx context.Context, blockerID, blockedID uint64) error
	BlockedEitherWay(ctx context.Context, a, b uint64) (bool, error)
	// RelatedTo returns every user with a block relation to userID in
	// either direction.
	RelatedTo(ctx context.Context, userID uint64) ([]uint64, error)
}

type InvitationStore interface {
	Create(ctx context.Context, inv *Invitation) error
	Get(ctx context.Context, id string) (Invitation, error)
	ListPending(ctx context.Context, receiverID uint64) ([]Invitation, error)
	// SetStatus moves a pending invitation; updated is false when it was no
	// longer pending.
	SetStatus(ctx context.Context, id string, status InvitationStatus) (updated bool, err error)
}

// MediaStatsProvider aggregates review activity per media item.
type MediaStatsProvider interface {
	TopUnswiped(ctx context.Context, actorID uint64, limit int) ([]swipe.MediaStat, error)
	Exists(ctx context.Context, mediaType swipe.MediaType, mediaID string) (bool, error)
}

// Store groups the collaborators over one transactional backend.
type Store interface {
	Users() UserDirectory
	Preferences() PreferenceStore
	Swipes() SwipeLog
	Follows() FollowGraphStore
	Blocks() BlockStore
	Invitations() InvitationStore
	MediaStats() MediaStatsProvider
	// WithinTx runs fn against a Store bound to one transaction. Returning
	// an error rolls everything back.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

// Action is a swipe log entry.
type Action struct {
	ActorID   uint64
	Target    swipe.Target
	Direction swipe.Direction
	Message   string
	CreatedAt time.Time
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

const SourceProfileSwipe = "profile_swipe"

type Invitation struct {
	ID         string
	SenderID   uint64
	ReceiverID uint64
	SourceType string
	Message    string
	Status     InvitationStatus
	CreatedAt  time.Time
}

type FollowerQuery struct {
	UserID uint64
	// OnlyNew drops followers UserID already follows back.
	OnlyNew bool
	Token   *string
	Limit   int
}

type Follower struct {
	UserID    uint64
	CreatedAt time.Time
}
