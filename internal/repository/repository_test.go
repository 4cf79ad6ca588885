package repository_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/matching"
	"github.com/oggyb/swipe-discovery/internal/repository"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

func setupStore(t *testing.T) (*repository.Store, *gorm.DB) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                db.Now,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	users := []db.User{
		{ID: 1, Username: "user1", Email: "u1@test.com", PasswordHash: "x", Gender: "male", BirthDate: bornOn("1995-04-02"), Active: true},
		{ID: 2, Username: "user2", Email: "u2@test.com", PasswordHash: "x", Gender: "female", BirthDate: bornOn("1997-08-20"), Active: true},
		{ID: 3, Username: "user3", Email: "u3@test.com", PasswordHash: "x", Gender: "female", BirthDate: bornOn("1990-12-01"), Active: true},
	}
	require.NoError(t, gdb.Create(&users).Error)
	return repository.NewStore(gdb), gdb
}

func bornOn(date string) *string { return &date }

// adultPool is the pool query an adult viewer issues on 2026-10-19.
func adultPool(actorID uint64, limit int) matching.PoolQuery {
	return matching.PoolQuery{ActorID: actorID, BornFrom: "1895-10-18", BornTo: "2008-10-20", Limit: limit}
}

func TestPreferenceRepository_EnsureDefaults(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	prefs := store.Preferences()

	defaults := swipe.DefaultPreferences()
	got, created, err := prefs.EnsureDefaults(ctx, 1, defaults)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 50, got.MaxDistanceKm)

	// a saved row is never overwritten by defaults
	got.MinAge = 30
	got.PreferredGenders = []swipe.Gender{swipe.GenderFemale}
	require.NoError(t, prefs.Save(ctx, 1, got))

	again, created, err := prefs.EnsureDefaults(ctx, 1, defaults)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 30, again.MinAge)
	assert.Equal(t, []swipe.Gender{swipe.GenderFemale}, again.PreferredGenders)
}

func TestUserRepository_GetUser(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	_, err := store.Follows().Follow(ctx, 2, 1)
	require.NoError(t, err)

	p, err := store.Users().GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "user1", p.Username)
	assert.Equal(t, int64(1), p.FollowersCount)

	_, err = store.Users().GetUser(ctx, 99)
	assert.ErrorIs(t, err, matching.ErrNotFound)
}

func TestUserRepository_CandidatePoolSkipsInactive(t *testing.T) {
	ctx := context.Background()
	store, gdb := setupStore(t)
	require.NoError(t, gdb.Model(&db.User{}).Where("id = ?", 3).Update("active", false).Error)

	pool, err := store.Users().CandidatePool(ctx, adultPool(1, 10))
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, uint64(2), pool[0].UserID)
}

func TestUserRepository_CandidatePoolBirthDateWindow(t *testing.T) {
	ctx := context.Background()
	store, gdb := setupStore(t)

	extra := []db.User{
		{ID: 4, Username: "user4", Email: "u4@test.com", PasswordHash: "x", Gender: "female", BirthDate: bornOn("2010-05-05"), Active: true},
		{ID: 5, Username: "user5", Email: "u5@test.com", PasswordHash: "x", Gender: "female", Active: true},
	}
	require.NoError(t, gdb.Create(&extra).Error)
	// the adults outrank everyone else on followers
	for _, follower := range []uint64{1, 4, 5} {
		_, err := store.Follows().Follow(ctx, follower, 2)
		require.NoError(t, err)
		_, err = store.Follows().Follow(ctx, follower, 3)
		require.NoError(t, err)
	}

	minors, err := store.Users().CandidatePool(ctx, matching.PoolQuery{
		ActorID: 1, BornFrom: "2008-10-18", BornTo: "2026-10-20", Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, minors, 1)
	assert.Equal(t, uint64(4), minors[0].UserID)

	adults, err := store.Users().CandidatePool(ctx, adultPool(1, 10))
	require.NoError(t, err)
	ids := make([]uint64, len(adults))
	for i, p := range adults {
		ids[i] = p.UserID
	}
	assert.ElementsMatch(t, []uint64{2, 3}, ids, "no birth date never matches")
}

func TestSwipeRepository(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	log := store.Swipes()

	_, err := log.Append(ctx, matching.Action{ActorID: 1, Direction: swipe.Like})
	assert.Error(t, err, "a swipe needs a target")

	_, err = log.Append(ctx, matching.Action{ActorID: 1, Target: swipe.ProfileTarget(2), Direction: swipe.Like})
	require.NoError(t, err)
	_, err = log.Append(ctx, matching.Action{ActorID: 1, Target: swipe.ProfileTarget(2), Direction: swipe.Pass})
	require.NoError(t, err)
	_, err = log.Append(ctx, matching.Action{ActorID: 1, Target: swipe.MediaTarget(swipe.MediaTrack, "x"), Direction: swipe.Like})
	require.NoError(t, err)

	ids, err := log.SwipedUserIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids)
}

func TestWithinTx_RollsBack(t *testing.T) {
	ctx := context.Background()
	store, gdb := setupStore(t)

	err := store.WithinTx(ctx, func(tx matching.Store) error {
		if _, err := tx.Follows().Follow(ctx, 1, 2); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	var n int64
	require.NoError(t, gdb.Model(&db.FollowEdge{}).Count(&n).Error)
	assert.Zero(t, n)
}

// TestFollowRepository_PagesWithinOneMillisecond pages through edges
// stamped 100µs apart, all inside one millisecond.
func TestFollowRepository_PagesWithinOneMillisecond(t *testing.T) {
	ctx := context.Background()
	store, gdb := setupStore(t)

	base := time.Date(2026, 10, 19, 12, 0, 0, 100_000, time.UTC)
	var edges []db.FollowEdge
	for i := 0; i < 7; i++ {
		edges = append(edges, db.FollowEdge{
			FollowerID:  uint64(10 + i),
			FollowingID: 1,
			CreatedAt:   base.Add(time.Duration(i) * 100 * time.Microsecond),
		})
	}
	require.NoError(t, gdb.Create(&edges).Error)

	var seen []uint64
	var token *string
	for page := 0; page < 3; page++ {
		followers, next, err := store.Follows().ListFollowers(ctx, matching.FollowerQuery{UserID: 1, Token: token, Limit: 5})
		require.NoError(t, err)
		for _, f := range followers {
			seen = append(seen, f.UserID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, []uint64{16, 15, 14, 13, 12, 11, 10}, seen)
}

// TestMissingRowsAreNotLoggedAsErrors opens the DB with the production gorm
// configuration and looks up rows that do not exist.
func TestMissingRowsAreNotLoggedAsErrors(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dbName), db.GormConfig(log, slog.LevelDebug))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	store := repository.NewStore(gdb)

	_, found, err := store.Preferences().Get(ctx, 42)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = store.Users().GetUser(ctx, 42)
	assert.ErrorIs(t, err, matching.ErrNotFound)

	assert.Contains(t, buf.String(), "SQL executed")
	assert.NotContains(t, buf.String(), "record not found")
	assert.NotContains(t, buf.String(), "level=ERROR")
}

func TestInvitationRepository(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	invs := store.Invitations()

	inv := &matching.Invitation{SenderID: 2, ReceiverID: 1, SourceType: matching.SourceProfileSwipe, Message: "hi"}
	require.NoError(t, invs.Create(ctx, inv))
	assert.Len(t, inv.ID, 36)
	assert.Equal(t, matching.InvitationPending, inv.Status)

	got, err := invs.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Message)

	updated, err := invs.SetStatus(ctx, inv.ID, matching.InvitationAccepted)
	require.NoError(t, err)
	assert.True(t, updated)
	updated, err = invs.SetStatus(ctx, inv.ID, matching.InvitationRejected)
	require.NoError(t, err)
	assert.False(t, updated, "only pending invitations move")

	_, err = invs.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, matching.ErrNotFound)
}

func TestMediaStatsRepository_Exists(t *testing.T) {
	ctx := context.Background()
	store, gdb := setupStore(t)
	require.NoError(t, gdb.Create(&db.Review{UserID: 1, MediaType: "album", MediaID: "a1", Rating: 4}).Error)

	ok, err := store.MediaStats().Exists(ctx, swipe.MediaAlbum, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.MediaStats().Exists(ctx, swipe.MediaTrack, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
}
