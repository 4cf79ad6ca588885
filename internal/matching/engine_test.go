package matching_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oggyb/swipe-discovery/internal/db"
	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/logger"
	"github.com/oggyb/swipe-discovery/internal/matching"
	"github.com/oggyb/swipe-discovery/internal/repository"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

//
// Test helpers
//

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db     *gorm.DB
	store  *repository.Store
	engine *matching.Engine
}

// setup opens an isolated in-memory SQLite DB, migrates it and builds an
// engine over it with a fixed clock.
func setup(t *testing.T, opts ...matching.Option) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		NowFunc:                db.Now,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	store := repository.NewStore(gdb)
	opts = append([]matching.Option{
		matching.WithClock(func() time.Time { return testNow }),
		matching.WithLogger(logger.Discard()),
	}, opts...)
	return &fixture{db: gdb, store: store, engine: matching.New(store, opts...)}
}

// born returns a birth date that makes someone exactly age at testNow.
func born(age int) *string {
	s := testNow.AddDate(-age, 0, -1).Format("2006-01-02")
	return &s
}

type userOpt func(*db.User)

func at(lat, lon float64) userOpt {
	return func(u *db.User) { u.Latitude, u.Longitude = &lat, &lon }
}

func hidingLocation() userOpt {
	return func(u *db.User) { u.HideLocation = true }
}

func noBirthDate() userOpt {
	return func(u *db.User) { u.BirthDate = nil }
}

// addUser inserts a user of the given age. Higher ids are newer accounts.
func (f *fixture) addUser(t *testing.T, id uint64, gender string, age int, opts ...userOpt) {
	t.Helper()
	u := db.User{
		ID:           id,
		Username:     fmt.Sprintf("user%d", id),
		Email:        fmt.Sprintf("u%d@test.com", id),
		PasswordHash: "x",
		Active:       true,
		Gender:       gender,
		BirthDate:    born(age),
		Location:     fmt.Sprintf("City %d", id),
		CreatedAt:    testNow.Add(-24 * time.Hour).Add(time.Duration(id) * time.Minute),
	}
	for _, o := range opts {
		o(&u)
	}
	require.NoError(t, f.db.Create(&u).Error)
}

func (f *fixture) follow(t *testing.T, follower, following uint64) {
	t.Helper()
	_, err := f.store.Follows().Follow(context.Background(), follower, following)
	require.NoError(t, err)
}

func (f *fixture) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where(where, args...).Count(&n).Error)
	return n
}

func candidateIDs(cs []matching.ProfileCandidate) []uint64 {
	ids := make([]uint64, len(cs))
	for i, c := range cs {
		ids[i] = c.UserID
	}
	return ids
}

func assertKind(t *testing.T, err error, want svcErr.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, svcErr.KindOf(err), "got %v", err)
}

func assertValidation(t *testing.T, err error) {
	t.Helper()
	assertKind(t, err, svcErr.KindValidation)
}

func assertPolicy(t *testing.T, err error) {
	t.Helper()
	assertKind(t, err, svcErr.KindPolicy)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	assertKind(t, err, svcErr.KindNotFound)
}

// addReview stores a review written ago minutes before testNow.
func (f *fixture) addReview(t *testing.T, userID uint64, mediaType swipe.MediaType, mediaID string, rating float64, ago int) {
	t.Helper()
	r := db.Review{
		UserID:    userID,
		MediaType: string(mediaType),
		MediaID:   mediaID,
		Rating:    rating,
		CreatedAt: testNow.Add(-time.Duration(ago) * time.Minute),
	}
	require.NoError(t, f.db.Create(&r).Error)
}
