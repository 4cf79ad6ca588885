// Package repository implements the matching engine's collaborator
// interfaces on top of gorm. Every repository is a thin struct over a
// *gorm.DB so the same code runs inside or outside a transaction.
package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/swipe-discovery/internal/matching"
)

// Store bundles the repositories over one connection or transaction.
type Store struct {
	db *gorm.DB
}

var _ matching.Store = (*Store)(nil)

// NewStore creates a Store bound to the given DB connection.
func NewStore(database *gorm.DB) *Store {
	return &Store{db: database}
}

func (s *Store) Users() matching.UserDirectory           { return NewUserRepository(s.db) }
func (s *Store) Preferences() matching.PreferenceStore   { return NewPreferenceRepository(s.db) }
func (s *Store) Swipes() matching.SwipeLog               { return NewSwipeRepository(s.db) }
func (s *Store) Follows() matching.FollowGraphStore      { return NewFollowRepository(s.db) }
func (s *Store) Blocks() matching.BlockStore             { return NewBlockRepository(s.db) }
func (s *Store) Invitations() matching.InvitationStore   { return NewInvitationRepository(s.db) }
func (s *Store) MediaStats() matching.MediaStatsProvider { return NewMediaStatsRepository(s.db) }

// WithinTx runs fn in a single database transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx matching.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// notFound translates gorm's sentinel into the engine's.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return matching.ErrNotFound
	}
	return err
}

// sqlTime scans aggregate timestamps. MySQL hands back time.Time while
// SQLite returns MAX(...) over a datetime column as text.
type sqlTime struct {
	time.Time
}

var sqliteLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func (t *sqlTime) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = x.UTC()
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	default:
		return fmt.Errorf("sqlTime: unsupported type %T", v)
	}
}

func (t *sqlTime) parse(s string) error {
	for _, layout := range sqliteLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqlTime: cannot parse %q", s)
}

func (t sqlTime) Value() (driver.Value, error) { return t.Time, nil }
