package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Cursor is the keyset position of the last follower on a page: the
// follower id and the edge creation time in Unix nanoseconds. The full
// precision is kept so rows stamped within one millisecond are never skipped
// at a page boundary, whatever precision the backend stores.
type Cursor struct {
	ID       uint64 `json:"id"`
	UnixNano int64  `json:"ts,omitempty"`
}

// At returns the cursor for the row written at t by id.
func At(id uint64, t time.Time) Cursor {
	return Cursor{ID: id, UnixNano: t.UnixNano()}
}

// IsZero reports whether the cursor points at the first page.
func (c Cursor) IsZero() bool { return c.ID == 0 || c.UnixNano == 0 }

func (c Cursor) Time() time.Time { return time.Unix(0, c.UnixNano).UTC() }

// Encode returns the opaque URL-safe token for c.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses a token produced by Encode. An empty token is the first page.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidToken
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil || c.UnixNano < 0 || c.IsZero() {
		return Cursor{}, ErrInvalidToken
	}
	return c, nil
}

// ErrInvalidToken is returned for tokens this package did not produce.
var ErrInvalidToken = errors.New("invalid pagination token")
