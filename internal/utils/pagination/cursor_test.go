package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 123456789, time.UTC)
	token, err := Encode(At(12, at))
	require.NoError(t, err)
	assert.NotContains(t, token, "=")

	c, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), c.ID)
	assert.True(t, at.Equal(c.Time()), "sub-millisecond precision survives: %s", c.Time())
	assert.False(t, c.IsZero())
}

func TestDecode_Empty(t *testing.T) {
	c, err := Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}

func TestDecode_Invalid(t *testing.T) {
	raw := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	for name, token := range map[string]string{
		"not base64":    "%%%",
		"not json":      raw("not-json"),
		"zero cursor":   raw(`{"id":0,"ts":0}`),
		"negative time": raw(`{"id":3,"ts":-5}`),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
