package matching_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// TestGetPreferences_MaterializesDefaults: the first read writes the
// defaults row explicitly.
func TestGetPreferences_MaterializesDefaults(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addUser(t, 1, "male", 25)
	f.addUser(t, 2, "female", 15)

	_, found, err := f.store.Preferences().Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	p, err := f.engine.GetPreferences(ctx, 1)
	require.NoError(t, err)
	assert.False(t, p.UseDistanceFilter)
	assert.Equal(t, 50, p.MaxDistanceKm)
	assert.Equal(t, 18, p.MinAge)
	assert.Equal(t, 99, p.MaxAge)
	assert.Empty(t, p.PreferredGenders)
	assert.False(t, p.HasLocation())

	stored, found, err := f.store.Preferences().Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 18, stored.MinAge)
	assert.Equal(t, 99, stored.MaxAge)

	minor, err := f.engine.GetPreferences(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 13, minor.MinAge)
	assert.Equal(t, 17, minor.MaxAge)
}

func TestListProfileCandidates_DoesNotWritePreferences(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addUser(t, 1, "male", 25)

	_, err := f.engine.ListProfileCandidates(ctx, 1, 10)
	require.NoError(t, err)

	_, found, err := f.store.Preferences().Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

// TestSetPreferences_AgeRangeSelfHealing: an inverted range resets to the
// full cohort instead of failing.
func TestSetPreferences_AgeRangeSelfHealing(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addUser(t, 1, "male", 25)
	f.addUser(t, 2, "female", 15)

	lo, hi := 80, 20
	p, err := f.engine.SetPreferences(ctx, 1, swipe.Patch{MinAge: &lo, MaxAge: &hi})
	require.NoError(t, err)
	assert.Equal(t, 18, p.MinAge)
	assert.Equal(t, 99, p.MaxAge)

	stored, _, err := f.store.Preferences().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 18, stored.MinAge)
	assert.Equal(t, 99, stored.MaxAge)

	// a minor asking for adults is pinned into their cohort
	lo, hi = 20, 30
	p, err = f.engine.SetPreferences(ctx, 2, swipe.Patch{MinAge: &lo, MaxAge: &hi})
	require.NoError(t, err)
	assert.Equal(t, 17, p.MinAge)
	assert.Equal(t, 17, p.MaxAge)
}

func TestSetPreferences_Partial(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addUser(t, 1, "male", 25)

	on, km := true, 9000
	genders := []swipe.Gender{swipe.GenderFemale, swipe.GenderFemale}
	lat, lon := 51.5, -0.12
	p, err := f.engine.SetPreferences(ctx, 1, swipe.Patch{
		UseDistanceFilter: &on,
		MaxDistanceKm:     &km,
		PreferredGenders:  &genders,
		Latitude:          &lat,
		Longitude:         &lon,
	})
	require.NoError(t, err)
	assert.True(t, p.UseDistanceFilter)
	assert.Equal(t, 500, p.MaxDistanceKm)
	assert.Equal(t, []swipe.Gender{swipe.GenderFemale}, p.PreferredGenders)

	// only the age changes; everything else is kept
	lo := 30
	p, err = f.engine.SetPreferences(ctx, 1, swipe.Patch{MinAge: &lo})
	require.NoError(t, err)
	assert.Equal(t, 30, p.MinAge)
	assert.Equal(t, 500, p.MaxDistanceKm)
	require.True(t, p.HasLocation())
	assert.Equal(t, 51.5, *p.Latitude)

	p, err = f.engine.SetPreferences(ctx, 1, swipe.Patch{ClearLocation: true})
	require.NoError(t, err)
	assert.False(t, p.HasLocation())

	got, err := f.engine.GetPreferences(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSetPreferences_Validation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addUser(t, 1, "male", 25)

	bad := []swipe.Gender{"robot"}
	_, err := f.engine.SetPreferences(ctx, 1, swipe.Patch{PreferredGenders: &bad})
	assertValidation(t, err)

	lat := 10.0
	_, err = f.engine.SetPreferences(ctx, 1, swipe.Patch{Latitude: &lat})
	assertValidation(t, err)

	lat, lon := 91.0, 0.0
	_, err = f.engine.SetPreferences(ctx, 1, swipe.Patch{Latitude: &lat, Longitude: &lon})
	assertValidation(t, err)

	_, err = f.engine.SetPreferences(ctx, 9, swipe.Patch{})
	assertNotFound(t, err)
	_, err = f.engine.GetPreferences(ctx, 0)
	assertValidation(t, err)
}
