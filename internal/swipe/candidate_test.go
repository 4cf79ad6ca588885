package swipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func profile(id uint64, birth string, gender Gender) Profile {
	p := Profile{UserID: id, Username: "u", Gender: gender, CreatedAt: testNow.Add(-time.Duration(id) * time.Hour)}
	if birth != "" {
		p.BirthDate = &birth
	}
	return p
}

func TestNewViewer(t *testing.T) {
	self := profile(1, "2011-01-01", GenderFemale)
	self.Latitude, self.Longitude = f64(1), f64(2)

	v := NewViewer(self, DefaultPreferences(), testNow)
	assert.Equal(t, MinorCohort, v.Cohort)
	assert.Equal(t, 17, v.Prefs.MinAge)
	assert.Equal(t, 17, v.Prefs.MaxAge)
	assert.Equal(t, 1.0, *v.Latitude, "falls back to profile coordinates")

	prefs := DefaultPreferences()
	prefs.Latitude, prefs.Longitude = f64(10), f64(20)
	v = NewViewer(self, prefs, testNow)
	assert.Equal(t, 10.0, *v.Latitude, "preference location wins")
}

func TestEvaluate_CohortIsolation(t *testing.T) {
	minor := NewViewer(profile(1, "2011-05-05", GenderMale), Preferences{MinAge: 13, MaxAge: 99, MaxDistanceKm: 50}, testNow)
	adult := NewViewer(profile(2, "1990-05-05", GenderMale), Preferences{MinAge: 13, MaxAge: 99, MaxDistanceKm: 50}, testNow)

	minorCandidate := profile(10, "2010-01-01", GenderFemale)
	adultCandidate := profile(11, "2000-01-01", GenderFemale)
	unknownCandidate := profile(12, "", GenderFemale)

	_, why := minor.Evaluate(adultCandidate, testNow)
	assert.Equal(t, RejectCohort, why)
	_, why = minor.Evaluate(minorCandidate, testNow)
	assert.Equal(t, Admitted, why)

	_, why = adult.Evaluate(minorCandidate, testNow)
	assert.Equal(t, RejectCohort, why)
	_, why = adult.Evaluate(adultCandidate, testNow)
	assert.Equal(t, Admitted, why)

	_, why = adult.Evaluate(unknownCandidate, testNow)
	assert.Equal(t, RejectAgeUnknown, why)
	_, why = minor.Evaluate(unknownCandidate, testNow)
	assert.Equal(t, RejectAgeUnknown, why)
}

func TestEvaluate_AgeRangeAndGender(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.MinAge, prefs.MaxAge = 25, 30
	prefs.PreferredGenders = []Gender{GenderFemale}
	v := NewViewer(profile(1, "1995-01-01", GenderMale), prefs, testNow)

	c, why := v.Evaluate(profile(2, "1998-01-01", GenderFemale), testNow)
	require.Equal(t, Admitted, why)
	assert.Equal(t, 28, c.Age)
	assert.Nil(t, c.DistanceKm)

	_, why = v.Evaluate(profile(3, "2004-01-01", GenderFemale), testNow)
	assert.Equal(t, RejectAgeRange, why)

	_, why = v.Evaluate(profile(4, "1998-01-01", GenderMale), testNow)
	assert.Equal(t, RejectGender, why)
}

func TestEvaluate_DistanceBoundary(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.UseDistanceFilter = true
	prefs.MaxDistanceKm = 100
	prefs.Latitude, prefs.Longitude = f64(0), f64(0)
	v := NewViewer(profile(1, "1990-01-01", GenderMale), prefs, testNow)

	at := func(km float64) Profile {
		p := profile(2, "1990-01-01", GenderFemale)
		p.Latitude, p.Longitude = f64(km/kmPerDegree), f64(0)
		return p
	}

	c, why := v.Evaluate(at(100.0), testNow)
	require.Equal(t, Admitted, why)
	require.NotNil(t, c.DistanceKm)
	assert.Equal(t, 100.0, *c.DistanceKm)

	_, why = v.Evaluate(at(100.1), testNow)
	assert.Equal(t, RejectDistance, why)

	_, why = v.Evaluate(profile(3, "1990-01-01", GenderFemale), testNow)
	assert.Equal(t, RejectNoCoordinates, why)
}

func TestEvaluate_DistanceFilterNeedsViewerLocation(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.UseDistanceFilter = true
	v := NewViewer(profile(1, "1990-01-01", GenderMale), prefs, testNow)

	far := profile(2, "1990-01-01", GenderFemale)
	far.Latitude, far.Longitude = f64(60), f64(60)

	c, why := v.Evaluate(far, testNow)
	assert.Equal(t, Admitted, why)
	assert.Nil(t, c.DistanceKm)
}

func TestEvaluate_HiddenLocation(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Latitude, prefs.Longitude = f64(0), f64(0)
	v := NewViewer(profile(1, "1990-01-01", GenderMale), prefs, testNow)

	p := profile(2, "1990-01-01", GenderFemale)
	p.Location = "Lisbon"
	p.Latitude, p.Longitude = f64(0.1), f64(0)

	c, why := v.Evaluate(p, testNow)
	require.Equal(t, Admitted, why)
	require.NotNil(t, c.DistanceKm)
	assert.Equal(t, "Lisbon", c.Location)

	p.HideLocation = true
	c, why = v.Evaluate(p, testNow)
	require.Equal(t, Admitted, why)
	assert.Nil(t, c.DistanceKm)
	assert.Empty(t, c.Location)
}

func TestFilterAndRank(t *testing.T) {
	v := NewViewer(profile(1, "1990-01-01", GenderMale), DefaultPreferences(), testNow)

	a := profile(2, "1990-01-01", GenderFemale)
	a.FollowersCount = 3
	b := profile(3, "1990-01-01", GenderFemale)
	b.FollowersCount = 10
	c := profile(4, "1990-01-01", GenderFemale)
	c.FollowersCount = 3
	c.CreatedAt = testNow // newest
	minor := profile(5, "2012-01-01", GenderFemale)

	got, rejected := v.Filter([]Profile{a, b, c, minor}, testNow)
	assert.Equal(t, 1, rejected[RejectCohort])

	RankProfiles(got)
	ids := make([]uint64, len(got))
	for i, g := range got {
		ids[i] = g.UserID
	}
	assert.Equal(t, []uint64{3, 4, 2}, ids)
}

func TestRankMedia(t *testing.T) {
	stats := []MediaStat{
		{MediaID: "a", ReviewCount: 2, AvgRating: 4, LastReviewAt: testNow},
		{MediaID: "b", ReviewCount: 5, AvgRating: 1, LastReviewAt: testNow},
		{MediaID: "c", ReviewCount: 2, AvgRating: 4.5, LastReviewAt: testNow.Add(-time.Hour)},
		{MediaID: "d", ReviewCount: 2, AvgRating: 4, LastReviewAt: testNow.Add(time.Hour)},
	}
	RankMedia(stats)

	ids := []string{stats[0].MediaID, stats[1].MediaID, stats[2].MediaID, stats[3].MediaID}
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids)
}

func TestRelationState(t *testing.T) {
	assert.Equal(t, "none", Relation{}.State())
	assert.Equal(t, "one_way", Relation{AFollowsB: true}.State())
	assert.Equal(t, "one_way", Relation{BFollowsA: true}.State())
	assert.Equal(t, "mutual", Relation{AFollowsB: true, BFollowsA: true}.State())
	assert.True(t, Relation{AFollowsB: true, BFollowsA: true}.Mutual())
}

func TestTarget(t *testing.T) {
	assert.True(t, ProfileTarget(5).IsProfile())
	assert.False(t, ProfileTarget(5).IsMedia())
	assert.True(t, MediaTarget(MediaTrack, "x").IsMedia())
	assert.False(t, MediaTarget(MediaTrack, "x").IsProfile())
	assert.False(t, MediaTarget(MediaTrack, "").IsMedia())
}
