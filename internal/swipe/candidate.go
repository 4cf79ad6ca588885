package swipe

import (
	"cmp"
	"slices"
	"time"
)

// Profile is the subset of a user record discovery needs.
type Profile struct {
	UserID         uint64
	Username       string
	Gender         Gender
	BirthDate      *string
	Location       string
	HideLocation   bool
	Latitude       *float64
	Longitude      *float64
	FollowersCount int64
	CreatedAt      time.Time
}

func (p Profile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Rejection says why a candidate was filtered out. Empty means admitted.
type Rejection string

const (
	Admitted            Rejection = ""
	RejectAgeUnknown    Rejection = "age_unknown"
	RejectCohort        Rejection = "cohort"
	RejectAgeRange      Rejection = "age_range"
	RejectGender        Rejection = "gender"
	RejectNoCoordinates Rejection = "no_coordinates"
	RejectDistance      Rejection = "distance"
)

// Viewer is the actor side of a filter pass. Prefs must already be
// normalized against Cohort.
type Viewer struct {
	Cohort    Cohort
	Prefs     Preferences
	Latitude  *float64
	Longitude *float64
}

// NewViewer builds a viewer for a user: the cohort comes from the birth date,
// preferences are re-clamped into it, and the preference location wins over
// the profile location.
func NewViewer(self Profile, prefs Preferences, now time.Time) Viewer {
	cohort := CohortOf(self.BirthDate, now)
	v := Viewer{
		Cohort: cohort,
		Prefs:  prefs.Normalize(cohort),
	}
	switch {
	case v.Prefs.HasLocation():
		v.Latitude, v.Longitude = v.Prefs.Latitude, v.Prefs.Longitude
	case self.HasLocation():
		v.Latitude, v.Longitude = self.Latitude, self.Longitude
	}
	return v
}

func (v Viewer) hasLocation() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// Candidate is a profile that survived filtering.
type Candidate struct {
	Profile
	Age int
	// DistanceKm is rounded to one decimal; nil when either side has no
	// coordinates or the candidate hides their location.
	DistanceKm *float64
}

// Evaluate runs the per-candidate filter in order: age known, cohort, age
// range, gender, distance.
func (v Viewer) Evaluate(p Profile, now time.Time) (Candidate, Rejection) {
	age, known := Age(p.BirthDate, now)
	if !known {
		return Candidate{}, RejectAgeUnknown
	}
	if !v.Cohort.Admits(age, known) {
		return Candidate{}, RejectCohort
	}
	if age < v.Prefs.MinAge || age > v.Prefs.MaxAge {
		return Candidate{}, RejectAgeRange
	}
	if !v.Prefs.AcceptsGender(p.Gender) {
		return Candidate{}, RejectGender
	}

	c := Candidate{Profile: p, Age: age}

	var km float64
	measured := v.hasLocation() && p.HasLocation()
	if measured {
		km = HaversineKm(*v.Latitude, *v.Longitude, *p.Latitude, *p.Longitude)
	}
	if v.Prefs.UseDistanceFilter && v.hasLocation() {
		if !measured {
			return Candidate{}, RejectNoCoordinates
		}
		if !withinRadius(km, v.Prefs.MaxDistanceKm) {
			return Candidate{}, RejectDistance
		}
	}
	if measured && !p.HideLocation {
		rounded := RoundKm(km)
		c.DistanceKm = &rounded
	}
	if p.HideLocation {
		c.Location = ""
	}
	return c, Admitted
}

// Filter evaluates every profile and returns the survivors in input order
// along with a count per rejection reason.
func (v Viewer) Filter(pool []Profile, now time.Time) ([]Candidate, map[Rejection]int) {
	out := make([]Candidate, 0, len(pool))
	rejected := make(map[Rejection]int)
	for _, p := range pool {
		c, why := v.Evaluate(p, now)
		if why != Admitted {
			rejected[why]++
			continue
		}
		out = append(out, c)
	}
	return out, rejected
}

// RankProfiles orders candidates by followers desc, then newest account
// first. User id breaks remaining ties so pages are stable.
func RankProfiles(cs []Candidate) {
	slices.SortStableFunc(cs, func(a, b Candidate) int {
		if c := cmp.Compare(b.FollowersCount, a.FollowersCount); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.UserID, a.UserID)
	})
}
