package swipe

import "slices"

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

const (
	DefaultMaxDistanceKm = 50
	MinDistanceKm        = 1
	MaxDistanceKm        = 500
)

// Preferences are a user's discovery settings.
type Preferences struct {
	UseDistanceFilter bool
	MaxDistanceKm     int
	MinAge            int
	MaxAge            int
	PreferredGenders  []Gender
	Latitude          *float64
	Longitude         *float64
}

// DefaultPreferences is what a user gets before saving anything.
func DefaultPreferences() Preferences {
	return Preferences{
		UseDistanceFilter: false,
		MaxDistanceKm:     DefaultMaxDistanceKm,
		MinAge:            AdultMinAge,
		MaxAge:            AdultMaxAge,
	}
}

// DefaultPreferencesFor is DefaultPreferences with the age range opened to
// the whole of c. For adults the two are identical.
func DefaultPreferencesFor(c Cohort) Preferences {
	p := DefaultPreferences()
	p.MinAge, p.MaxAge = c.Min, c.Max
	return p
}

// Normalize clamps the age range into c, the distance into [1,500] and
// removes duplicate genders. A half-set location is dropped.
func (p Preferences) Normalize(c Cohort) Preferences {
	p.MinAge, p.MaxAge = c.Clamp(p.MinAge, p.MaxAge)
	p.MaxDistanceKm = clampInt(p.MaxDistanceKm, MinDistanceKm, MaxDistanceKm)

	genders := make([]Gender, 0, len(p.PreferredGenders))
	for _, g := range p.PreferredGenders {
		if !slices.Contains(genders, g) {
			genders = append(genders, g)
		}
	}
	slices.Sort(genders)
	p.PreferredGenders = genders

	if p.Latitude == nil || p.Longitude == nil {
		p.Latitude, p.Longitude = nil, nil
	}
	return p
}

// HasLocation reports whether both coordinates are set.
func (p Preferences) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// AcceptsGender reports whether g passes the gender filter. An empty set
// accepts everyone.
func (p Preferences) AcceptsGender(g Gender) bool {
	return len(p.PreferredGenders) == 0 || slices.Contains(p.PreferredGenders, g)
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	UseDistanceFilter *bool
	MaxDistanceKm     *int
	MinAge            *int
	MaxAge            *int
	PreferredGenders  *[]Gender
	Latitude          *float64
	Longitude         *float64
	ClearLocation     bool
}

// Apply returns p with the patch applied. The result still needs Normalize.
func (p Preferences) Apply(patch Patch) Preferences {
	if patch.UseDistanceFilter != nil {
		p.UseDistanceFilter = *patch.UseDistanceFilter
	}
	if patch.MaxDistanceKm != nil {
		p.MaxDistanceKm = *patch.MaxDistanceKm
	}
	if patch.MinAge != nil {
		p.MinAge = *patch.MinAge
	}
	if patch.MaxAge != nil {
		p.MaxAge = *patch.MaxAge
	}
	if patch.PreferredGenders != nil {
		p.PreferredGenders = slices.Clone(*patch.PreferredGenders)
	}
	if patch.ClearLocation {
		p.Latitude, p.Longitude = nil, nil
	} else if patch.Latitude != nil && patch.Longitude != nil {
		lat, lon := *patch.Latitude, *patch.Longitude
		p.Latitude, p.Longitude = &lat, &lon
	}
	return p
}
