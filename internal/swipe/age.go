package swipe

import "time"

const (
	MinorMinAge = 13
	MinorMaxAge = 17
	AdultMinAge = 18
	AdultMaxAge = 99

	maxPlausibleAge = 130
	birthDateLayout = "2006-01-02"
)

// Cohort is an age band that partitions the candidate pool. Minors and adults
// must never see each other.
type Cohort struct {
	Min int
	Max int
}

var (
	MinorCohort = Cohort{Min: MinorMinAge, Max: MinorMaxAge}
	AdultCohort = Cohort{Min: AdultMinAge, Max: AdultMaxAge}
)

// Age parses a strict YYYY-MM-DD birth date and returns the age in whole
// years at now (UTC calendar). ok is false for a missing or malformed date
// and for results outside [0,130].
func Age(birthDate *string, now time.Time) (age int, ok bool) {
	if birthDate == nil || len(*birthDate) != len(birthDateLayout) {
		return 0, false
	}
	b, err := time.Parse(birthDateLayout, *birthDate)
	if err != nil {
		return 0, false
	}

	now = now.UTC()
	age = now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 || age > maxPlausibleAge {
		return 0, false
	}
	return age, true
}

// CohortFor returns the cohort for an age. Unknown ages are treated as adult.
func CohortFor(age int, known bool) Cohort {
	if known && age < AdultMinAge {
		return MinorCohort
	}
	return AdultCohort
}

// CohortOf is CohortFor(Age(birthDate, now)).
func CohortOf(birthDate *string, now time.Time) Cohort {
	return CohortFor(Age(birthDate, now))
}

func (c Cohort) IsMinor() bool { return c == MinorCohort }

// Admits reports whether a candidate of the given age may be shown to a
// viewer in c. Unknown ages are never admitted. This is independent of the
// viewer's preferred range.
func (c Cohort) Admits(age int, known bool) bool {
	if !known {
		return false
	}
	if c.IsMinor() {
		return age < AdultMinAge
	}
	return age >= AdultMinAge
}

// Clamp forces a requested age range into the cohort. Each bound is clamped
// into [c.Min, c.Max]; if the result is inverted the full cohort range is
// returned instead of an error.
func (c Cohort) Clamp(minAge, maxAge int) (int, int) {
	minAge = clampInt(minAge, c.Min, c.Max)
	maxAge = clampInt(maxAge, c.Min, c.Max)
	if minAge > maxAge {
		return c.Min, c.Max
	}
	return minAge, maxAge
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BirthDates returns inclusive YYYY-MM-DD bounds that cover every birth date
// c admits at now. The bounds are a day wider on each side so calendar edge
// cases (Feb 29) never exclude an admissible row; Admits stays the final
// check.
func (c Cohort) BirthDates(now time.Time) (from, to string) {
	now = now.UTC()
	if c.IsMinor() {
		return now.AddDate(-AdultMinAge, 0, -1).Format(birthDateLayout),
			now.AddDate(0, 0, 1).Format(birthDateLayout)
	}
	return now.AddDate(-(maxPlausibleAge + 1), 0, -1).Format(birthDateLayout),
		now.AddDate(-AdultMinAge, 0, 1).Format(birthDateLayout)
}
