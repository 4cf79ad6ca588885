package matching

import (
	"context"

	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// GetPreferences returns the user's preferences, materializing defaults on
// first read. The result is clamped into the user's current cohort, so a
// birthday between save and read is reflected without a write.
func (e *Engine) GetPreferences(ctx context.Context, userID uint64) (swipe.Preferences, error) {
	if err := requireID(userID, "user_id"); err != nil {
		return swipe.Preferences{}, err
	}
	self, err := e.loadUser(ctx, e.store.Users(), userID, "user")
	if err != nil {
		return swipe.Preferences{}, err
	}
	cohort := swipe.CohortOf(self.BirthDate, e.now())

	prefs, created, err := e.store.Preferences().EnsureDefaults(ctx, userID, swipe.DefaultPreferencesFor(cohort))
	if err != nil {
		e.log.Error("ensure default preferences failed", "user_id", userID, "err", err)
		return swipe.Preferences{}, svcErr.Transient("load preferences", err)
	}
	if created {
		e.log.Debug("materialized default preferences", "user_id", userID)
	}
	return prefs.Normalize(cohort), nil
}

// SetPreferences applies a partial update and stores the clamped result.
// An inverted age range is reset to the full cohort, never rejected.
func (e *Engine) SetPreferences(ctx context.Context, userID uint64, patch swipe.Patch) (swipe.Preferences, error) {
	if err := requireID(userID, "user_id"); err != nil {
		return swipe.Preferences{}, err
	}
	if err := validatePatch(patch); err != nil {
		return swipe.Preferences{}, err
	}

	self, err := e.loadUser(ctx, e.store.Users(), userID, "user")
	if err != nil {
		return swipe.Preferences{}, err
	}
	cohort := swipe.CohortOf(self.BirthDate, e.now())

	current, found, err := e.store.Preferences().Get(ctx, userID)
	if err != nil {
		return swipe.Preferences{}, svcErr.Transient("load preferences", err)
	}
	if !found {
		current = swipe.DefaultPreferencesFor(cohort)
	}

	next := current.Apply(patch).Normalize(cohort)
	if err := e.store.Preferences().Save(ctx, userID, next); err != nil {
		e.log.Error("save preferences failed", "user_id", userID, "err", err)
		return swipe.Preferences{}, svcErr.Transient("save preferences", err)
	}

	e.log.Debug("preferences saved", "user_id", userID, "min_age", next.MinAge, "max_age", next.MaxAge)
	return next, nil
}

func validatePatch(p swipe.Patch) error {
	if p.PreferredGenders != nil {
		for _, g := range *p.PreferredGenders {
			if !g.Valid() {
				return svcErr.Validationf("unknown gender %q", g)
			}
		}
	}
	if p.ClearLocation {
		return nil
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return svcErr.Validation("latitude and longitude must be set together")
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return svcErr.Validation("latitude must be within [-90,90]")
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return svcErr.Validation("longitude must be within [-180,180]")
	}
	return nil
}
