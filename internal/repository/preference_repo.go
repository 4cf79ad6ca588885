package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// PreferenceRepository persists swipe preferences. No policy lives here;
// callers clamp before saving.
type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(database *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: database}
}

// Get reads the stored row. Most users never saved preferences, so a miss
// is a plain result rather than gorm.ErrRecordNotFound.
func (r *PreferenceRepository) Get(ctx context.Context, userID uint64) (swipe.Preferences, bool, error) {
	var row db.SwipePreference
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&row)
	if res.Error != nil {
		return swipe.Preferences{}, false, res.Error
	}
	if res.RowsAffected == 0 {
		return swipe.Preferences{}, false, nil
	}
	return fromPreferenceRow(row), true, nil
}

// EnsureDefaults materializes the defaults row if none exists.
//
// Behavior:
//   - INSERT ... ON CONFLICT DO NOTHING, so concurrent first reads are safe.
//   - created reports whether this call inserted the row.
//   - Returns whatever row is stored afterwards.
func (r *PreferenceRepository) EnsureDefaults(ctx context.Context, userID uint64, defaults swipe.Preferences) (swipe.Preferences, bool, error) {
	row := toPreferenceRow(userID, defaults)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return swipe.Preferences{}, false, res.Error
	}

	prefs, _, err := r.Get(ctx, userID)
	if err != nil {
		return swipe.Preferences{}, false, err
	}
	return prefs, res.RowsAffected > 0, nil
}

// Save upserts the full preference set. Last writer wins.
func (r *PreferenceRepository) Save(ctx context.Context, userID uint64, prefs swipe.Preferences) error {
	row := toPreferenceRow(userID, prefs)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"use_distance_filter", "max_distance_km", "min_age", "max_age",
				"preferred_genders", "latitude", "longitude", "updated_at",
			}),
		}).
		Create(&row).Error
}

func toPreferenceRow(userID uint64, p swipe.Preferences) db.SwipePreference {
	genders := make([]string, len(p.PreferredGenders))
	for i, g := range p.PreferredGenders {
		genders[i] = string(g)
	}
	return db.SwipePreference{
		UserID:            userID,
		UseDistanceFilter: p.UseDistanceFilter,
		MaxDistanceKm:     p.MaxDistanceKm,
		MinAge:            p.MinAge,
		MaxAge:            p.MaxAge,
		PreferredGenders:  genders,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
	}
}

func fromPreferenceRow(row db.SwipePreference) swipe.Preferences {
	genders := make([]swipe.Gender, len(row.PreferredGenders))
	for i, g := range row.PreferredGenders {
		genders[i] = swipe.Gender(g)
	}
	return swipe.Preferences{
		UseDistanceFilter: row.UseDistanceFilter,
		MaxDistanceKm:     row.MaxDistanceKm,
		MinAge:            row.MinAge,
		MaxAge:            row.MaxAge,
		PreferredGenders:  genders,
		Latitude:          row.Latitude,
		Longitude:         row.Longitude,
	}
}
