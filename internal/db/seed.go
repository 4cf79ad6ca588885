package db

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/swipe-discovery/internal/logger"
)

// seedTables in delete order.
var seedTables = []string{
	"reviews",
	"block_relations",
	"chat_invitations",
	"follow_edges",
	"swipe_actions",
	"swipe_preferences",
	"users",
}

var seedGenders = []string{"male", "female", "other"}

var seedMedia = []struct{ Type, ID string }{
	{"track", "trk-midnight-city"},
	{"track", "trk-digital-love"},
	{"track", "trk-teardrop"},
	{"track", "trk-one-more-time"},
	{"album", "alb-discovery"},
	{"album", "alb-random-access"},
	{"album", "alb-in-rainbows"},
	{"artist", "art-m83"},
	{"artist", "art-massive-attack"},
	{"artist", "art-bonobo"},
}

// SeedTestData resets the database and populates it with demo data.
//
// Behavior:
//  1. Clears every discovery table.
//  2. Creates 24 adults and 6 minors with hashed passwords, birth dates and
//     coordinates scattered around London. Every 7th user has no birth
//     date, every 5th hides their location.
//  3. Generates follow edges inside each cohort, with every 3rd pair mutual.
//  4. Adds a couple of blocks and ~150 reviews over a small media catalog.
//
// Compatible with both MySQL and SQLite (sequence reset differs).
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	// --- Fresh start ---
	for _, table := range seedTables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE swipe_actions AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE reviews AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('users', 'swipe_actions', 'reviews')")
	}
	logger.Info("cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// --- Users: 1..24 adults, 25..30 minors ---
	const adults, minors = 24, 6
	cohortOf := make(map[uint64]bool, adults+minors) // true = minor
	for i := 1; i <= adults+minors; i++ {
		minor := i > adults

		age := 18 + r.Intn(40)
		if minor {
			age = 13 + r.Intn(5)
		}

		user := User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Gender:       seedGenders[i%len(seedGenders)],
			Active:       true,
			LastLoginAt:  now.Add(-time.Duration(r.Intn(500)) * time.Hour),
			Location:     "London",
			HideLocation: i%5 == 0,
		}
		if i%7 != 0 {
			bd := now.AddDate(-age, 0, -r.Intn(360)).Format("2006-01-02")
			user.BirthDate = &bd
		}
		lat, lon := 51.5074+(r.Float64()-0.5), -0.1278+(r.Float64()-0.5)
		user.Latitude, user.Longitude = &lat, &lon

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		cohortOf[user.ID] = minor
	}
	logger.Info("seeded users", "adults", adults, "minors", minors)

	// --- Follows, same cohort only ---
	total := uint64(adults + minors)
	counter := 0
	for follower := uint64(1); follower <= total; follower++ {
		for j := 0; j < 6; j++ {
			following := uint64(r.Intn(int(total))) + 1
			if follower == following || cohortOf[follower] != cohortOf[following] {
				continue
			}

			edges := []FollowEdge{{FollowerID: follower, FollowingID: following}}
			// guarantee mutual follows every 3rd pair
			if counter%3 == 0 {
				edges = append(edges, FollowEdge{FollowerID: following, FollowingID: follower})
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error; err != nil {
				return fmt.Errorf("failed to seed follow: %w", err)
			}
			counter++
		}
	}
	logger.Info("seeded follows", "pairs", counter)

	// --- Blocks ---
	blocks := []BlockRelation{
		{BlockerID: 1, BlockedID: 2},
		{BlockerID: 25, BlockedID: 26},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&blocks).Error; err != nil {
		return fmt.Errorf("failed to seed blocks: %w", err)
	}
	db.Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)", 1, 2, 2, 1).Delete(&FollowEdge{})
	db.Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)", 25, 26, 26, 25).Delete(&FollowEdge{})

	// --- Reviews ---
	reviews := make([]Review, 0, 150)
	for k := 0; k < 150; k++ {
		m := seedMedia[r.Intn(len(seedMedia))]
		reviews = append(reviews, Review{
			UserID:    uint64(r.Intn(int(total))) + 1,
			MediaType: m.Type,
			MediaID:   m.ID,
			Rating:    float64(1+r.Intn(9)) / 2,
			CreatedAt: now.Add(-time.Duration(r.Intn(30*24)) * time.Hour),
		})
	}
	if err := db.CreateInBatches(&reviews, 50).Error; err != nil {
		return fmt.Errorf("failed to seed reviews: %w", err)
	}
	logger.Info("seeded reviews", "count", len(reviews))

	return nil
}
