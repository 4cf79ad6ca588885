package db

import (
	"time"
)

// User table. Owned by the account subsystem; discovery only reads it.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Active       bool   `gorm:"default:true"`
	LastLoginAt  time.Time
	Gender       string  `gorm:"size:24;not null"`
	BirthDate    *string `gorm:"size:10"` // YYYY-MM-DD
	Location     string  `gorm:"size:128"`
	HideLocation bool    `gorm:"not null;default:false"`
	Latitude     *float64
	Longitude    *float64
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// SwipePreference holds one user's discovery settings. A row only exists
// once defaults were materialized or the owner saved something.
type SwipePreference struct {
	UserID            uint64   `gorm:"primaryKey;autoIncrement:false"`
	UseDistanceFilter bool     `gorm:"not null;default:false"`
	MaxDistanceKm     int      `gorm:"not null;default:50"`
	MinAge            int      `gorm:"not null;default:18"`
	MaxAge            int      `gorm:"not null;default:99"`
	PreferredGenders  []string `gorm:"serializer:json;type:text"`
	Latitude          *float64
	Longitude         *float64
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// SwipeAction is one entry of the append-only swipe log.
//
// Exactly one target kind is set:
//   - profile swipe: TargetUserID
//   - music swipe:   MediaType + MediaID
//
// Indexes:
//   - idx_swipe_actor_target(actor_id, target_user_id): profile exclusion lookups.
//   - idx_swipe_actor_media(actor_id, media_type, media_id): music exclusion lookups.
type SwipeAction struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	ActorID      uint64    `gorm:"not null;index:idx_swipe_actor_target,priority:1;index:idx_swipe_actor_media,priority:1"`
	TargetUserID *uint64   `gorm:"index:idx_swipe_actor_target,priority:2"`
	MediaType    *string   `gorm:"size:16;index:idx_swipe_actor_media,priority:2"`
	MediaID      *string   `gorm:"size:128;index:idx_swipe_actor_media,priority:3"`
	Direction    string    `gorm:"size:8;not null"`
	Message      *string   `gorm:"size:180"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// FollowEdge is a directed follow. Composite PK (FollowerID, FollowingID)
// makes creation idempotent with ON CONFLICT DO NOTHING.
type FollowEdge struct {
	FollowerID  uint64    `gorm:"primaryKey;autoIncrement:false"`
	FollowingID uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_follow_following_created,priority:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_follow_following_created,priority:2,sort:desc"`
}

// ChatInvitation is a one-directional message attached to a like.
type ChatInvitation struct {
	ID         string    `gorm:"primaryKey;size:36"`
	SenderID   uint64    `gorm:"not null;index"`
	ReceiverID uint64    `gorm:"not null;index:idx_invitation_receiver_status,priority:1"`
	SourceType string    `gorm:"size:32;not null"`
	Message    string    `gorm:"size:180;not null"`
	Status     string    `gorm:"size:16;not null;index:idx_invitation_receiver_status,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// BlockRelation hides two users from each other in both directions.
type BlockRelation struct {
	BlockerID uint64    `gorm:"primaryKey;autoIncrement:false"`
	BlockedID uint64    `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Review is a user's rating of a media item. Written by the reviews
// subsystem; discovery aggregates it.
type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index"`
	MediaType string    `gorm:"size:16;not null;index:idx_review_media,priority:1"`
	MediaID   string    `gorm:"size:128;not null;index:idx_review_media,priority:2"`
	Rating    float64   `gorm:"not null"`
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&SwipePreference{},
		&SwipeAction{},
		&FollowEdge{},
		&ChatInvitation{},
		&BlockRelation{},
		&Review{},
	}
}
