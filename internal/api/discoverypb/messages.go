// Package discoverypb holds the DiscoveryService wire types, its gRPC
// service descriptor and the JSON codec the messages travel with.
//
// User ids are decimal strings on the wire, as in the rest of the API.
package discoverypb

type Relation struct {
	AFollowsB bool   `json:"a_follows_b"`
	BFollowsA bool   `json:"b_follows_a"`
	Mutual    bool   `json:"mutual"`
	State     string `json:"state"`
}

type Ack struct {
	Ok bool `json:"ok"`
}

//
// Preferences
//

type Preferences struct {
	UseDistanceFilter bool     `json:"use_distance_filter"`
	MaxDistanceKm     int32    `json:"max_distance_km"`
	MinAge            int32    `json:"min_age"`
	MaxAge            int32    `json:"max_age"`
	PreferredGenders  []string `json:"preferred_genders"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

type GetPreferencesRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

func (x *GetPreferencesRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

// SetPreferencesRequest is a partial update; absent fields are unchanged.
type SetPreferencesRequest struct {
	UserId            string    `json:"user_id" validate:"required"`
	UseDistanceFilter *bool     `json:"use_distance_filter,omitempty"`
	MaxDistanceKm     *int32    `json:"max_distance_km,omitempty"`
	MinAge            *int32    `json:"min_age,omitempty"`
	MaxAge            *int32    `json:"max_age,omitempty"`
	PreferredGenders  *[]string `json:"preferred_genders,omitempty"`
	Latitude          *float64  `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude         *float64  `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	ClearLocation     bool      `json:"clear_location,omitempty"`
}

func (x *SetPreferencesRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

type PreferencesResponse struct {
	Preferences *Preferences `json:"preferences"`
}

//
// Candidates
//

type ListCandidatesRequest struct {
	UserId string `json:"user_id" validate:"required"`
	// Limit 0 asks for the default page.
	Limit int32 `json:"limit,omitempty" validate:"gte=0"`
}

func (x *ListCandidatesRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *ListCandidatesRequest) GetLimit() int32 {
	if x != nil {
		return x.Limit
	}
	return 0
}

type ProfileCandidate struct {
	UserId         string   `json:"user_id"`
	Username       string   `json:"username"`
	Gender         string   `json:"gender"`
	Age            int32    `json:"age"`
	Location       string   `json:"location,omitempty"`
	DistanceKm     *float64 `json:"distance_km"`
	FollowersCount int64    `json:"followers_count"`
	IsFollowing    bool     `json:"is_following"`
	IsFollowedBy   bool     `json:"is_followed_by"`
}

type ListProfileCandidatesResponse struct {
	Candidates []*ProfileCandidate `json:"candidates"`
}

type MusicCandidate struct {
	MediaType        string  `json:"media_type"`
	MediaId          string  `json:"media_id"`
	ReviewCount      int64   `json:"review_count"`
	AvgRating        float64 `json:"avg_rating"`
	LastReviewUnixMs int64   `json:"last_review_unix_ms"`
	Title            string  `json:"title,omitempty"`
	Artist           string  `json:"artist,omitempty"`
	ImageUrl         string  `json:"image_url,omitempty"`
}

type ListMusicCandidatesResponse struct {
	Candidates []*MusicCandidate `json:"candidates"`
}

//
// Swipes
//

type SwipeProfileRequest struct {
	ActorUserId  string  `json:"actor_user_id" validate:"required"`
	TargetUserId string  `json:"target_user_id" validate:"required"`
	Direction    string  `json:"direction" validate:"required,oneof=like pass"`
	Message      *string `json:"message,omitempty"`
}

func (x *SwipeProfileRequest) GetActorUserId() string {
	if x != nil {
		return x.ActorUserId
	}
	return ""
}

func (x *SwipeProfileRequest) GetTargetUserId() string {
	if x != nil {
		return x.TargetUserId
	}
	return ""
}

func (x *SwipeProfileRequest) GetMessage() string {
	if x != nil && x.Message != nil {
		return *x.Message
	}
	return ""
}

type SwipeProfileResponse struct {
	Relation          *Relation `json:"relation"`
	CanChatDirect     bool      `json:"can_chat_direct"`
	InvitationCreated bool      `json:"invitation_created"`
	InvitationId      *string   `json:"invitation_id,omitempty"`
}

type SwipeMusicRequest struct {
	ActorUserId string `json:"actor_user_id" validate:"required"`
	MediaType   string `json:"media_type" validate:"required,oneof=track album artist"`
	MediaId     string `json:"media_id" validate:"required,max=128"`
	Direction   string `json:"direction" validate:"required,oneof=like pass"`
}

func (x *SwipeMusicRequest) GetActorUserId() string {
	if x != nil {
		return x.ActorUserId
	}
	return ""
}

type SwipeMusicResponse struct {
	Ok        bool   `json:"ok"`
	Direction string `json:"direction"`
}

//
// Reciprocity and social graph
//

type GetRelationRequest struct {
	UserA string `json:"user_a" validate:"required"`
	UserB string `json:"user_b" validate:"required"`
}

type GetRelationResponse struct {
	Relation      *Relation `json:"relation"`
	CanChatDirect bool      `json:"can_chat_direct"`
}

// PairRequest addresses actions of one user towards another: follow,
// unfollow, block and unblock.
type PairRequest struct {
	ActorUserId  string `json:"actor_user_id" validate:"required"`
	TargetUserId string `json:"target_user_id" validate:"required"`
}

func (x *PairRequest) GetActorUserId() string {
	if x != nil {
		return x.ActorUserId
	}
	return ""
}

func (x *PairRequest) GetTargetUserId() string {
	if x != nil {
		return x.TargetUserId
	}
	return ""
}

type FollowResponse struct {
	// Changed is true when an edge was created (follow) or removed (unfollow).
	Changed  bool      `json:"changed"`
	Relation *Relation `json:"relation"`
}

type ListFollowersRequest struct {
	UserId          string  `json:"user_id" validate:"required"`
	PaginationToken *string `json:"pagination_token,omitempty"`
}

func (x *ListFollowersRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

type ListFollowersResponse_Follower struct {
	UserId        string `json:"user_id"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

type ListFollowersResponse struct {
	Followers           []*ListFollowersResponse_Follower `json:"followers"`
	NextPaginationToken *string                           `json:"next_pagination_token,omitempty"`
}

func (x *ListFollowersResponse) GetNextPaginationToken() string {
	if x != nil && x.NextPaginationToken != nil {
		return *x.NextPaginationToken
	}
	return ""
}

type CountFollowersRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type CountFollowersResponse struct {
	Count uint64 `json:"count"`
}

//
// Invitations
//

type Invitation struct {
	Id            string    `json:"id"`
	SenderId      string    `json:"sender_id"`
	ReceiverId    string    `json:"receiver_id"`
	SourceType    string    `json:"source_type"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedUnixMs int64     `json:"created_unix_ms"`
	Relation      *Relation `json:"relation,omitempty"`
}

type ListPendingInvitationsRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type ListPendingInvitationsResponse struct {
	Invitations []*Invitation `json:"invitations"`
}

type RespondInvitationRequest struct {
	UserId       string `json:"user_id" validate:"required"`
	InvitationId string `json:"invitation_id" validate:"required,uuid"`
	Accept       bool   `json:"accept"`
}

type RespondInvitationResponse struct {
	Invitation *Invitation `json:"invitation"`
}
