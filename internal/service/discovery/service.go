package discovery

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	pb "github.com/oggyb/swipe-discovery/internal/api/discoverypb"
	"github.com/oggyb/swipe-discovery/internal/app"
	"github.com/oggyb/swipe-discovery/internal/config"
	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/logger"
	"github.com/oggyb/swipe-discovery/internal/matching"
	"github.com/oggyb/swipe-discovery/internal/metrics"
	"github.com/oggyb/swipe-discovery/internal/repository"
	"github.com/oggyb/swipe-discovery/internal/swipe"
	"github.com/oggyb/swipe-discovery/internal/validation"
)

// Service implements the Discovery gRPC API.
// It parses and validates requests, calls the matching engine and keeps the
// follower-count cache in Redis consistent with follow edge changes.
type Service struct {
	appCtx *app.AppContext
	engine *matching.Engine
	ttl    time.Duration

	pb.UnimplementedDiscoveryServiceServer
}

// NewDiscoveryService creates a new Discovery service with dependencies from AppContext.
// Dependencies include:
//   - DB connection (via repository.Store)
//   - RedisCache for follower counts
//   - the catalog lookup for music metadata, when configured
//
// Extra engine options (a fixed clock in tests) are applied last.
func NewDiscoveryService(appCtx *app.AppContext, opts ...matching.Option) *Service {
	cfg := appCtx.Config
	if cfg == nil {
		cfg = config.New()
	}

	engineOpts := []matching.Option{
		matching.WithLogger(appCtx.Logger),
		matching.WithPoolSize(cfg.Discovery.PoolSize),
		matching.WithFollowersPageSize(cfg.Discovery.FollowersPageSize),
		matching.WithEnrichLimit(cfg.Discovery.CatalogEnrichLimit),
	}
	if appCtx.Catalog != nil {
		engineOpts = append(engineOpts, matching.WithCatalog(appCtx.Catalog))
	}

	return &Service{
		appCtx: appCtx,
		engine: matching.New(repository.NewStore(appCtx.DB), append(engineOpts, opts...)...),
		ttl:    cfg.Discovery.FollowerCountTTL,
	}
}

// log prefers the per-call logger set by the server interceptor.
func (s *Service) log(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx, s.appCtx.Logger)
}

func parseID(field, value string) (uint64, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, svcErr.InvalidArgument(field + " must be a valid uint64")
	}
	return id, nil
}

func formatID(id uint64) string { return strconv.FormatUint(id, 10) }

// parsePair validates a request and parses its two ids.
func parsePair(req any, fieldA, a, fieldB, b string) (uint64, uint64, error) {
	if err := validation.Struct(req); err != nil {
		return 0, 0, svcErr.Map(err)
	}
	idA, err := parseID(fieldA, a)
	if err != nil {
		return 0, 0, err
	}
	idB, err := parseID(fieldB, b)
	if err != nil {
		return 0, 0, err
	}
	return idA, idB, nil
}

//
// Preferences
//

// GetPreferences returns the user's preferences, creating the defaults row
// on first read.
func (s *Service) GetPreferences(ctx context.Context, req *pb.GetPreferencesRequest) (*pb.PreferencesResponse, error) {
	s.log(ctx).Debug("GetPreferences called", "user", req.GetUserId())

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}

	prefs, err := s.engine.GetPreferences(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.PreferencesResponse{Preferences: toPBPreferences(prefs)}, nil
}

// SetPreferences applies a partial update. Age bounds are clamped into the
// user's cohort; an inverted range resets to the full cohort.
func (s *Service) SetPreferences(ctx context.Context, req *pb.SetPreferencesRequest) (*pb.PreferencesResponse, error) {
	s.log(ctx).Debug("SetPreferences called", "user", req.GetUserId())

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}

	prefs, err := s.engine.SetPreferences(ctx, userID, toPatch(req))
	if err != nil {
		s.log(ctx).Debug("SetPreferences rejected", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.PreferencesResponse{Preferences: toPBPreferences(prefs)}, nil
}

//
// Candidates
//

// ListProfileCandidates returns a ranked batch of profiles to swipe.
//
// Behavior:
//   - limit 0 means the default batch (20); other values are clamped to [1,50].
//   - Never includes self, already swiped users, blocked users or anyone
//     from the other age cohort.
func (s *Service) ListProfileCandidates(ctx context.Context, req *pb.ListCandidatesRequest) (*pb.ListProfileCandidatesResponse, error) {
	s.log(ctx).Debug("ListProfileCandidates called", "user", req.GetUserId(), "limit", req.GetLimit())

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}

	candidates, err := s.engine.ListProfileCandidates(ctx, userID, int(req.GetLimit()))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListProfileCandidatesResponse{Candidates: make([]*pb.ProfileCandidate, 0, len(candidates))}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, &pb.ProfileCandidate{
			UserId:         formatID(c.UserID),
			Username:       c.Username,
			Gender:         string(c.Gender),
			Age:            int32(c.Age),
			Location:       c.Location,
			DistanceKm:     c.DistanceKm,
			FollowersCount: c.FollowersCount,
			IsFollowing:    c.IsFollowing,
			IsFollowedBy:   c.IsFollowedBy,
		})
	}
	return resp, nil
}

// ListMusicCandidates returns the most reviewed media items the user has
// not swiped. limit 0 means 12; other values are clamped to [4,40].
func (s *Service) ListMusicCandidates(ctx context.Context, req *pb.ListCandidatesRequest) (*pb.ListMusicCandidatesResponse, error) {
	s.log(ctx).Debug("ListMusicCandidates called", "user", req.GetUserId(), "limit", req.GetLimit())

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}

	candidates, err := s.engine.ListMusicCandidates(ctx, userID, int(req.GetLimit()))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListMusicCandidatesResponse{Candidates: make([]*pb.MusicCandidate, 0, len(candidates))}
	for _, c := range candidates {
		mc := &pb.MusicCandidate{
			MediaType:        string(c.MediaType),
			MediaId:          c.MediaID,
			ReviewCount:      c.ReviewCount,
			AvgRating:        c.AvgRating,
			LastReviewUnixMs: c.LastReviewAt.UnixMilli(),
		}
		if c.Metadata != nil {
			mc.Title, mc.Artist, mc.ImageUrl = c.Metadata.Title, c.Metadata.Artist, c.Metadata.ImageURL
		}
		resp.Candidates = append(resp.Candidates, mc)
	}
	return resp, nil
}

//
// Swipes
//

// SwipeProfile records a like or pass on another user.
//
// Behavior:
//   - like creates the follow edge (idempotent) and, with a message, a
//     pending chat invitation, atomically with the log entry.
//   - Cross-cohort swipes fail with PermissionDenied; swipes across a block
//     with InvalidArgument.
//   - Returns the relation after the swipe so the client can show a match.
//
// Example:
//
//	svc.SwipeProfile(ctx, &pb.SwipeProfileRequest{ActorUserId: "1", TargetUserId: "2", Direction: "like"})
func (s *Service) SwipeProfile(ctx context.Context, req *pb.SwipeProfileRequest) (*pb.SwipeProfileResponse, error) {
	s.log(ctx).Debug(
		"SwipeProfile called",
		"actor", req.GetActorUserId(),
		"target", req.GetTargetUserId(),
		"direction", req.Direction,
	)

	actorID, targetID, err := parsePair(req, "actor_user_id", req.GetActorUserId(), "target_user_id", req.GetTargetUserId())
	if err != nil {
		return nil, err
	}

	res, err := s.engine.SwipeProfile(ctx, matching.ProfileSwipe{
		ActorID:   actorID,
		TargetID:  targetID,
		Direction: swipe.Direction(req.Direction),
		Message:   req.GetMessage(),
	})
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if res.FollowCreated {
		s.invalidateCounts(ctx, targetID)
	}

	resp := &pb.SwipeProfileResponse{
		Relation:          toPBRelation(res.Relation),
		CanChatDirect:     res.CanChatDirect,
		InvitationCreated: res.InvitationCreated,
	}
	if res.Invitation != nil {
		id := res.Invitation.ID
		resp.InvitationId = &id
	}
	return resp, nil
}

// SwipeMusic records a like or pass on a media item.
func (s *Service) SwipeMusic(ctx context.Context, req *pb.SwipeMusicRequest) (*pb.SwipeMusicResponse, error) {
	s.log(ctx).Debug("SwipeMusic called", "actor", req.GetActorUserId(), "type", req.MediaType, "id", req.MediaId)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	actorID, err := parseID("actor_user_id", req.GetActorUserId())
	if err != nil {
		return nil, err
	}

	res, err := s.engine.SwipeMusic(ctx, actorID, swipe.MediaType(req.MediaType), req.MediaId, swipe.Direction(req.Direction))
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.SwipeMusicResponse{Ok: true, Direction: string(res.Direction)}, nil
}

//
// Reciprocity and social graph
//

// GetRelation reports the follow edges between two users. Direct chat is
// allowed only when they are mutual.
func (s *Service) GetRelation(ctx context.Context, req *pb.GetRelationRequest) (*pb.GetRelationResponse, error) {
	a, b, err := parsePair(req, "user_a", req.UserA, "user_b", req.UserB)
	if err != nil {
		return nil, err
	}

	rel, err := s.engine.Relation(ctx, a, b)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.GetRelationResponse{Relation: toPBRelation(rel), CanChatDirect: rel.Mutual()}, nil
}

func (s *Service) Follow(ctx context.Context, req *pb.PairRequest) (*pb.FollowResponse, error) {
	s.log(ctx).Debug("Follow called", "actor", req.GetActorUserId(), "target", req.GetTargetUserId())

	actorID, targetID, err := parsePair(req, "actor_user_id", req.GetActorUserId(), "target_user_id", req.GetTargetUserId())
	if err != nil {
		return nil, err
	}

	created, err := s.engine.Follow(ctx, actorID, targetID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if created {
		s.invalidateCounts(ctx, targetID)
	}
	return s.followResponse(ctx, created, actorID, targetID)
}

func (s *Service) Unfollow(ctx context.Context, req *pb.PairRequest) (*pb.FollowResponse, error) {
	s.log(ctx).Debug("Unfollow called", "actor", req.GetActorUserId(), "target", req.GetTargetUserId())

	actorID, targetID, err := parsePair(req, "actor_user_id", req.GetActorUserId(), "target_user_id", req.GetTargetUserId())
	if err != nil {
		return nil, err
	}

	removed, err := s.engine.Unfollow(ctx, actorID, targetID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if removed {
		s.invalidateCounts(ctx, targetID)
	}
	return s.followResponse(ctx, removed, actorID, targetID)
}

func (s *Service) followResponse(ctx context.Context, changed bool, actorID, targetID uint64) (*pb.FollowResponse, error) {
	rel, err := s.engine.Relation(ctx, actorID, targetID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.FollowResponse{Changed: changed, Relation: toPBRelation(rel)}, nil
}

// BlockUser hides the two users from each other and removes follow edges
// in both directions.
func (s *Service) BlockUser(ctx context.Context, req *pb.PairRequest) (*pb.Ack, error) {
	s.log(ctx).Debug("BlockUser called", "actor", req.GetActorUserId(), "target", req.GetTargetUserId())

	actorID, targetID, err := parsePair(req, "actor_user_id", req.GetActorUserId(), "target_user_id", req.GetTargetUserId())
	if err != nil {
		return nil, err
	}
	if err := s.engine.Block(ctx, actorID, targetID); err != nil {
		return nil, svcErr.Map(err)
	}
	s.invalidateCounts(ctx, actorID, targetID)
	return &pb.Ack{Ok: true}, nil
}

func (s *Service) UnblockUser(ctx context.Context, req *pb.PairRequest) (*pb.Ack, error) {
	actorID, targetID, err := parsePair(req, "actor_user_id", req.GetActorUserId(), "target_user_id", req.GetTargetUserId())
	if err != nil {
		return nil, err
	}
	if err := s.engine.Unblock(ctx, actorID, targetID); err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.Ack{Ok: true}, nil
}

// ListFollowers returns users following the given user, newest first.
// Supports cursor-based pagination with pagination_token.
func (s *Service) ListFollowers(ctx context.Context, req *pb.ListFollowersRequest) (*pb.ListFollowersResponse, error) {
	return s.listFollowers(ctx, req, false)
}

// ListNewFollowers is ListFollowers without the users already followed back.
func (s *Service) ListNewFollowers(ctx context.Context, req *pb.ListFollowersRequest) (*pb.ListFollowersResponse, error) {
	return s.listFollowers(ctx, req, true)
}

func (s *Service) listFollowers(ctx context.Context, req *pb.ListFollowersRequest, onlyNew bool) (*pb.ListFollowersResponse, error) {
	s.log(ctx).Debug("ListFollowers called", "user", req.GetUserId(), "only_new", onlyNew)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}

	followers, nextToken, err := s.engine.ListFollowers(ctx, userID, req.PaginationToken, onlyNew)
	if err != nil {
		s.log(ctx).Error("ListFollowers failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListFollowersResponse{Followers: make([]*pb.ListFollowersResponse_Follower, 0, len(followers))}
	for _, f := range followers {
		resp.Followers = append(resp.Followers, &pb.ListFollowersResponse_Follower{
			UserId:        formatID(f.UserID),
			UnixTimestamp: uint64(f.CreatedAt.UnixMilli()),
		})
	}
	if nextToken != nil {
		resp.NextPaginationToken = nextToken
	}

	s.log(ctx).Debug("ListFollowers result", "count", len(resp.Followers), "next_token", resp.GetNextPaginationToken())
	return resp, nil
}

// CountFollowers returns how many users follow the given user.
// Cache-first strategy:
//  1. Attempts to read from Redis (followers:count:userID), refreshing the TTL on a hit.
//  2. On a miss or cache error, falls back to the DB.
//  3. On DB fetch, updates Redis with the configured TTL.
//
// Edge changes made through this service drop the cached value.
func (s *Service) CountFollowers(ctx context.Context, req *pb.CountFollowersRequest) (*pb.CountFollowersResponse, error) {
	s.log(ctx).Debug("CountFollowers called", "user", req.UserId)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.UserId)
	if err != nil {
		return nil, err
	}

	// try cache first
	n, ok, err := s.appCtx.RedisCache.GetFollowerCount(ctx, userID, s.ttl)
	switch {
	case err != nil:
		metrics.FollowerCountCache.WithLabelValues("error").Inc()
		s.log(ctx).Warn("follower count cache read failed", "user", userID, "err", err)
	case ok:
		metrics.FollowerCountCache.WithLabelValues("hit").Inc()
		return &pb.CountFollowersResponse{Count: uint64(n)}, nil
	default:
		metrics.FollowerCountCache.WithLabelValues("miss").Inc()
	}

	// fallback: DB
	n, err = s.engine.CountFollowers(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	_ = s.appCtx.RedisCache.SetFollowerCount(ctx, userID, n, s.ttl)

	return &pb.CountFollowersResponse{Count: uint64(n)}, nil
}

func (s *Service) invalidateCounts(ctx context.Context, userIDs ...uint64) {
	if err := s.appCtx.RedisCache.InvalidateFollowerCounts(ctx, userIDs...); err != nil {
		s.log(ctx).Warn("follower count invalidation failed", "users", userIDs, "err", err)
	}
}

//
// Invitations
//

// ListPendingInvitations returns invitations waiting for the user, each
// with the pair's current follow state.
func (s *Service) ListPendingInvitations(ctx context.Context, req *pb.ListPendingInvitationsRequest) (*pb.ListPendingInvitationsResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.UserId)
	if err != nil {
		return nil, err
	}

	invs, err := s.engine.ListPendingInvitations(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListPendingInvitationsResponse{Invitations: make([]*pb.Invitation, 0, len(invs))}
	for _, inv := range invs {
		out := toPBInvitation(inv.Invitation)
		out.Relation = toPBRelation(inv.Relation)
		resp.Invitations = append(resp.Invitations, out)
	}
	return resp, nil
}

func (s *Service) RespondInvitation(ctx context.Context, req *pb.RespondInvitationRequest) (*pb.RespondInvitationResponse, error) {
	s.log(ctx).Debug("RespondInvitation called", "user", req.UserId, "invitation", req.InvitationId, "accept", req.Accept)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.UserId)
	if err != nil {
		return nil, err
	}

	inv, err := s.engine.RespondInvitation(ctx, userID, req.InvitationId, req.Accept)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.RespondInvitationResponse{Invitation: toPBInvitation(inv)}, nil
}
