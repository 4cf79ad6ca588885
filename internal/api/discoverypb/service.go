package discoverypb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "discovery.v1.DiscoveryService"

// DiscoveryServiceServer is the server API for DiscoveryService.
type DiscoveryServiceServer interface {
	GetPreferences(context.Context, *GetPreferencesRequest) (*PreferencesResponse, error)
	SetPreferences(context.Context, *SetPreferencesRequest) (*PreferencesResponse, error)
	ListProfileCandidates(context.Context, *ListCandidatesRequest) (*ListProfileCandidatesResponse, error)
	ListMusicCandidates(context.Context, *ListCandidatesRequest) (*ListMusicCandidatesResponse, error)
	SwipeProfile(context.Context, *SwipeProfileRequest) (*SwipeProfileResponse, error)
	SwipeMusic(context.Context, *SwipeMusicRequest) (*SwipeMusicResponse, error)
	GetRelation(context.Context, *GetRelationRequest) (*GetRelationResponse, error)
	Follow(context.Context, *PairRequest) (*FollowResponse, error)
	Unfollow(context.Context, *PairRequest) (*FollowResponse, error)
	BlockUser(context.Context, *PairRequest) (*Ack, error)
	UnblockUser(context.Context, *PairRequest) (*Ack, error)
	ListFollowers(context.Context, *ListFollowersRequest) (*ListFollowersResponse, error)
	ListNewFollowers(context.Context, *ListFollowersRequest) (*ListFollowersResponse, error)
	CountFollowers(context.Context, *CountFollowersRequest) (*CountFollowersResponse, error)
	ListPendingInvitations(context.Context, *ListPendingInvitationsRequest) (*ListPendingInvitationsResponse, error)
	RespondInvitation(context.Context, *RespondInvitationRequest) (*RespondInvitationResponse, error)
}

// UnimplementedDiscoveryServiceServer must be embedded for forward
// compatibility.
type UnimplementedDiscoveryServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedDiscoveryServiceServer) GetPreferences(context.Context, *GetPreferencesRequest) (*PreferencesResponse, error) {
	return nil, unimplemented("GetPreferences")
}
func (UnimplementedDiscoveryServiceServer) SetPreferences(context.Context, *SetPreferencesRequest) (*PreferencesResponse, error) {
	return nil, unimplemented("SetPreferences")
}
func (UnimplementedDiscoveryServiceServer) ListProfileCandidates(context.Context, *ListCandidatesRequest) (*ListProfileCandidatesResponse, error) {
	return nil, unimplemented("ListProfileCandidates")
}
func (UnimplementedDiscoveryServiceServer) ListMusicCandidates(context.Context, *ListCandidatesRequest) (*ListMusicCandidatesResponse, error) {
	return nil, unimplemented("ListMusicCandidates")
}
func (UnimplementedDiscoveryServiceServer) SwipeProfile(context.Context, *SwipeProfileRequest) (*SwipeProfileResponse, error) {
	return nil, unimplemented("SwipeProfile")
}
func (UnimplementedDiscoveryServiceServer) SwipeMusic(context.Context, *SwipeMusicRequest) (*SwipeMusicResponse, error) {
	return nil, unimplemented("SwipeMusic")
}
func (UnimplementedDiscoveryServiceServer) GetRelation(context.Context, *GetRelationRequest) (*GetRelationResponse, error) {
	return nil, unimplemented("GetRelation")
}
func (UnimplementedDiscoveryServiceServer) Follow(context.Context, *PairRequest) (*FollowResponse, error) {
	return nil, unimplemented("Follow")
}
func (UnimplementedDiscoveryServiceServer) Unfollow(context.Context, *PairRequest) (*FollowResponse, error) {
	return nil, unimplemented("Unfollow")
}
func (UnimplementedDiscoveryServiceServer) BlockUser(context.Context, *PairRequest) (*Ack, error) {
	return nil, unimplemented("BlockUser")
}
func (UnimplementedDiscoveryServiceServer) UnblockUser(context.Context, *PairRequest) (*Ack, error) {
	return nil, unimplemented("UnblockUser")
}
func (UnimplementedDiscoveryServiceServer) ListFollowers(context.Context, *ListFollowersRequest) (*ListFollowersResponse, error) {
	return nil, unimplemented("ListFollowers")
}
func (UnimplementedDiscoveryServiceServer) ListNewFollowers(context.Context, *ListFollowersRequest) (*ListFollowersResponse, error) {
	return nil, unimplemented("ListNewFollowers")
}
func (UnimplementedDiscoveryServiceServer) CountFollowers(context.Context, *CountFollowersRequest) (*CountFollowersResponse, error) {
	return nil, unimplemented("CountFollowers")
}
func (UnimplementedDiscoveryServiceServer) ListPendingInvitations(context.Context, *ListPendingInvitationsRequest) (*ListPendingInvitationsResponse, error) {
	return nil, unimplemented("ListPendingInvitations")
}
func (UnimplementedDiscoveryServiceServer) RespondInvitation(context.Context, *RespondInvitationRequest) (*RespondInvitationResponse, error) {
	return nil, unimplemented("RespondInvitation")
}

// unary builds the method descriptor for one RPC, running the server's
// interceptor chain like generated code does.
func unary[Req, Resp any](method string, call func(DiscoveryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(DiscoveryServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// DiscoveryService_ServiceDesc is the grpc.ServiceDesc for DiscoveryService.
// Messages are plain Go structs carried by the "json" codec, so there is no
// proto file descriptor behind it: reflection lists the service name but
// cannot describe it, and clients must call with the json content-subtype.
var DiscoveryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiscoveryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetPreferences", DiscoveryServiceServer.GetPreferences),
		unary("SetPreferences", DiscoveryServiceServer.SetPreferences),
		unary("ListProfileCandidates", DiscoveryServiceServer.ListProfileCandidates),
		unary("ListMusicCandidates", DiscoveryServiceServer.ListMusicCandidates),
		unary("SwipeProfile", DiscoveryServiceServer.SwipeProfile),
		unary("SwipeMusic", DiscoveryServiceServer.SwipeMusic),
		unary("GetRelation", DiscoveryServiceServer.GetRelation),
		unary("Follow", DiscoveryServiceServer.Follow),
		unary("Unfollow", DiscoveryServiceServer.Unfollow),
		unary("BlockUser", DiscoveryServiceServer.BlockUser),
		unary("UnblockUser", DiscoveryServiceServer.UnblockUser),
		unary("ListFollowers", DiscoveryServiceServer.ListFollowers),
		unary("ListNewFollowers", DiscoveryServiceServer.ListNewFollowers),
		unary("CountFollowers", DiscoveryServiceServer.CountFollowers),
		unary("ListPendingInvitations", DiscoveryServiceServer.ListPendingInvitations),
		unary("RespondInvitation", DiscoveryServiceServer.RespondInvitation),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterDiscoveryServiceServer(s grpc.ServiceRegistrar, srv DiscoveryServiceServer) {
	s.RegisterService(&DiscoveryService_ServiceDesc, srv)
}

// DiscoveryServiceClient is a thin client. Only the calls used by tools and
// tests are exposed; every call is sent with the JSON codec.
type DiscoveryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDiscoveryServiceClient(cc grpc.ClientConnInterface) *DiscoveryServiceClient {
	return &DiscoveryServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DiscoveryServiceClient) ListProfileCandidates(ctx context.Context, in *ListCandidatesRequest, opts ...grpc.CallOption) (*ListProfileCandidatesResponse, error) {
	return invoke[ListProfileCandidatesResponse](ctx, c.cc, "ListProfileCandidates", in, opts)
}

func (c *DiscoveryServiceClient) SwipeProfile(ctx context.Context, in *SwipeProfileRequest, opts ...grpc.CallOption) (*SwipeProfileResponse, error) {
	return invoke[SwipeProfileResponse](ctx, c.cc, "SwipeProfile", in, opts)
}

func (c *DiscoveryServiceClient) GetRelation(ctx context.Context, in *GetRelationRequest, opts ...grpc.CallOption) (*GetRelationResponse, error) {
	return invoke[GetRelationResponse](ctx, c.cc, "GetRelation", in, opts)
}

func (c *DiscoveryServiceClient) CountFollowers(ctx context.Context, in *CountFollowersRequest, opts ...grpc.CallOption) (*CountFollowersResponse, error) {
	return invoke[CountFollowersResponse](ctx, c.cc, "CountFollowers", in, opts)
}
