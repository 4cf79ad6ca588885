package discovery

import (
	pb "github.com/oggyb/swipe-discovery/internal/api/discoverypb"
	"github.com/oggyb/swipe-discovery/internal/matching"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

func toPBPreferences(p swipe.Preferences) *pb.Preferences {
	genders := make([]string, len(p.PreferredGenders))
	for i, g := range p.PreferredGenders {
		genders[i] = string(g)
	}
	return &pb.Preferences{
		UseDistanceFilter: p.UseDistanceFilter,
		MaxDistanceKm:     int32(p.MaxDistanceKm),
		MinAge:            int32(p.MinAge),
		MaxAge:            int32(p.MaxAge),
		PreferredGenders:  genders,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
	}
}

func toPatch(req *pb.SetPreferencesRequest) swipe.Patch {
	patch := swipe.Patch{
		UseDistanceFilter: req.UseDistanceFilter,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ClearLocation:     req.ClearLocation,
	}
	patch.MaxDistanceKm = intPtr(req.MaxDistanceKm)
	patch.MinAge = intPtr(req.MinAge)
	patch.MaxAge = intPtr(req.MaxAge)
	if req.PreferredGenders != nil {
		genders := make([]swipe.Gender, len(*req.PreferredGenders))
		for i, g := range *req.PreferredGenders {
			genders[i] = swipe.Gender(g)
		}
		patch.PreferredGenders = &genders
	}
	return patch
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func toPBRelation(r swipe.Relation) *pb.Relation {
	return &pb.Relation{
		AFollowsB: r.AFollowsB,
		BFollowsA: r.BFollowsA,
		Mutual:    r.Mutual(),
		State:     r.State(),
	}
}

func toPBInvitation(inv matching.Invitation) *pb.Invitation {
	return &pb.Invitation{
		Id:            inv.ID,
		SenderId:      formatID(inv.SenderID),
		ReceiverId:    formatID(inv.ReceiverID),
		SourceType:    inv.SourceType,
		Message:       inv.Message,
		Status:        string(inv.Status),
		CreatedUnixMs: inv.CreatedAt.UnixMilli(),
	}
}
