package discoverypb

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

func TestServiceDesc(t *testing.T) {
	s := grpc.NewServer()
	RegisterDiscoveryServiceServer(s, UnimplementedDiscoveryServiceServer{})

	info, ok := s.GetServiceInfo()[ServiceName]
	require.True(t, ok)
	assert.Nil(t, info.Metadata, "no proto file descriptor backs the service")

	api := reflect.TypeOf((*DiscoveryServiceServer)(nil)).Elem()
	require.Len(t, info.Methods, api.NumMethod())
	for _, m := range info.Methods {
		_, declared := api.MethodByName(m.Name)
		assert.True(t, declared, m.Name)
	}
}

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)

	b, err := c.Marshal(&CountFollowersRequest{UserId: "7"})
	require.NoError(t, err)
	var got CountFollowersRequest
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, "7", got.UserId)
}
