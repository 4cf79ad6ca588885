package server

import (
	"context"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oggyb/swipe-discovery/internal/logger"
	"github.com/oggyb/swipe-discovery/internal/metrics"
)

// RequestIDHeader is read from incoming metadata; a new id is generated
// when the client sends none.
const RequestIDHeader = "x-request-id"

// UnaryLogging tags each call's logger with the method and request id,
// then logs and times the outcome.
func UnaryLogging(base *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		method := path.Base(info.FullMethod)

		log := base.With("method", method, "request_id", requestID(ctx))
		resp, err := handler(logger.IntoContext(ctx, log), req)

		code := status.Code(err)
		elapsed := time.Since(start)
		metrics.RPCDuration.WithLabelValues(method, code.String()).Observe(elapsed.Seconds())

		switch code {
		case codes.OK:
			log.Debug("rpc done", "duration", elapsed)
		case codes.Internal, codes.Unavailable, codes.Unknown:
			log.Error("rpc failed", "code", code.String(), "duration", elapsed, "err", err)
		default:
			log.Info("rpc rejected", "code", code.String(), "duration", elapsed, "err", err)
		}
		return resp, err
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(RequestIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}
