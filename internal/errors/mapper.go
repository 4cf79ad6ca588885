// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

// Map converts engine/repo/infra errors into gRPC status errors.
// Keeps the service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation:
			return status.Error(codes.InvalidArgument, e.Msg)
		case KindPolicy:
			return status.Error(codes.PermissionDenied, e.Msg)
		case KindNotFound:
			return status.Error(codes.NotFound, e.Msg)
		case KindTransient:
			// the cause may be a context error rather than the store itself
			if mapped := mapContext(e.Err); mapped != nil {
				return mapped
			}
			return status.Error(codes.Unavailable, e.Msg)
		}
	}

	if mapped := mapContext(err); mapped != nil {
		return mapped
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "record not found")
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func mapContext(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")
	}
	return nil
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}
