package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskjournal/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a manager error to a gRPC status. Store failures are logged
// and answered with a generic message.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	var ve *common.ValidationError

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Error())
	case errors.Is(err, common.ErrorInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNoChanges):
		return status.Error(codes.InvalidArgument, "no changes")
	case errors.Is(err, common.ErrorDuplicateEmail):
		return status.Error(codes.AlreadyExists, "email already in use")
	case errors.Is(err, common.ErrorIncorrectPassword):
		return status.Error(codes.PermissionDenied, "current password is incorrect")
	case errors.Is(err, common.ErrorInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, "refresh token expired")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorTransient):
		s.logger.Error(ctx, "store failure", "request_id", requestID(ctx), "op", op, "error", err.Error())
		return status.Error(codes.Unavailable, "temporary failure, please retry")
	default:
		s.logger.Error(ctx, "unexpected error", "request_id", requestID(ctx), "op", op, "error", err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
