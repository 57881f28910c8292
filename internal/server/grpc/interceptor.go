package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

type ctxKey string

const requestIDKey ctxKey = "requestID"

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestLogInterceptor tags each call with a request id, returns it in the
// response header and logs the outcome.
func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	id := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey, id)
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, id))

	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "request",
		"request_id", id,
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}

// identityInterceptor resolves the access token from metadata on every call.
// Anonymous callers go through; each handler decides whether it needs an
// identity.
func (s *GRPCServer) identityInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}

	ctx = auth.WithUserID(ctx, s.resolver.ResolveCurrentUser(accessToken))

	return handler(ctx, req)
}
