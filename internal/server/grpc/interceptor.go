package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/server/apierr"
	"github.com/dmitrijs2005/staffkeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// accessTokenInterceptor authenticates every non-public method from the
// "authorization" metadata and stores the identity in the context.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			token, _ = strings.CutPrefix(values[0], common.BearerPrefix)
		}
	}
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	id, err := s.users.Authenticate(token)
	if err != nil {
		return nil, status.Error(apierr.Code(err), apierr.Message(err))
	}

	return handler(auth.WithIdentity(ctx, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if id := md.Get(common.RequestIDHeaderName); len(id) > 0 {
			args = append(args, "request_id", id[0])
		}
	}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "grpc request", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "grpc request", args...)
	default:
		s.logger.Warn(ctx, "grpc request", args...)
	}
	return resp, err
}
