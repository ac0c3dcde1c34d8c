package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/pbx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCTransport talks to the gRPC service with structpb messages.
type GRPCTransport struct {
	conn *grpc.ClientConn
}

// NewGRPCTransport connects lazily to addr. Extra dial options are appended
// after the defaults.
func NewGRPCTransport(addr string, opts ...grpc.DialOption) (*GRPCTransport, error) {
	dopts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(metadataInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(addr, dopts...)
	if err != nil {
		return nil, err
	}
	return &GRPCTransport{conn: conn}, nil
}

func withOutgoing(ctx context.Context, key, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(key, value)
	return metadata.NewOutgoingContext(ctx, md)
}

// metadataInterceptor copies the bearer credential and request id from the
// call context into outgoing metadata.
func metadataInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if tok := AccessToken(ctx); tok != "" {
		ctx = withOutgoing(ctx, common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}
	if id := RequestID(ctx); id != "" {
		ctx = withOutgoing(ctx, common.RequestIDHeaderName, id)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (t *GRPCTransport) Invoke(ctx context.Context, call *Call) error {
	ep, err := lookup(call.Op)
	if err != nil {
		return err
	}

	req, err := pbx.Encode(call.Request, call.Params)
	if err != nil {
		return err
	}

	resp := &structpb.Struct{}
	if err := t.conn.Invoke(ctx, pbx.FullMethod(ep.rpc), req, resp); err != nil {
		return mapStatus(call.Op, err)
	}

	return pbx.Decode(resp, call.Response)
}

func (t *GRPCTransport) Close() error {
	return t.conn.Close()
}

func mapStatus(op Op, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return newStatusError(op, 0, "", err)
	}

	switch st.Code() {
	case codes.Canceled:
		return newStatusError(op, 0, "", context.Canceled)
	case codes.DeadlineExceeded:
		return newStatusError(op, http.StatusGatewayTimeout, st.Message(), context.DeadlineExceeded)
	case codes.Unavailable:
		return newStatusError(op, http.StatusServiceUnavailable, "", err)
	}
	return newStatusError(op, httpStatus(st.Code()), st.Message(), nil)
}

func httpStatus(c codes.Code) int {
	switch c {
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
