package client

import (
	"context"
	"net"
	"testing"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/pbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type handlerFunc func(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error)

func testServiceDesc(h handlerFunc) *grpc.ServiceDesc {
	names := []string{
		pbx.Login, pbx.Register, pbx.Ping, pbx.ListEmployees, pbx.GetEmployee,
		pbx.CreateEmployee, pbx.UpdateEmployee, pbx.DeleteEmployee,
		pbx.EmployeesByManager, pbx.EmployeesByCompany,
	}
	sd := &grpc.ServiceDesc{ServiceName: pbx.ServiceName, HandlerType: (*any)(nil)}
	for _, n := range names {
		name := n
		sd.Methods = append(sd.Methods, grpc.MethodDesc{
			MethodName: name,
			Handler: func(_ any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
				in := &structpb.Struct{}
				if err := dec(in); err != nil {
					return nil, err
				}
				return h(ctx, name, in)
			},
		})
	}
	return sd
}

func newGRPCChannel(t *testing.T, h handlerFunc) *Channel {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	srv.RegisterService(testServiceDesc(h), struct{}{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	tr, err := NewGRPCTransport("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)

	ch := NewChannel(tr)
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func TestGRPCTransport_Login(t *testing.T) {
	ch := newGRPCChannel(t, func(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
		assert.Equal(t, pbx.Login, method)
		assert.Equal(t, "a@b.c", pbx.String(in, "email"))
		return pbx.Encode(models.AuthResponse{Token: "jwt", User: &models.Identity{SubjectID: 5, Role: models.RoleAdmin}}, nil)
	})

	resp, err := ch.Login(context.Background(), modelsCreds())
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestGRPCTransport_MetadataAndParams(t *testing.T) {
	ch := newGRPCChannel(t, func(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		assert.Equal(t, []string{"Bearer tok"}, md.Get(common.AuthorizationHeaderName))
		assert.Equal(t, []string{"rid"}, md.Get(common.RequestIDHeaderName))
		assert.Equal(t, "11", pbx.String(in, "id"))
		return pbx.Encode(models.Employee{EmployeeID: 11, LastName: "Lovelace"}, nil)
	})

	ctx := WithRequestID(WithAccessToken(context.Background(), "tok"), "rid")
	e, err := ch.GetEmployee(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", e.LastName)
}

func TestGRPCTransport_ListUsesItems(t *testing.T) {
	ch := newGRPCChannel(t, func(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
		return pbx.Encode([]models.Employee{{EmployeeID: 1}, {EmployeeID: 2}}, nil)
	})

	out, err := ch.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestGRPCTransport_StatusMapping(t *testing.T) {
	cases := []struct {
		code   codes.Code
		status int
		class  error
	}{
		{codes.Unauthenticated, 401, common.ErrUnauthorized},
		{codes.PermissionDenied, 403, common.ErrForbidden},
		{codes.NotFound, 404, common.ErrRequestFailed},
		{codes.InvalidArgument, 400, common.ErrRequestFailed},
		{codes.AlreadyExists, 409, common.ErrRequestFailed},
		{codes.Internal, 500, common.ErrRequestFailed},
	}
	for _, c := range cases {
		t.Run(c.code.String(), func(t *testing.T) {
			ch := newGRPCChannel(t, func(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
				return nil, status.Error(c.code, "server says no")
			})

			err := ch.Ping(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, c.class)

			se, ok := AsStatus(err)
			require.True(t, ok)
			assert.Equal(t, c.status, se.Status)
			assert.Equal(t, "server says no", se.Message)
		})
	}
}

func TestGRPCTransport_Canceled(t *testing.T) {
	ch := newGRPCChannel(t, func(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
		return &structpb.Struct{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ch.Ping(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPStatus_Defaults(t *testing.T) {
	assert.Equal(t, 503, httpStatus(codes.Unavailable))
	assert.Equal(t, 504, httpStatus(codes.DeadlineExceeded))
	assert.Equal(t, 500, httpStatus(codes.Unknown))
}
