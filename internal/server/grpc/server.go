// Package grpc serves the StaffKeeper API over gRPC. Messages are
// google.protobuf.Struct documents with the same shape as the HTTP API's
// JSON bodies, so the service is described by hand instead of generated.
package grpc

import (
	"context"
	"net"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/pbx"
	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

type UserService interface {
	Register(ctx context.Context, p wire.Profile) (*models.User, error)
	Login(ctx context.Context, creds wire.Credentials) (*wire.AuthResponse, error)
	Authenticate(token string) (wire.Identity, error)
}

type EmployeeService interface {
	List(ctx context.Context) ([]wire.Employee, error)
	Get(ctx context.Context, id int64) (*wire.Employee, error)
	Create(ctx context.Context, e wire.Employee) (*wire.Employee, error)
	Update(ctx context.Context, id int64, e wire.Employee) (*wire.Employee, error)
	Delete(ctx context.Context, id int64) error
	ByManager(ctx context.Context, managerID int64) ([]wire.Employee, error)
	ByCompany(ctx context.Context, companyID int64) ([]wire.Employee, error)
}

type GRPCServer struct {
	address   string
	users     UserService
	employees EmployeeService
	logger    logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, us UserService, es EmployeeService) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		employees: es,
	}
}

type method func(s *GRPCServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

var methods = map[string]method{
	pbx.Login:              (*GRPCServer).login,
	pbx.Register:           (*GRPCServer).register,
	pbx.Ping:               (*GRPCServer).ping,
	pbx.ListEmployees:      (*GRPCServer).listEmployees,
	pbx.GetEmployee:        (*GRPCServer).getEmployee,
	pbx.CreateEmployee:     (*GRPCServer).createEmployee,
	pbx.UpdateEmployee:     (*GRPCServer).updateEmployee,
	pbx.DeleteEmployee:     (*GRPCServer).deleteEmployee,
	pbx.EmployeesByManager: (*GRPCServer).employeesByManager,
	pbx.EmployeesByCompany: (*GRPCServer).employeesByCompany,
}

// publicMethods are served without a bearer token.
var publicMethods = map[string]bool{
	pbx.FullMethod(pbx.Login):    true,
	pbx.FullMethod(pbx.Register): true,
	pbx.FullMethod(pbx.Ping):     true,
}

// ServiceDesc describes every method in methods. Handlers run through the
// server's unary interceptors.
func ServiceDesc() *grpc.ServiceDesc {
	sd := &grpc.ServiceDesc{
		ServiceName: pbx.ServiceName,
		HandlerType: (*any)(nil),
		Metadata:    "staffkeeper.proto",
	}
	for name, m := range methods {
		fullMethod, call := pbx.FullMethod(name), m
		sd.Methods = append(sd.Methods, grpc.MethodDesc{
			MethodName: name,
			Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
				in := &structpb.Struct{}
				if err := dec(in); err != nil {
					return nil, err
				}
				s := srv.(*GRPCServer)
				if interceptor == nil {
					return call(s, ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
				handler := func(ctx context.Context, req any) (any, error) {
					return call(s, ctx, req.(*structpb.Struct))
				}
				return interceptor(ctx, in, info, handler)
			},
		})
	}
	return sd
}

// NewServer creates a grpc.Server with the interceptors and service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	srv.RegisterService(ServiceDesc(), s)
	return srv
}

// Run serves until ctx is done, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return srv.Serve(listen)
}
