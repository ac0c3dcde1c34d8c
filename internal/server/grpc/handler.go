package grpc

import (
	"context"
	"fmt"
	"strconv"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/pbx"
	"github.com/dmitrijs2005/staffkeeper/internal/server/apierr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var creds wire.Credentials
	if err := pbx.Decode(in, &creds); err != nil {
		return nil, s.fail(ctx, invalidPayload(err))
	}
	resp, err := s.users.Login(ctx, creds)
	return s.reply(ctx, resp, err)
}

func (s *GRPCServer) register(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var p wire.Profile
	if err := pbx.Decode(in, &p); err != nil {
		return nil, s.fail(ctx, invalidPayload(err))
	}
	u, err := s.users.Register(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return s.reply(ctx, u.Identity(), nil)
}

func (s *GRPCServer) ping(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return s.reply(ctx, map[string]string{"status": "ok"}, nil)
}

func (s *GRPCServer) listEmployees(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := s.employees.List(ctx)
	return s.reply(ctx, list, err)
}

func (s *GRPCServer) getEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := param(in, "id")
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	e, err := s.employees.Get(ctx, id)
	return s.reply(ctx, e, err)
}

func (s *GRPCServer) createEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var e wire.Employee
	if err := pbx.Decode(in, &e); err != nil {
		return nil, s.fail(ctx, invalidPayload(err))
	}
	out, err := s.employees.Create(ctx, e)
	return s.reply(ctx, out, err)
}

func (s *GRPCServer) updateEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := param(in, "id")
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	var e wire.Employee
	if err := pbx.Decode(in, &e); err != nil {
		return nil, s.fail(ctx, invalidPayload(err))
	}
	out, err := s.employees.Update(ctx, id, e)
	return s.reply(ctx, out, err)
}

func (s *GRPCServer) deleteEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := param(in, "id")
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if err := s.employees.Delete(ctx, id); err != nil {
		return nil, s.fail(ctx, err)
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) employeesByManager(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := param(in, "managerId")
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	list, err := s.employees.ByManager(ctx, id)
	return s.reply(ctx, list, err)
}

func (s *GRPCServer) employeesByCompany(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := param(in, "companyId")
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	list, err := s.employees.ByCompany(ctx, id)
	return s.reply(ctx, list, err)
}

func (s *GRPCServer) reply(ctx context.Context, v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	out, err := pbx.Encode(v, nil)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return out, nil
}

// fail converts a service error to a gRPC status.
func (s *GRPCServer) fail(ctx context.Context, err error) error {
	code := apierr.Code(err)
	if code == codes.Internal {
		s.logger.Error(ctx, "request failed", "error", err)
	}
	return status.Error(code, apierr.Message(err))
}

func param(in *structpb.Struct, name string) (int64, error) {
	id, err := strconv.ParseInt(pbx.String(in, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", common.ErrValidation, name)
	}
	return id, nil
}

func invalidPayload(err error) error {
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}
