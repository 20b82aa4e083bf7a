package grpc

import (
	"context"
	"math"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "user-service/internal/domain/user"
	"user-service/internal/usecase/user"
	pkgerrors "user-service/pkg/errors"
	"user-service/pkg/logger"
)

// UserServiceServerImpl implements UserServiceServer on top of the user usecase.
type UserServiceServerImpl struct {
	uc  user.Usecase
	log *zap.Logger
}

var _ UserServiceServer = (*UserServiceServerImpl)(nil)

// NewUserServiceServer creates a new gRPC user service server
func NewUserServiceServer(uc user.Usecase, log *zap.Logger) *UserServiceServerImpl {
	return &UserServiceServerImpl{uc: uc, log: log}
}

// CreateUser handles gRPC CreateUser request
func (s *UserServiceServerImpl) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	username, err := requiredString(req, "username")
	if err != nil {
		return nil, err
	}
	email, err := requiredString(req, "email")
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx, s.log).Info("gRPC CreateUser request", zap.String("username", username), zap.String("email", email))

	u, err := s.uc.Create(ctx, domain.CreateInput{Username: username, Email: email})
	if err != nil {
		return nil, err
	}
	return userToStruct(u), nil
}

// FindAllUsers handles gRPC FindAllUsers request
func (s *UserServiceServerImpl) FindAllUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	users, err := s.uc.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	list := &structpb.ListValue{Values: make([]*structpb.Value, len(users))}
	for i := range users {
		list.Values[i] = structpb.NewStructValue(userToStruct(&users[i]))
	}
	return list, nil
}

// FindUser handles gRPC FindUser request
func (s *UserServiceServerImpl) FindUser(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	u, err := s.uc.FindOne(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}
	return userToStruct(u), nil
}

// UpdateUser handles gRPC UpdateUser request.
// The struct carries "id" plus any of "username" and "email".
func (s *UserServiceServerImpl) UpdateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredID(req)
	if err != nil {
		return nil, err
	}

	var patch domain.Patch
	if patch.Username, err = optionalString(req, "username"); err != nil {
		return nil, err
	}
	if patch.Email, err = optionalString(req, "email"); err != nil {
		return nil, err
	}

	u, err := s.uc.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return userToStruct(u), nil
}

// RemoveUser handles gRPC RemoveUser request
func (s *UserServiceServerImpl) RemoveUser(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	u, err := s.uc.Remove(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}
	return userToStruct(u), nil
}

func userToStruct(u *domain.User) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":       structpb.NewNumberValue(float64(u.ID)),
		"username": structpb.NewStringValue(u.Username),
		"email":    structpb.NewStringValue(u.Email),
	}}
}

// StructToUser decodes a user produced by this service.
func StructToUser(s *structpb.Struct) domain.User {
	f := s.GetFields()
	return domain.User{
		ID:       int64(f["id"].GetNumberValue()),
		Username: f["username"].GetStringValue(),
		Email:    f["email"].GetStringValue(),
	}
}

func requiredString(s *structpb.Struct, field string) (string, error) {
	v, err := optionalString(s, field)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", pkgerrors.NewValidationError(field, "is required")
	}
	return *v, nil
}

func optionalString(s *structpb.Struct, field string) (*string, error) {
	v, ok := s.GetFields()[field]
	if !ok {
		return nil, nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, pkgerrors.NewValidationError(field, "must be a string")
	}
	return &sv.StringValue, nil
}

func requiredID(s *structpb.Struct) (int64, error) {
	v, ok := s.GetFields()["id"]
	if !ok {
		return 0, pkgerrors.NewValidationError("id", "is required")
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || nv.NumberValue != math.Trunc(nv.NumberValue) || math.Abs(nv.NumberValue) > 1<<53 {
		return 0, pkgerrors.NewValidationError("id", "must be an integer")
	}
	return int64(nv.NumberValue), nil
}
