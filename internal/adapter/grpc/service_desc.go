package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "user.v1.UserService"

// Full method names.
const (
	CreateUserMethod   = "/" + ServiceName + "/CreateUser"
	FindAllUsersMethod = "/" + ServiceName + "/FindAllUsers"
	FindUserMethod     = "/" + ServiceName + "/FindUser"
	UpdateUserMethod   = "/" + ServiceName + "/UpdateUser"
	RemoveUserMethod   = "/" + ServiceName + "/RemoveUser"
)

// UserServiceServer is the server API for the user service.
// Messages are protobuf well-known types so no generated code is needed:
// users travel as Struct{id, username, email} and ids as Int64Value.
type UserServiceServer interface {
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FindAllUsers(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	FindUser(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	UpdateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveUser(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
}

// RegisterUserServiceServer registers srv on s.
func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserServiceDesc, srv)
}

// unaryHandler builds a grpc.MethodHandler for a method taking Req and returning Resp.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(UserServiceServer, context.Context, *Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UserServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UserServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// UserServiceDesc is the grpc.ServiceDesc for the user service.
var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler:    unaryHandler(CreateUserMethod, UserServiceServer.CreateUser),
		},
		{
			MethodName: "FindAllUsers",
			Handler:    unaryHandler(FindAllUsersMethod, UserServiceServer.FindAllUsers),
		},
		{
			MethodName: "FindUser",
			Handler:    unaryHandler(FindUserMethod, UserServiceServer.FindUser),
		},
		{
			MethodName: "UpdateUser",
			Handler:    unaryHandler(UpdateUserMethod, UserServiceServer.UpdateUser),
		},
		{
			MethodName: "RemoveUser",
			Handler:    unaryHandler(RemoveUserMethod, UserServiceServer.RemoveUser),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "user/v1/user.proto",
}

// UserServiceClient calls the user service over a client connection.
type UserServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUserServiceClient creates a client on cc.
func NewUserServiceClient(cc grpc.ClientConnInterface) *UserServiceClient {
	return &UserServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser calls UserService.CreateUser.
func (c *UserServiceClient) CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, CreateUserMethod, in, opts...)
}

// FindAllUsers calls UserService.FindAllUsers.
func (c *UserServiceClient) FindAllUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, FindAllUsersMethod, in, opts...)
}

// FindUser calls UserService.FindUser.
func (c *UserServiceClient) FindUser(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, FindUserMethod, in, opts...)
}

// UpdateUser calls UserService.UpdateUser.
func (c *UserServiceClient) UpdateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, UpdateUserMethod, in, opts...)
}

// RemoveUser calls UserService.RemoveUser.
func (c *UserServiceClient) RemoveUser(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, RemoveUserMethod, in, opts...)
}
