package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "wallet.v1.WalletService"

// Full method names, used by interceptors and the client
const (
	MethodValidateAmount   = "/" + ServiceName + "/ValidateAmount"
	MethodValidateUsername = "/" + ServiceName + "/ValidateUsername"
	MethodGetBalances      = "/" + ServiceName + "/GetBalances"
	MethodPowerUp          = "/" + ServiceName + "/PowerUp"
	MethodPowerDown        = "/" + ServiceName + "/PowerDown"
)

// WalletServiceServer is the server API for the wallet service.
// Every message is a google.protobuf.Struct; field names are listed on each handler.
type WalletServiceServer interface {
	ValidateAmount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateUsername(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBalances(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PowerUp(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PowerDown(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterWalletServiceServer registers srv on s
func RegisterWalletServiceServer(s grpc.ServiceRegistrar, srv WalletServiceServer) {
	s.RegisterService(&WalletServiceDesc, srv)
}

// unaryHandler adapts one WalletServiceServer method to a grpc.MethodHandler
func unaryHandler(
	fullMethod string,
	call func(WalletServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WalletServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(WalletServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// WalletServiceDesc is the grpc.ServiceDesc for the wallet service
var WalletServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WalletServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ValidateAmount",
			Handler:    unaryHandler(MethodValidateAmount, WalletServiceServer.ValidateAmount),
		},
		{
			MethodName: "ValidateUsername",
			Handler:    unaryHandler(MethodValidateUsername, WalletServiceServer.ValidateUsername),
		},
		{
			MethodName: "GetBalances",
			Handler:    unaryHandler(MethodGetBalances, WalletServiceServer.GetBalances),
		},
		{
			MethodName: "PowerUp",
			Handler:    unaryHandler(MethodPowerUp, WalletServiceServer.PowerUp),
		},
		{
			MethodName: "PowerDown",
			Handler:    unaryHandler(MethodPowerDown, WalletServiceServer.PowerDown),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wallet/v1/wallet.proto",
}

// WalletServiceClient is the client API for the wallet service
type WalletServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewWalletServiceClient creates a new WalletServiceClient instance
func NewWalletServiceClient(cc grpc.ClientConnInterface) *WalletServiceClient {
	return &WalletServiceClient{cc: cc}
}

func (c *WalletServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateAmount calls WalletService.ValidateAmount
func (c *WalletServiceClient) ValidateAmount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodValidateAmount, in, opts...)
}

// ValidateUsername calls WalletService.ValidateUsername
func (c *WalletServiceClient) ValidateUsername(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodValidateUsername, in, opts...)
}

// GetBalances calls WalletService.GetBalances
func (c *WalletServiceClient) GetBalances(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetBalances, in, opts...)
}

// PowerUp calls WalletService.PowerUp
func (c *WalletServiceClient) PowerUp(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPowerUp, in, opts...)
}

// PowerDown calls WalletService.PowerDown
func (c *WalletServiceClient) PowerDown(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPowerDown, in, opts...)
}
