package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "spellchain.actions.v1alpha1.ActionService"

// Method names
const (
	MethodSaveChain     = "SaveChain"
	MethodGetChain      = "GetChain"
	MethodListChains    = "ListChains"
	MethodDeleteChain   = "DeleteChain"
	MethodExecuteChain  = "ExecuteChain"
	MethodRollFormula   = "RollFormula"
	MethodResolveDamage = "ResolveDamage"
	MethodGetHistory    = "GetHistory"
)

// ActionServiceServer is the server API for the action service.
// Every message is a google.protobuf.Struct carrying the JSON form of the request types in this package.
type ActionServiceServer interface {
	SaveChain(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetChain(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListChains(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteChain(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExecuteChain(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollFormula(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveDamage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(ActionServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ActionServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ActionServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ActionServiceDesc describes the action service for grpc.Server registration
var ActionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ActionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(MethodSaveChain, ActionServiceServer.SaveChain),
		methodDesc(MethodGetChain, ActionServiceServer.GetChain),
		methodDesc(MethodListChains, ActionServiceServer.ListChains),
		methodDesc(MethodDeleteChain, ActionServiceServer.DeleteChain),
		methodDesc(MethodExecuteChain, ActionServiceServer.ExecuteChain),
		methodDesc(MethodRollFormula, ActionServiceServer.RollFormula),
		methodDesc(MethodResolveDamage, ActionServiceServer.ResolveDamage),
		methodDesc(MethodGetHistory, ActionServiceServer.GetHistory),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "spellchain/actions/v1alpha1/action_service.proto",
}

// RegisterActionServiceServer registers the action service on a gRPC server
func RegisterActionServiceServer(s grpc.ServiceRegistrar, srv ActionServiceServer) {
	s.RegisterService(&ActionServiceDesc, srv)
}

// ActionServiceClient is the client API for the action service
type ActionServiceClient interface {
	// Call invokes a method by name with a Struct request
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type actionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewActionServiceClient creates a client over an established connection
func NewActionServiceClient(cc grpc.ClientConnInterface) ActionServiceClient {
	return &actionServiceClient{cc: cc}
}

func (c *actionServiceClient) Call(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
