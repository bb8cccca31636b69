package rpcwire

import (
	"context"

	"google.golang.org/grpc"
)

// NetworkServiceServer is the controller-side contract for the
// admission/lifecycle RPCs.
type NetworkServiceServer interface {
	AddNode(context.Context, *AddNodeRequest) (*AddNodeResponse, error)
	StartNetwork(context.Context, *StartNetworkRequest) (*StartNetworkResponse, error)
	GetTargetGlobalPosition(context.Context, *GetTargetGlobalPositionRequest) (*GetTargetGlobalPositionResponse, error)
}

func networkServiceAddNodeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AddNodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetworkServiceServer).AddNode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/NetworkService/AddNode"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NetworkServiceServer).AddNode(ctx, req.(*AddNodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func networkServiceStartNetworkHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StartNetworkRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetworkServiceServer).StartNetwork(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/NetworkService/StartNetwork"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NetworkServiceServer).StartNetwork(ctx, req.(*StartNetworkRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func networkServiceGetTargetGlobalPositionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetTargetGlobalPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetworkServiceServer).GetTargetGlobalPosition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/NetworkService/GetTargetGlobalPosition"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NetworkServiceServer).GetTargetGlobalPosition(ctx, req.(*GetTargetGlobalPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// NetworkServiceServiceDesc is the hand-written grpc.ServiceDesc
// standing in for protoc-generated registration code.
var NetworkServiceServiceDesc = grpc.ServiceDesc{
	ServiceName: "NetworkService",
	HandlerType: (*NetworkServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddNode", Handler: networkServiceAddNodeHandler},
		{MethodName: "StartNetwork", Handler: networkServiceStartNetworkHandler},
		{MethodName: "GetTargetGlobalPosition", Handler: networkServiceGetTargetGlobalPositionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpcwire/network_service.go",
}

// RegisterNetworkServiceServer registers srv with s.
func RegisterNetworkServiceServer(s grpc.ServiceRegistrar, srv NetworkServiceServer) {
	s.RegisterService(&NetworkServiceServiceDesc, srv)
}

// NetworkServiceClient is the node/client-side stub for NetworkService.
type NetworkServiceClient struct {
	cc *grpc.ClientConn
}

// NewNetworkServiceClient wraps an established connection.
func NewNetworkServiceClient(cc *grpc.ClientConn) *NetworkServiceClient {
	return &NetworkServiceClient{cc: cc}
}

func (c *NetworkServiceClient) AddNode(ctx context.Context, req *AddNodeRequest) (*AddNodeResponse, error) {
	out := new(AddNodeResponse)
	if err := c.cc.Invoke(ctx, "/NetworkService/AddNode", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NetworkServiceClient) StartNetwork(ctx context.Context, req *StartNetworkRequest) (*StartNetworkResponse, error) {
	out := new(StartNetworkResponse)
	if err := c.cc.Invoke(ctx, "/NetworkService/StartNetwork", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NetworkServiceClient) GetTargetGlobalPosition(ctx context.Context, req *GetTargetGlobalPositionRequest) (*GetTargetGlobalPositionResponse, error) {
	out := new(GetTargetGlobalPositionResponse)
	if err := c.cc.Invoke(ctx, "/NetworkService/GetTargetGlobalPosition", req, out); err != nil {
		return nil, err
	}
	return out, nil
}
