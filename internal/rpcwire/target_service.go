package rpcwire

import (
	"context"

	"google.golang.org/grpc"
)

// TargetServiceServer is the target-side contract for serving the
// current position.
type TargetServiceServer interface {
	GetPosition(context.Context, *GetPositionRequest) (*GetPositionResponse, error)
}

func targetServiceGetPositionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TargetServiceServer).GetPosition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/TargetService/GetPosition"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TargetServiceServer).GetPosition(ctx, req.(*GetPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// TargetServiceServiceDesc is the hand-written grpc.ServiceDesc
// standing in for protoc-generated registration code.
var TargetServiceServiceDesc = grpc.ServiceDesc{
	ServiceName: "TargetService",
	HandlerType: (*TargetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPosition", Handler: targetServiceGetPositionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpcwire/target_service.go",
}

// RegisterTargetServiceServer registers srv with s.
func RegisterTargetServiceServer(s grpc.ServiceRegistrar, srv TargetServiceServer) {
	s.RegisterService(&TargetServiceServiceDesc, srv)
}

// TargetServiceClient is the node-side stub for TargetService.
type TargetServiceClient struct {
	cc *grpc.ClientConn
}

// NewTargetServiceClient wraps an established connection.
func NewTargetServiceClient(cc *grpc.ClientConn) *TargetServiceClient {
	return &TargetServiceClient{cc: cc}
}

func (c *TargetServiceClient) GetPosition(ctx context.Context, req *GetPositionRequest) (*GetPositionResponse, error) {
	out := new(GetPositionResponse)
	if err := c.cc.Invoke(ctx, "/TargetService/GetPosition", req, out); err != nil {
		return nil, err
	}
	return out, nil
}
