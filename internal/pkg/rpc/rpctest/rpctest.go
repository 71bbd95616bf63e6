// Package rpctest serves handlers over an in-memory gRPC connection for tests.
package rpctest

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// Dial starts a server with the services register adds and returns a client
// connected to it. Both are stopped when the test ends.
func Dial(t testing.TB, register func(grpc.ServiceRegistrar), opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(opts...)
	register(srv)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufnet: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
	})
	return conn
}

// Call invokes /service/method with req as the request struct.
func Call(ctx context.Context, conn *grpc.ClientConn, service, method string, req map[string]interface{}) (map[string]interface{}, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := conn.Invoke(ctx, "/"+service+"/"+method, in, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// Stream opens /service/method as a server stream and sends req.
func Stream(ctx context.Context, conn *grpc.ClientConn, service, method string, req map[string]interface{}) (grpc.ClientStream, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	stream, err := conn.NewStream(ctx, &grpc.StreamDesc{StreamName: method, ServerStreams: true}, "/"+service+"/"+method)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return stream, nil
}

// Recv reads the next message of a stream opened with Stream.
func Recv(stream grpc.ClientStream) (map[string]interface{}, error) {
	out := new(structpb.Struct)
	if err := stream.RecvMsg(out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
