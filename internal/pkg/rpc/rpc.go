// Package rpc carries the stock services over gRPC using google.protobuf.Struct
// as the request and response message for every method.
package rpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Handler serves one unary method.
type Handler func(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// Unary builds the method descriptor for fn under service.
func Unary(service, method string, fn Handler) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return fn(ctx, req.(*structpb.Struct))
			})
		},
	}
}

// Sender pushes one message down a server stream.
type Sender func(*structpb.Struct) error

// ServerStream builds a server-streaming method: one request in, messages out
// until fn returns.
func ServerStream(method string, fn func(ctx context.Context, req *structpb.Struct, send Sender) error) grpc.StreamDesc {
	return grpc.StreamDesc{
		StreamName:    method,
		ServerStreams: true,
		Handler: func(srv interface{}, stream grpc.ServerStream) error {
			in := new(structpb.Struct)
			if err := stream.RecvMsg(in); err != nil {
				return err
			}
			return fn(stream.Context(), in, func(out *structpb.Struct) error {
				return stream.SendMsg(out)
			})
		},
	}
}

// Service builds a service descriptor from method descriptors.
func Service(name string, methods ...grpc.MethodDesc) *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: name,
		HandlerType: (*interface{})(nil),
		Methods:     methods,
		Streams:     []grpc.StreamDesc{},
	}
}

// Decode copies a request struct into dst via its JSON tags.
func Decode(req *structpb.Struct, dst interface{}) error {
	data, err := json.Marshal(req.AsMap())
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// Encode turns v into a response struct via its JSON tags.
func Encode(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

// List is the response shape of every list method. Empty is set for a list
// that ran and matched nothing, so clients can show an empty state instead of
// an error.
type List[T any] struct {
	Items []T  `json:"items"`
	Empty bool `json:"empty"`
}

func EncodeList[T any](items []T) (*structpb.Struct, error) {
	if items == nil {
		items = []T{}
	}
	return Encode(List[T]{Items: items, Empty: len(items) == 0})
}

// Status maps a usecase error to a gRPC status.
func Status(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, readmodel.ErrInvalidKey), errors.Is(err, apperr.ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, apperr.ErrPrecondition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, cache.ErrLockNotObtained):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, apperr.ErrUnavailable):
		return status.Error(codes.Unavailable, "data temporarily unavailable, please retry")
	}
	return status.Error(codes.Internal, err.Error())
}
