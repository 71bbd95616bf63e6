package rpc_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/rpc"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/rpc/rpctest"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("item_detail: %w", readmodel.ErrInvalidKey), codes.InvalidArgument},
		{fmt.Errorf("%w: name", apperr.ErrInvalid), codes.InvalidArgument},
		{fmt.Errorf("product %w", apperr.ErrNotFound), codes.NotFound},
		{fmt.Errorf("sku %w", apperr.ErrConflict), codes.AlreadyExists},
		{fmt.Errorf("out of stock: %w", apperr.ErrPrecondition), codes.FailedPrecondition},
		{fmt.Errorf("%w: lock:item:1", cache.ErrLockNotObtained), codes.Aborted},
		{fmt.Errorf("%w: sales_list: disk I/O error", readmodel.ErrUnavailable), codes.Unavailable},
		{fmt.Errorf("%w: insert item: database is locked", apperr.ErrUnavailable), codes.Unavailable},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{fmt.Errorf("%w: sales_list: %w", readmodel.ErrUnavailable, context.Canceled), codes.Canceled},
		{fmt.Errorf("%w: item_list: %w", readmodel.ErrUnavailable, context.DeadlineExceeded), codes.DeadlineExceeded},
		{errors.New("boom"), codes.Internal},
		{status.Error(codes.PermissionDenied, "no"), codes.PermissionDenied},
	}
	for _, tc := range cases {
		if got := status.Code(rpc.Status(tc.err)); got != tc.want {
			t.Errorf("Status(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
	if rpc.Status(nil) != nil {
		t.Error("nil error must map to nil")
	}
}

type echoInput struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestUnaryRoundTrip(t *testing.T) {
	const svc = "omnipos.stock.v1.EchoService"
	echo := func(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
		var in echoInput
		if err := rpc.Decode(req, &in); err != nil {
			return nil, err
		}
		if in.Name == "" {
			return nil, rpc.Status(fmt.Errorf("%w: name", apperr.ErrInvalid))
		}
		return rpc.EncodeList([]echoInput{in})
	}

	var intercepted string
	conn := rpctest.Dial(t, func(s grpc.ServiceRegistrar) {
		s.RegisterService(rpc.Service(svc, rpc.Unary(svc, "Echo", echo)), struct{}{})
	}, grpc.UnaryInterceptor(func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (interface{}, error) {
		intercepted = info.FullMethod
		return h(ctx, req)
	}))

	out, err := rpctest.Call(context.Background(), conn, svc, "Echo", map[string]interface{}{"name": "x", "count": 2})
	if err != nil {
		t.Fatal(err)
	}
	items := out["items"].([]interface{})
	if len(items) != 1 || out["empty"] != false {
		t.Fatalf("unexpected response %v", out)
	}
	if item := items[0].(map[string]interface{}); item["name"] != "x" || item["count"] != float64(2) {
		t.Fatalf("unexpected item %v", item)
	}
	if intercepted != "/"+svc+"/Echo" {
		t.Fatalf("interceptor saw %q", intercepted)
	}

	_, err = rpctest.Call(context.Background(), conn, svc, "Echo", map[string]interface{}{})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("got %v", err)
	}
}

func TestEncodeListEmpty(t *testing.T) {
	s, err := rpc.EncodeList[echoInput](nil)
	if err != nil {
		t.Fatal(err)
	}
	m := s.AsMap()
	if m["empty"] != true || len(m["items"].([]interface{})) != 0 {
		t.Fatalf("unexpected %v", m)
	}
}
