package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const RequestIDHeader = "x-request-id"

type ctxKey struct{}

// RequestID returns the request id stored by ContextInterceptor, or "".
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ContextInterceptor tags each call with a request id (taken from metadata or
// generated), logs the outcome and turns panics into Internal errors.
func ContextInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(RequestIDHeader); len(vals) > 0 {
				id = vals[0]
			}
		}
		if id == "" {
			id = uuid.New().String()
		}
		ctx = WithRequestID(ctx, id)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in handler", zap.String("method", info.FullMethod), zap.Any("panic", r))
				err = status.Error(codes.Internal, fmt.Sprint("internal error: ", r))
			}
			code := status.Code(err)
			fields := []zap.Field{
				zap.String("method", info.FullMethod),
				zap.String("request_id", id),
				zap.String("code", code.String()),
				zap.Duration("took", time.Since(start)),
			}
			if code == codes.Internal || code == codes.Unavailable {
				log.Error("rpc failed", append(fields, zap.Error(err))...)
				return
			}
			log.Info("rpc", fields...)
		}()

		return handler(ctx, req)
	}
}
