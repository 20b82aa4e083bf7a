package middleware

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	pkgerrors "user-service/pkg/errors"
	"user-service/pkg/logger"
)

// Errors returns a gRPC unary interceptor that hides untyped errors behind codes.Internal.
// Errors that carry a gRPC status, directly or wrapped, keep it.
func Errors(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var typed pkgerrors.GRPCStatuser
		if errors.As(err, &typed) {
			return nil, typed.GRPCStatus().Err()
		}

		logger.WithContext(ctx, log).Error("gRPC request failed",
			zap.String("method", info.FullMethod), zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal error", err)
	}
}
