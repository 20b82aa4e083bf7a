package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcadapter "user-service/internal/adapter/grpc"
	"user-service/internal/adapter/grpc/middleware"
	"user-service/internal/adapter/ratelimit"
	"user-service/internal/usecase/user"
	"user-service/pkg/logger"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(userUC user.Usecase, l *zap.Logger, rateLimiter *ratelimit.Limiter) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
			middleware.RateLimit(rateLimiter),
			middleware.Errors(l),
		),
	)
	grpcadapter.RegisterUserServiceServer(grpcServer, grpcadapter.NewUserServiceServer(userUC, l))

	return grpcServer
}
