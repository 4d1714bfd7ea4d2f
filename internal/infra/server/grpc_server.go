package server

import (
	"context"
	"errors"
	"net"
	"time"

	mygrpc "github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/grpc"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/grpc/middleware"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/config"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewGRPCServer builds the operational gRPC server: health, reflection and
// Prometheus metrics behind the shared interceptor chain. TLS is used when a
// certificate pair is configured.
func NewGRPCServer(cfg *config.Config, reporter *mygrpc.HealthReporter, logger *zap.Logger) (*grpc.Server, error) {
	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(middleware.ChainUnaryServer(logger)),
	}
	if cfg.TLSEnabled() {
		creds, err := credentials.NewServerTLSFromFile(cfg.HTTPSCertFile, cfg.HTTPSKeyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	srv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(srv, reporter.Server())
	grpc_prometheus.Register(srv)
	grpc_prometheus.EnableHandlingTimeHistogram()
	reflection.Register(srv)
	return srv, nil
}

// StartGRPCServer listens on cfg.GRPCAddress and serves until ctx is done.
func StartGRPCServer(ctx context.Context, cfg *config.Config, reporter *mygrpc.HealthReporter, logger *zap.Logger) error {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return err
	}
	srv, err := NewGRPCServer(cfg, reporter, logger)
	if err != nil {
		_ = lis.Close()
		return err
	}
	return Serve(ctx, srv, lis, reporter, logger)
}

// Serve runs srv on lis, keeps the health status fresh and stops gracefully
// (falling back to a hard stop after 5s) once ctx is cancelled.
func Serve(ctx context.Context, srv *grpc.Server, lis net.Listener, reporter *mygrpc.HealthReporter, logger *zap.Logger) error {
	go reporter.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("ctx cancelled, stopping gRPC server")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	select {
	case <-stopCtx.Done():
		srv.Stop()
	case <-done:
	}
	logger.Info("gRPC server stopped")
	return nil
}
