package server

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthServiceName is the service name reported by the gRPC health server
// alongside the overall ("") status.
const HealthServiceName = "salesd.Sales"

// NewGRPCServer creates a gRPC server with standard interceptors, registers
// the health service and reflection, and returns both. Feed the health
// server with WatchHealth.
func (s *SalesServer) NewGRPCServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(s.logger),
			LoggingInterceptor(s.logger),
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(HealthServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return srv, hs
}

// WatchHealth pings the store every interval and mirrors the result into hs
// until ctx is done, then marks every service as not serving.
func (s *SalesServer) WatchHealth(ctx context.Context, hs *health.Server, interval time.Duration) {
	s.updateHealth(ctx, hs)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			s.updateHealth(ctx, hs)
		}
	}
}

func (s *SalesServer) updateHealth(ctx context.Context, hs *health.Server) {
	st := healthpb.HealthCheckResponse_SERVING
	if err := s.ping(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn("store ping failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus("", st)
	hs.SetServingStatus(HealthServiceName, st)
}
