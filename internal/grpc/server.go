package grpcserver

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"funcionarioService/internal/config"
)

// ServiceName is the name reported to health checks for the Funcionario API.
const ServiceName = "funcionario"

// StartGRPC starts a gRPC server exposing grpc.health.v1.Health. Both the overall ("")
// and ServiceName statuses report SERVING until the returned shutdown function runs.
func StartGRPC(cfg config.GRPCConfig, logger logrus.FieldLogger) (string, func(context.Context) error, error) {
	addr := cfg.Address
	if addr == "" {
		addr = ":50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}

	srv := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		if err := srv.Serve(lis); err != nil {
			logger.WithError(err).Error("grpc server stopped")
		}
	}()

	return lis.Addr().String(), func(ctx context.Context) error {
		// Report NOT_SERVING for every service while connections drain.
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
