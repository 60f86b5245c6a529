package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"funcionarioService/internal/config"
	"funcionarioService/internal/db"
	grpcserver "funcionarioService/internal/grpc"
	"funcionarioService/internal/httpapi"
	"funcionarioService/internal/logging"
	"funcionarioService/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	logger.Infof("Configuration loaded: %v", cfg)

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.WithError(err).Error("close db")
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := httpapi.NewRouter(cfg, httpapi.Deps{
		Store:    repository.NewFuncionarioRepository(d),
		DB:       d,
		Logger:   logger,
		Registry: reg,
	})
	if err != nil {
		logger.WithError(err).Fatal("build router")
	}

	httpAddr, stopHTTP, err := httpapi.StartHTTP(cfg.HTTP, handler, logger)
	if err != nil {
		logger.WithError(err).Fatal("start http")
	}
	logger.Infof("HTTP server listening on %s", httpAddr)

	stopGRPC := func(context.Context) error { return nil }
	if cfg.GRPC.Enabled {
		grpcAddr, stop, err := grpcserver.StartGRPC(cfg.GRPC, logger)
		if err != nil {
			logger.WithError(err).Fatal("start grpc")
		}
		stopGRPC = stop
		logger.Infof("gRPC health server listening on %s", grpcAddr)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stopGRPC(ctx); err != nil {
		logger.WithError(err).Error("grpc shutdown")
	}
	if err := stopHTTP(ctx); err != nil {
		logger.WithError(err).Error("http shutdown")
	}
}
