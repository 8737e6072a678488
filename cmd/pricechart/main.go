package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"go-pricechart/internal/common"
	"go-pricechart/internal/config"
	"go-pricechart/internal/rpc"
	"go-pricechart/internal/scheduler"
	"go-pricechart/internal/service"
	"go-pricechart/internal/util"
	"go-pricechart/internal/web"
	"google.golang.org/grpc"
)

func main() {
	configPath := flag.String("config", common.DefaultConfigPath, "Path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().
			Err(err).
			Str("error_code", common.ErrCodeConfigLoadFailed.String()).
			Str("error_message", common.ErrMsgConfigLoadFailed.String()).
			Msg("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().
			Err(err).
			Str("error_code", common.ErrCodeConfigInvalid.String()).
			Str("error_message", common.ErrMsgConfigInvalid.String()).
			Msg("Invalid config")
	}
	if err := util.SetupGlobal(os.Stdout, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("Invalid log level in config")
	}
	logger := util.NewLogger()

	s, err := service.NewService(cfg)
	if err != nil {
		logger.Error(err, common.ErrCodeConfigInvalid, common.ErrMsgConfigInvalid, "Failed to build service")
		os.Exit(1)
	}

	sched := scheduler.New(s.Series.Cache(), s.Feed)
	if err := sched.Register(cfg.GetStatsCron()); err != nil {
		logger.Error(err, common.ErrCodeSchedulerFailed, common.ErrMsgSchedulerFailed, "Failed to schedule stats job")
		os.Exit(1)
	}
	sched.Start()

	grpcAddr := fmt.Sprintf(":%d", cfg.GetGRPCPort())
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logger.Error(err, common.ErrCodeGRPCServeFailed, common.ErrMsgGRPCServeFailed, "Failed to listen", "address", grpcAddr)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer(
		grpc.MaxRecvMsgSize(common.MaxGRPCMessageSize),
		grpc.MaxSendMsgSize(common.MaxGRPCMessageSize),
	)
	rpc.RegisterPriceServiceServer(grpcServer, s)

	go func() {
		logger.Info("Starting gRPC server", "address", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error(err, common.ErrCodeGRPCServeFailed, common.ErrMsgGRPCServeFailed, "gRPC serve failed")
			os.Exit(1)
		}
	}()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetHTTPPort()),
		Handler:           web.NewServer(s).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, common.ErrCodeHTTPServeFailed, common.ErrMsgHTTPServeFailed, "HTTP serve failed")
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down server...")
	sched.Stop()
	s.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error(err, common.ErrCodeHTTPServeFailed, common.ErrMsgHTTPServeFailed, "HTTP shutdown failed")
	}
	grpcServer.GracefulStop()
	logger.Info("Server stopped gracefully")
}
