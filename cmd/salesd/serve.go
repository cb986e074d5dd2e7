package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/alfredjeanlab/salesdash/internal/config"
	"github.com/alfredjeanlab/salesdash/internal/server"
	"github.com/alfredjeanlab/salesdash/internal/store/sqlstore"
)

// healthInterval is how often the gRPC health status re-pings the store.
const healthInterval = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the sales API server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't create an API client.
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		// Connect to the database and apply the schema.
		openCtx, cancelOpen := context.WithTimeout(context.Background(), 30*time.Second)
		store, err := sqlstore.Open(openCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
		cancelOpen()
		if err != nil {
			return err
		}
		logger.Info("database connected", "driver", cfg.DatabaseDriver)

		salesServer := server.NewSalesServer(store, server.Options{
			Logger:       logger,
			ExposeErrors: cfg.IsDevelopment(),
			CORSOrigins:  cfg.CORSOrigins,
		})

		// Start gRPC health listener when configured.
		var (
			grpcServer   *grpc.Server
			healthCancel context.CancelFunc
		)
		if cfg.GRPCAddr != "" {
			lis, err := net.Listen("tcp", cfg.GRPCAddr)
			if err != nil {
				store.Close()
				return err
			}

			srv, hs := salesServer.NewGRPCServer()
			grpcServer = srv

			var healthCtx context.Context
			healthCtx, healthCancel = context.WithCancel(context.Background())
			go salesServer.WatchHealth(healthCtx, hs, healthInterval)

			go func() {
				logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
				if err := grpcServer.Serve(lis); err != nil {
					logger.Error("gRPC server error", "err", err)
				}
			}()
		} else {
			logger.Info("gRPC health disabled (SALES_GRPC_ADDR not set)")
		}

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           salesServer.NewHTTPHandler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		logger.Info("sales server started",
			"http_addr", cfg.HTTPAddr,
			"grpc_addr", cfg.GRPCAddr,
			"environment", cfg.Environment,
		)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if healthCancel != nil {
			healthCancel()
		}
		if grpcServer != nil {
			grpcServer.GracefulStop()
			logger.Info("gRPC server stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
