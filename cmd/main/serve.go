package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"jyotish-chart/src/analysis"
	"jyotish-chart/src/config"
	"jyotish-chart/src/ephemeris"
	grpcsvc "jyotish-chart/src/grpc_service"
	"jyotish-chart/src/interfaces"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/metrics"
	"jyotish-chart/src/server"
	"jyotish-chart/src/service"
	"jyotish-chart/src/storage"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP/WebSocket API and the gRPC service",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cmd, conf)
		},
	}
}

// -----------------------------------------------------------------------------

func serve(cmd *cobra.Command, conf *config.Config) error {
	// 1. Setup Logger
	appLogger := logger.NewLogger(conf.LogLevel, conf.Name)
	defer appLogger.Sync()

	// 2. Ephemeris
	ephConfig, err := ephemeris.NewConfig(conf.Ephemeris)
	if err != nil {
		return fmt.Errorf("invalid ephemeris config: %w", err)
	}
	eph := ephemeris.NewProvider(ephConfig, appLogger.Named("Ephemeris"))

	// 3. Archive (optional)
	if conf.Storage.DBType == "sqlite" && conf.Storage.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(conf.Storage.DBPath), 0755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}
	}
	archive, err := storage.NewArchive(conf.MConfig, appLogger.Named("Archive"))
	if err != nil {
		return err
	}
	if archive != nil {
		defer archive.Close()
	}

	// 4. Core components
	facade := analysis.NewChartFacade(conf.Chart, eph, string(ephConfig.SiderealMode()), appLogger.Named("Chart"))
	collector := metrics.NewCollector("jyotish")
	svc := service.NewChartService(conf.Name, facade, archive, collector, appLogger.Named("Service"))

	// 5. Transports
	var httpServer interfaces.IDataExchanger = server.NewChartServer(conf.MConfig, svc, appLogger.Named("Server"))
	grpcServer := grpcsvc.NewGRPCServer(conf.MConfig, svc, appLogger.Named("gRPC"))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(httpServer.Start)
	if conf.GrpcPort != 0 {
		g.Go(grpcServer.Start)
	}
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down...")
		grpcServer.Stop()
		return httpServer.Stop()
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error: %v", err)
		return err
	}
	appLogger.Info("Shutdown complete.")
	return nil
}
