package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohamedthameursassi/trainroute/config"
	"github.com/mohamedthameursassi/trainroute/exporter"
	"github.com/mohamedthameursassi/trainroute/graphs_go"
	"github.com/mohamedthameursassi/trainroute/handlers"
	"github.com/mohamedthameursassi/trainroute/logging"
	"github.com/mohamedthameursassi/trainroute/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default config.yml if present)")
	mapFile := flag.String("map", "", "network description file, overrides network.sourceFile")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of the interactive console")
	exportNeo4j := flag.Bool("export-neo4j", false, "copy the loaded network into Neo4j before starting")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *mapFile != "" {
		cfg.Network.SourceFile = *mapFile
	}
	if *serve {
		cfg.Server.Enabled = true
	}

	// stdout belongs to the console session
	logger := logging.New(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load failures are logged by the loader and leave the network unusable;
	// the session and the API report that instead of exiting here.
	network, _ := graphs_go.NewLoader(logger).Load(cfg.Network.SourceFile)
	routingService := services.NewRoutingService(network, logger, services.Options{CacheSize: cfg.Cache.Size})

	if *exportNeo4j {
		if err := exportNetwork(ctx, logger, cfg.Neo4j, network); err != nil {
			logger.Error("neo4j export failed", "error", err)
			os.Exit(1)
		}
	}

	if cfg.Server.Enabled {
		if err := runServer(ctx, logger, cfg.Server, routingService); err != nil {
			logger.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
		return
	}

	// SIGINT keeps its default behaviour while the console blocks on stdin
	stop()
	session := handlers.NewConsoleSession(routingService, os.Stdin, os.Stdout, logger)
	if err := session.Run(context.Background()); err != nil && !errors.Is(err, handlers.ErrNetworkNotSetUp) {
		logger.Warn("console session ended with error", "error", err)
	}
	fmt.Println("Program exiting...")
}

func exportNetwork(ctx context.Context, logger *slog.Logger, cfg config.Neo4jConfig, network *graphs_go.Network) error {
	client, err := exporter.NewNeo4jClient(ctx, exporter.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing neo4j client failed", "error", err)
		}
	}()

	_, err = exporter.NewNetworkExporter(client, logger).Export(ctx, network)
	return err
}

func runServer(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, routingService *services.RoutingService) error {
	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(handlers.NewRoutingHandler(routingService, logger), cfg.AllowedOrigins, logger)
	srv := handlers.NewServer(router, handlers.ServerOptions{
		Host:         cfg.Host,
		Port:         cfg.Port,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeoutMS) * time.Millisecond,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
