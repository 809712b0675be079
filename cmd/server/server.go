package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine"
	"github.com/KirkDiggler/rpg-spellchain/internal/handlers/actions/v1alpha1"
	"github.com/KirkDiggler/rpg-spellchain/internal/orchestrators/action"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-spellchain/internal/redis"
	actionchain "github.com/KirkDiggler/rpg-spellchain/internal/repositories/action_chain"
	executionhistory "github.com/KirkDiggler/rpg-spellchain/internal/repositories/execution_history"
)

var (
	grpcPort   int
	store      string
	redisURL   string
	sqlitePath string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the spellchain gRPC server. Settings come from SPELLCHAIN_* environment
variables and REDIS_URL; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&store, "store", StoreRedis, "Chain store backend (redis, sqlite)")
	serverCmd.Flags().StringVar(&redisURL, "redis", "localhost:6379", "Redis address, redis:// URL or comma separated cluster nodes")
	serverCmd.Flags().StringVar(&sqlitePath, "sqlite", "spellchain.db", "SQLite database path when --store=sqlite")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyServerFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	svc, cleanup, err := buildActionService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		ActionService: svc,
	})
	if err != nil {
		return fmt.Errorf("failed to create action handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterActionServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting",
			"port", cfg.GRPCPort,
			"store", cfg.Store)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func applyServerFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("store") {
		cfg.Store = store
	}
	if flags.Changed("redis") {
		cfg.RedisURL = redisURL
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = sqlitePath
	}
}

// buildActionService wires repositories, the engine and the orchestrator.
// The returned cleanup closes the backing connections.
func buildActionService(ctx context.Context, cfg *Config) (action.Service, func(), error) {
	redisClient, err := redisclient.Connect(cfg.RedisURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	var db *sql.DB
	cleanup := func() {
		if db != nil {
			if err := db.Close(); err != nil {
				slog.Warn("failed to close sqlite", "error", err)
			}
		}
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis", "error", err)
		}
	}

	realClock := clock.New()

	var chainRepo actionchain.Repository
	switch cfg.Store {
	case StoreSQLite:
		db, err = actionchain.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		chainRepo, err = actionchain.NewSQLiteRepository(ctx, &actionchain.SQLiteConfig{
			DB:    db,
			Clock: realClock,
		})
	default:
		chainRepo, err = actionchain.NewRedisRepository(&actionchain.RedisConfig{
			Client: redisClient,
			Clock:  realClock,
		})
	}
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create chain repository: %w", err)
	}

	historyRepo, err := executionhistory.NewRedisRepository(&executionhistory.Config{
		Client:     redisClient,
		Clock:      realClock,
		TTL:        cfg.HistoryTTL,
		MaxEntries: cfg.HistoryLimit,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create history repository: %w", err)
	}

	eng, err := engine.New(&engine.Config{})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	bus := events.NewBus()
	bus.SubscribeFunc(action.EventChainExecuted, 100, func(ctx context.Context, e events.Event) error {
		slog.DebugContext(ctx, "chain executed",
			"event", e.Type(),
			"caster_id", e.Source().GetID())
		return nil
	})

	svc, err := action.NewOrchestrator(&action.Config{
		ChainRepo:   chainRepo,
		HistoryRepo: historyRepo,
		Engine:      eng,
		IDGenerator: idgen.NewUUID(),
		EventBus:    bus,
		Clock:       realClock,
		HistoryTTL:  cfg.HistoryTTL,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create action orchestrator: %w", err)
	}

	return svc, cleanup, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Default().Log(ctx, slog.Level(level), msg, fields...)
}
