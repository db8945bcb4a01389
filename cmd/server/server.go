package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/clients/species"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/config"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/handlers/nuzlocke/v1alpha1"
	runorch "github.com/KirkDiggler/rpg-nuzlocke/internal/orchestrators/run"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/platform/otel"
	redisclient "github.com/KirkDiggler/rpg-nuzlocke/internal/redis"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/flags"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal"
	runrepo "github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/run"
)

const serviceName = "rpg-nuzlocke"

var (
	grpcPort    int
	redisAddr   string
	journalPath string
	speciesFile string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the Nuzlocke ruleset gRPC server. Settings come from NUZLOCKE_* environment variables; flags override them.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides NUZLOCKE_GRPC_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (overrides NUZLOCKE_REDIS_ADDR)")
	serverCmd.Flags().StringVar(&journalPath, "journal", "", "SQLite journal path (overrides NUZLOCKE_JOURNAL_PATH)")
	serverCmd.Flags().StringVar(&speciesFile, "species", "", "species table YAML (overrides NUZLOCKE_SPECIES_FILE)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if cmd.Flags().Changed("redis") {
		cfg.RedisAddr = redisAddr
	}
	if cmd.Flags().Changed("journal") {
		cfg.JournalPath = journalPath
	}
	if cmd.Flags().Changed("species") {
		cfg.SpeciesFile = speciesFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	shutdownTracing, err := otel.Setup(ctx, otel.Options{
		ServiceName: serviceName,
		Endpoint:    cfg.OTELEndpoint,
		Enabled:     cfg.OTELEnabled,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	runService, cleanup, err := buildRunService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		RunService: runService,
	})
	if err != nil {
		return fmt.Errorf("failed to create ruleset handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterRulesetServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server...")
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
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// buildRunService wires storage, the species table and the event bus into
// the run orchestrator. The returned cleanup closes the stores.
func buildRunService(ctx context.Context, cfg *config.Config) (runorch.Service, func(), error) {
	redisClient, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		PoolSize:        10,
		MinIdleConns:    2,
		ConnMaxIdleTime: 5 * time.Minute,
		MaxRetries:      3,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close() // nolint:errcheck // already failing
		return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	clk := clock.New()

	journalStore, err := journal.Open(ctx, &journal.SQLiteConfig{
		Path:  cfg.JournalPath,
		Clock: clk,
	})
	if err != nil {
		_ = redisClient.Close() // nolint:errcheck // already failing
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}

	cleanup := func() {
		if err := journalStore.Close(); err != nil {
			slog.Warn("Failed to close journal", "error", err)
		}
		if err := redisClient.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}

	service, err := newRunService(cfg, redisClient, journalStore, clk)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return service, cleanup, nil
}

func newRunService(cfg *config.Config, redisClient redisclient.Client, journalRepo journal.Repository, clk clock.Clock) (runorch.Service, error) {
	speciesTable, err := loadSpecies(cfg.SpeciesFile)
	if err != nil {
		return nil, err
	}

	runRepo, err := runrepo.NewRedis(&runrepo.RedisConfig{
		Client: redisClient,
		Clock:  clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create run repository: %w", err)
	}

	areaFlags, err := flags.NewRedis(&flags.RedisConfig{
		Client:    redisClient,
		Namespace: flags.NamespaceAreas,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create area flags: %w", err)
	}

	dexFlags, err := flags.NewRedis(&flags.RedisConfig{
		Client:    redisClient,
		Namespace: flags.NamespaceDexCaught,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dex flags: %w", err)
	}

	service, err := runorch.NewOrchestrator(&runorch.Config{
		RunRepo:          runRepo,
		AreaFlags:        areaFlags,
		DexFlags:         dexFlags,
		Journal:          journalRepo,
		Species:          speciesTable,
		EventBus:         events.NewBus(),
		DiceRoller:       dice.DefaultRoller,
		IDGenerator:      idgen.NewUUID("run"),
		EntryIDGenerator: idgen.NewUUID("enc"),
		Clock:            clk,
		AreaCount:        cfg.AreaCount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create run orchestrator: %w", err)
	}

	return service, nil
}

func loadSpecies(path string) (species.Client, error) {
	if path == "" {
		table, err := species.NewDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in species table: %w", err)
		}
		return table, nil
	}

	table, err := species.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load species table %s: %w", path, err)
	}
	slog.Info("Loaded species table", "path", path)
	return table, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
