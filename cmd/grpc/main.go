package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-stock-service/config"
	"github.com/fekuna/omnipos-stock-service/internal/notify"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/sqlite"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/middleware"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"

	catH "github.com/fekuna/omnipos-stock-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-stock-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-stock-service/internal/category/usecase"

	invH "github.com/fekuna/omnipos-stock-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-stock-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-stock-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-stock-service/internal/inventory/usecase"

	prodH "github.com/fekuna/omnipos-stock-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-stock-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-stock-service/internal/product/usecase"

	supH "github.com/fekuna/omnipos-stock-service/internal/supplier/handler"
	supRepoPkg "github.com/fekuna/omnipos-stock-service/internal/supplier/repository"
	supUCPkg "github.com/fekuna/omnipos-stock-service/internal/supplier/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Open Database
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sqlite.NewSQLite(&sqlite.Config{
		Path:         cfg.SQLite.Path,
		BusyTimeout:  time.Duration(cfg.SQLite.BusyTimeout) * time.Millisecond,
		MaxOpenConns: cfg.SQLite.MaxOpenConns,
	})
	if err != nil {
		appLogger.Fatal("Could not open database", zap.Error(err))
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Could not migrate database", zap.Error(err))
	}
	appLogger.Info("Opened SQLite database", zap.String("path", cfg.SQLite.Path))

	// 4. Initialize Cache and Locks
	var (
		listCache cache.Cache  = cache.Noop{}
		locker    cache.Locker = cache.Noop{}
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		listCache, locker = redisClient, redisClient
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}
	listTTL := time.Duration(cfg.Redis.ListTTL) * time.Second

	// 5. Initialize Repositories
	exec := readmodel.NewExecutor(appLogger)
	hub := notify.NewHub()

	catRepo := catRepoPkg.NewSQLiteRepository(db, exec)
	prodRepo := prodRepoPkg.NewSQLiteRepository(db, exec)
	supRepo := supRepoPkg.NewSQLiteRepository(db, exec)
	invRepo := invRepoPkg.NewSQLiteRepository(db, exec)

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, listCache, hub, listTTL, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, listCache, hub, listTTL, appLogger)
	supUC := supUCPkg.NewSupplierUseCase(supRepo, listCache, hub, listTTL, cfg.Contacts.PhoneRegion, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, listCache, locker, hub, listTTL, appLogger)

	if cfg.SQLite.SeedOnStart {
		if _, err := catUC.PreloadCategories(ctx); err != nil {
			appLogger.Fatal("Could not preload categories", zap.Error(err))
		}
	}

	// 7. Start Sale Listener
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		saleListener := invListenerPkg.NewSaleListener(kafkaConsumer, invUC, prodUC, appLogger)
		go saleListener.Start(ctx)
	}

	// 8. Initialize Handlers
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	supHandler := supH.NewSupplierHandler(supUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)

	// 9. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.ContextInterceptor(appLogger)),
	)

	// Register Services
	catHandler.Register(grpcServer)
	prodHandler.Register(grpcServer)
	supHandler.Register(grpcServer)
	invHandler.Register(grpcServer)

	healthServer := health.NewServer()
	for _, svc := range []string{catH.ServiceName, prodH.ServiceName, supH.ServiceName, invH.ServiceName} {
		healthServer.SetServingStatus(svc, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
