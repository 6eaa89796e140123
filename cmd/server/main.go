package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-commission-service/config"
	"github.com/fekuna/omnipos-commission-service/internal/server"
	"github.com/fekuna/omnipos-commission-service/pkg/broker"
	"github.com/fekuna/omnipos-commission-service/pkg/cache"
	"github.com/fekuna/omnipos-commission-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-commission-service/pkg/i18n"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"

	actH "github.com/fekuna/omnipos-commission-service/internal/activity/handler"
	actRepoPkg "github.com/fekuna/omnipos-commission-service/internal/activity/repository"
	actUCPkg "github.com/fekuna/omnipos-commission-service/internal/activity/usecase"

	conflictH "github.com/fekuna/omnipos-commission-service/internal/conflict/handler"
	conflictListenerPkg "github.com/fekuna/omnipos-commission-service/internal/conflict/listener"
	conflictUCPkg "github.com/fekuna/omnipos-commission-service/internal/conflict/usecase"

	prefH "github.com/fekuna/omnipos-commission-service/internal/preference/handler"
	prefUCPkg "github.com/fekuna/omnipos-commission-service/internal/preference/usecase"

	saleH "github.com/fekuna/omnipos-commission-service/internal/sale/handler"
	saleRepoPkg "github.com/fekuna/omnipos-commission-service/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-commission-service/internal/sale/usecase"

	spRepoPkg "github.com/fekuna/omnipos-commission-service/internal/salesperson/repository"

	"github.com/gin-gonic/gin"
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

	// 1.5 Initialize i18n
	i18n.Init()
	if path := os.Getenv("I18N_EXTRA_LOCALE"); path != "" {
		if err := i18n.Load(path); err != nil {
			log.Printf("Failed to load extra locale %s: %v", path, err)
		}
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	saleRepo := saleRepoPkg.NewPGRepository(db)
	spRepo := spRepoPkg.NewPGRepository(db)
	actRepo := actRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	kafkaCfg := &broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}
	kafkaProducer := broker.NewProducer(kafkaCfg)
	defer kafkaProducer.Close()
	kafkaConsumer := broker.NewConsumer(kafkaCfg)
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize UseCases
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, redisClient, spRepo, kafkaProducer, redisClient, cfg.Locale.Default, appLogger)
	conflictUC := conflictUCPkg.NewConflictUseCase(saleRepo, redisClient, kafkaProducer, cfg.Conflict.CacheTTL, appLogger)
	actUC := actUCPkg.NewActivityUseCase(actRepo, appLogger)
	prefUC := prefUCPkg.NewPreferenceUseCase(redisClient, actRepo, appLogger)

	// 6.5 Initialize Listeners
	conflictListener := conflictListenerPkg.NewConflictListener(kafkaConsumer, redisClient, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go conflictListener.Start(ctx)

	// 7. Initialize Handlers
	router := server.NewRouter(appLogger,
		saleH.NewSaleHandler(saleUC, cfg.Locale.Default, appLogger),
		conflictH.NewConflictHandler(conflictUC, appLogger),
		actH.NewActivityHandler(actUC, appLogger),
		prefH.NewPreferenceHandler(prefUC, appLogger),
	)

	// 8. Start HTTP Server
	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", httpServer.Addr))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 9. Start gRPC Server (health + reflection)
	grpcPort := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
