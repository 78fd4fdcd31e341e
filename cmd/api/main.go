package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/tasknest/api/internal/auth"
	"github.com/tasknest/api/internal/config"
	"github.com/tasknest/api/internal/database"
	httpServer "github.com/tasknest/api/internal/http"
	"github.com/tasknest/api/internal/logging"
	"github.com/tasknest/api/internal/task"
	"github.com/tasknest/api/internal/user"
)

// @title           TaskNest API
// @version         1.0
// @description     A minimal task-management API: user registration and login, token-gated task CRUD with filtering and pagination.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

const identityCacheTTL = time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// The store connection is a hard startup dependency: no requests
	// are accepted until it is up, and failure here is fatal.
	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.InitSchema(context.Background(), db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	pasetoService, err := auth.NewPasetoService(cfg.Auth.PasetoKey, cfg.Auth.TokenDuration)
	if err != nil {
		return fmt.Errorf("failed to initialize PASETO service: %w", err)
	}

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, pasetoService)

	taskRepo := task.NewRepository(db)
	taskService := task.NewService(taskRepo)
	taskHandler := task.NewHandler(taskService)

	// Redis accelerates the per-request user lookup in the auth gate.
	// Unlike the store it is optional: if it is unreachable the gate
	// resolves users straight from the database.
	var resolver auth.UserResolver = userService
	if redisClient, err := initRedis(cfg.Redis); err != nil {
		logger.Warn("redis unavailable, identity cache disabled", "error", err.Error())
	} else {
		defer redisClient.Close()
		resolver = auth.NewCachedResolver(redisClient, userService, identityCacheTTL, logger)
	}

	authMiddleware := auth.NewMiddleware(pasetoService, resolver)

	router := httpServer.NewRouter(cfg, userHandler, taskHandler, authMiddleware, logger)

	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return database.NewBunDB(sqlDB), nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
