package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/tablebook/config"
	"github.com/Domenick1991/tablebook/internal/app"
	authpkg "github.com/Domenick1991/tablebook/internal/auth"
	"github.com/Domenick1991/tablebook/internal/bootstrap"
	"github.com/Domenick1991/tablebook/internal/broadcast"
	"github.com/Domenick1991/tablebook/internal/cache"
	"github.com/Domenick1991/tablebook/internal/kafka"
	"github.com/Domenick1991/tablebook/internal/repository"
	"github.com/Domenick1991/tablebook/internal/service/reservation"
	"github.com/Domenick1991/tablebook/internal/service/sessions"
	"github.com/Domenick1991/tablebook/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.Database.MigrationsDir)
	if err != nil {
		logger.Fatal("init migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}
	migrator.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Engine.SessionsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	sessionRepo := repository.NewSessionRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	restaurantRepo := repository.NewRestaurantRepository(pool)
	timeSlotRepo := repository.NewTimeSlotRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	hub := broadcast.NewHub(logger)
	tokens := authpkg.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	engine := reservation.NewReservationService(
		sessionRepo,
		bookingRepo,
		restaurantRepo,
		timeSlotRepo,
		redisCache,
		producer,
		hub,
		logger,
		cfg.Kafka.BookingEventsTopic,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		reservation.WithLockWait(time.Duration(cfg.Engine.LockWaitSeconds)*time.Second),
		reservation.WithSessionLockTTL(time.Duration(cfg.Engine.SessionLockTTLSeconds)*time.Second),
	)
	queries := sessions.NewSessionQueryService(sessionRepo, bookingRepo, redisCache)
	authService := users.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost)

	logger.Info("starting server", zap.String("address", cfg.HTTP.Address), zap.String("env", cfg.Env))

	err = bootstrap.Run(ctx, cfg, bootstrap.Dependencies{
		Engine:      engine,
		Queries:     queries,
		Auth:        authService,
		Tokens:      tokens,
		TimeSlots:   timeSlotRepo,
		Restaurants: restaurantRepo,
		Hub:         hub,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
