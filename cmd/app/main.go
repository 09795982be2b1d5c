package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightdesk/api"
	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/bootstrap"
	"github.com/Domenick1991/flightdesk/internal/cache"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/logger"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/Domenick1991/flightdesk/internal/repository/memory"
	"github.com/Domenick1991/flightdesk/internal/seed"
	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/Domenick1991/flightdesk/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type repositories struct {
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
}

func main() {
	_ = godotenv.Load()

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yaml"
	}
	cfgPath := pflag.StringP("config", "c", defaultPath, "path to the YAML config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server error")
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	catalog, err := seed.Flights(cfg.Storage.SeedPath)
	if err != nil {
		return err
	}

	repos, closeStorage, err := openStorage(ctx, cfg, catalog, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	var (
		flightCache flights.FlightCache
		idempotency api.IdempotencyStore
		bookingOpts = []booking.BookingServiceOption{booking.WithLogger(log)}
	)

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCacheDuration())
		if err := redisCache.Ping(ctx); err != nil {
			return err
		}
		defer redisCache.Close()

		flightCache = redisCache
		idempotency = redisCache
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
		log.WithField("addr", cfg.Redis.Addr).Info("redis cache enabled")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()

		if err := producer.CheckConnection(ctx); err != nil {
			log.WithError(err).Warn("kafka is unreachable; booking events may be lost until it recovers")
		}
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	return bootstrap.Run(ctx, cfg, bootstrap.Services{
		Flights:     flights.NewFlightService(repos.flights, flightCache),
		Bookings:    booking.NewBookingService(repos.bookings, repos.flights, bookingOpts...),
		Users:       users.NewUserService(repos.users, tokens, hasher),
		Tokens:      tokens,
		Idempotency: idempotency,
	}, log)
}

func openStorage(ctx context.Context, cfg *config.Config, catalog []domain.Flight, log logrus.FieldLogger) (repositories, func(), error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		store := memory.NewStore(catalog)
		log.WithField("flights", len(catalog)).Info("using in-memory storage")
		return repositories{
			flights:  store.Flights(),
			bookings: store.Bookings(),
			users:    store.Users(),
		}, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return repositories{}, nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return repositories{}, nil, err
	}
	inserted, err := repository.SeedFlights(ctx, pool, catalog)
	if err != nil {
		pool.Close()
		return repositories{}, nil, err
	}
	log.WithField("seeded_flights", inserted).Info("using postgres storage")

	return repositories{
		flights:  repository.NewFlightRepository(pool),
		bookings: repository.NewBookingRepository(pool),
		users:    repository.NewUserRepository(pool),
	}, pool.Close, nil
}
