package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/config"
	"github.com/ambulance/ambulance/internal/domain/authn"
	"github.com/ambulance/ambulance/internal/domain/booking"
	"github.com/ambulance/ambulance/internal/domain/contact"
	"github.com/ambulance/ambulance/internal/domain/hospital"
	"github.com/ambulance/ambulance/internal/domain/identity"
	"github.com/ambulance/ambulance/internal/domain/location"
	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/auth"
	"github.com/ambulance/ambulance/internal/platform/db"
	"github.com/ambulance/ambulance/internal/platform/events"
	"github.com/ambulance/ambulance/internal/platform/middleware"
)

// routes holds everything the router needs. It is assembled by runServer
// and by tests with in-memory dependencies.
type routes struct {
	logger     zerolog.Logger
	cfg        *config.Config
	tokens     auth.TokenVerifier
	roles      auth.RoleResolver
	rateStore  middleware.RateStore
	healthDeps map[string]db.Pinger
	authn      *authn.Handler
	users      *identity.Handler
	bookings   *booking.Handler
	locations  *location.Handler
	contacts   *contact.Handler
	hospitals  *hospital.Handler
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger
}

// newPublisher picks the booking event sink named by EVENTS_BROKER.
func newPublisher(cfg *config.Config, logger zerolog.Logger) (events.Publisher, error) {
	switch cfg.EventsBroker {
	case "kafka":
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case "amqp":
		pub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("connect amqp: %w", err)
		}
		return pub, nil
	}
	return events.NewLogPublisher(logger), nil
}

func newRouter(r *routes) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.ErrorHandler(r.logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(r.logger))
	e.Use(middleware.Recovery(r.logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     r.cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, auth.HeaderName, echo.HeaderXRequestID},
		AllowCredentials: true,
	}))
	e.Use(middleware.Sanitize(r.logger))
	e.Use(middleware.BodyLimit(r.cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(r.cfg.RequestTimeout))
	e.Use(middleware.RateLimit(r.rateStore, r.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(r.healthDeps))

	audit := middleware.Audit(r.logger)

	public := e.Group("")
	protected := e.Group("", auth.RequireCredential(r.tokens), audit)
	admin := e.Group("", auth.RequireCredential(r.tokens), auth.RequireRole(r.roles, auth.RoleAdmin), audit)
	directory := e.Group("", middleware.ETag(middleware.DefaultCacheConfig()))

	r.authn.RegisterRoutes(public, protected)
	r.bookings.RegisterRoutes(protected)
	r.locations.RegisterRoutes(protected)
	r.contacts.RegisterRoutes(protected)
	r.hospitals.RegisterRoutes(directory, admin)
	r.users.RegisterRoutes(admin)

	return e
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg)
	ctx := context.Background()

	pool, err := db.NewPool(ctx, db.PoolConfig{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	healthDeps := map[string]db.Pinger{"postgres": pool}

	rateCfg := middleware.RateLimitConfig{RequestsPerSecond: cfg.RateLimitRPS, BurstSize: cfg.RateLimitBurst}
	var rateStore middleware.RateStore = middleware.NewMemoryRateStore(rateCfg)
	if cfg.RedisURL != "" {
		redisStore, err := middleware.NewRedisRateStore(ctx, cfg.RedisURL, rateCfg)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisStore.Close()
		rateStore = redisStore
		healthDeps["redis"] = redisStore
		logger.Info().Msg("rate limiting shared through redis")
	}

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	tx := db.NewPoolTx(pool)

	userSvc := identity.NewService(identity.NewUserRepo(pool), logger)
	authSvc := authn.NewService(userSvc, tokens, logger)
	bookingSvc := booking.NewService(booking.NewBookingRepo(pool), events.NewEmitter(publisher, logger), logger)
	locationSvc := location.NewService(location.NewLocationRepo(pool), tx, logger)
	contactSvc := contact.NewService(contact.NewContactRepo(pool), tx, logger)
	hospitalSvc := hospital.NewService(hospital.NewHospitalRepo(pool), logger)

	e := newRouter(&routes{
		logger:     logger,
		cfg:        cfg,
		tokens:     tokens,
		roles:      userSvc,
		rateStore:  rateStore,
		healthDeps: healthDeps,
		authn:      authn.NewHandler(authSvc, cfg.CookieSecure),
		users:      identity.NewHandler(userSvc),
		bookings:   booking.NewHandler(bookingSvc),
		locations:  location.NewHandler(locationSvc),
		contacts:   contact.NewHandler(contactSvc),
		hospitals:  hospital.NewHandler(hospitalSvc),
	})

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
