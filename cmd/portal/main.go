package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/carelinkhq/patient-portal/internal/adapters/cache"
	"github.com/carelinkhq/patient-portal/internal/adapters/providers/healthapi"
	"github.com/carelinkhq/patient-portal/internal/adapters/session"
	"github.com/carelinkhq/patient-portal/internal/api/handlers"
	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/api/routes"
	"github.com/carelinkhq/patient-portal/internal/application/services"
	"github.com/carelinkhq/patient-portal/internal/domain/providers"
	"github.com/carelinkhq/patient-portal/internal/domain/repositories"
	"github.com/carelinkhq/patient-portal/internal/infrastructure/clients/redis"
	"github.com/carelinkhq/patient-portal/internal/infrastructure/observability"
	"github.com/carelinkhq/patient-portal/pkg/config"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var metrics *observability.Metrics
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			metrics, err = observability.InitMetrics()
			if err != nil {
				log.Warn().Err(err).Msg("failed to initialize metrics")
			}
		}
	}

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour

	// Redis backs sessions and the service catalog cache. The portal still
	// works without it: sessions fall back to process memory and the
	// catalog is fetched upstream on every request.
	var sessions repositories.SessionRepository
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; sessions will not survive restarts")
		sessions = session.NewMemoryStore()
	} else {
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient, sessionTTL)
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("redis client initialized")
	}

	api := healthapi.NewHealthAPI(cfg.Upstream, metrics)
	if cfg.Upstream.UseMock {
		log.Warn().Msg("using mock upstream adapter")
	}

	authService := services.NewAuthService(api, sessions)
	profileService := services.NewProfileService(api)
	bookingService := services.NewBookingService(api)
	appointmentsService := services.NewAppointmentsService(api)
	catalogService := services.NewCatalogService(api, cacheProvider)

	authHandler := handlers.NewAuthHandler(authService, cfg.Session.CookieName, sessionTTL)
	profileHandler := handlers.NewProfileHandler(profileService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	appointmentsHandler := handlers.NewAppointmentsHandler(appointmentsService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	guard := middleware.AuthMiddleware(sessions, cfg.Session.CookieName)

	router := routes.NewRouter(
		authHandler,
		profileHandler,
		bookingHandler,
		appointmentsHandler,
		catalogHandler,
		guard,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
