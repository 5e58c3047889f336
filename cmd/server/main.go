package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/payment-config-service/internal/auth"
	"github.com/anyulbade/payment-config-service/internal/cache"
	"github.com/anyulbade/payment-config-service/internal/config"
	"github.com/anyulbade/payment-config-service/internal/database"
	"github.com/anyulbade/payment-config-service/internal/handler"
	"github.com/anyulbade/payment-config-service/internal/logging"
	"github.com/anyulbade/payment-config-service/internal/metrics"
	"github.com/anyulbade/payment-config-service/internal/middleware"
	"github.com/anyulbade/payment-config-service/internal/repository"
	"github.com/anyulbade/payment-config-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, err := cache.NewStore(cfg.CacheBackend, cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create cache")
	}

	apiKeys, err := auth.ParseAPIKeys(cfg.APIKeys)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse api keys")
	}
	authenticator := auth.NewAuthenticator(
		auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		auth.NewKeyStore(apiKeys),
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()
	go limiter.Run(limiterCtx, time.Minute)

	router, err := handler.NewRouter(handler.RouterOptions{
		Authenticator: authenticator,
		Metrics:       m,
		RateLimiter:   limiter,
		DB:            pool,
		CORSOrigins:   cfg.CORSOrigins,
	}, setupServices(pool, cache.New(store, m)))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("cache", cfg.CacheBackend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupServices(pool *pgxpool.Pool, c *cache.Cache) handler.Services {
	refRepo := repository.NewReferenceRepository(pool)
	caRepo := repository.NewCountryAuthorityRepository(pool)
	pmRepo := repository.NewProviderMethodRepository(pool)
	fieldRepo := repository.NewFieldRepository(pool)
	limitRepo := repository.NewLimitRepository(pool)
	bankRepo := repository.NewBankAccountRepository(pool)
	credRepo := repository.NewCredentialsRepository(pool)
	restrictionRepo := repository.NewRestrictionRepository(pool)
	stpRepo := repository.NewStpRuleRepository(pool)

	return handler.Services{
		Reference:        service.NewReferenceService(refRepo, c),
		CountryAuthority: service.NewCountryAuthorityService(caRepo, pmRepo, c),
		WithdrawalsOrder: service.NewWithdrawalsOrderService(caRepo, pmRepo, c),
		Field:            service.NewFieldService(caRepo, pmRepo, fieldRepo, c),
		Limit:            service.NewTransactionLimitService(caRepo, pmRepo, limitRepo, c),
		BankAccount:      service.NewBankAccountService(caRepo, bankRepo, c),
		Credentials:      service.NewCredentialsService(caRepo, credRepo, c),
		Restriction:      service.NewRestrictionService(caRepo, restrictionRepo, c),
		StpRule:          service.NewStpRuleService(caRepo, stpRepo, c),
		ProviderSettings: service.NewProviderSettingsService(caRepo, pmRepo, c),
		Export:           service.NewExportService(pmRepo),
	}
}
