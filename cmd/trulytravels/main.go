package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trulytravels/cfg"
	"trulytravels/internal/middleware"
	"trulytravels/internal/pricing"
	"trulytravels/internal/trip"
	"trulytravels/migrations"
	"trulytravels/pkg/amadeus"
	"trulytravels/pkg/cache"
	"trulytravels/pkg/db"
	"trulytravels/pkg/idgen"
	"trulytravels/pkg/logger"
	"trulytravels/pkg/metrics"
	"trulytravels/pkg/telemetry"

	_ "trulytravels/cmd/trulytravels/docs" // swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           TrulyTravels API
// @version         1.0
// @description     Trip cost estimation, saved trips and PDF trip summaries.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ============
	// Otel
	// ============
	shutdownOtel, err := telemetry.Init(ctx, telemetry.Config{
		OTLPEndpoint: config.Observability.OTLPEndpoint,
		ServiceName:  config.Observability.ServiceName,
		Environment:  config.Observability.Environment,
	}, zlogger)
	if err != nil {
		zlogger.Warn("continuing without tracing/metrics", logger.Field{Key: "error", Value: err})
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				zlogger.Error("failed to shutdown OpenTelemetry", logger.Field{Key: "error", Value: err})
			}
		}()
	}

	// ============
	// Trip store
	// ============
	store, closeStore, err := openStore(ctx, config, zlogger)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	ids, err := idgen.NewSnowflakeGenerator(config.SnowflakeNode)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// External Service
	// ============
	var searcher pricing.OfferSearcher
	if config.Provider.Enabled() {
		httpClient := &http.Client{
			Timeout: config.Provider.Timeout,
		}
		searcher = amadeus.NewClient(httpClient, amadeus.Config{
			BaseURL:      config.Provider.BaseURL,
			ClientID:     config.Provider.ClientID,
			ClientSecret: config.Provider.ClientSecret,
		}, zlogger)
	} else {
		zlogger.Warn("flight provider credentials not set, using fallback flight price",
			logger.Field{Key: "fallback_price", Value: config.Pricing.FallbackFlightPrice},
		)
	}

	prices := pricing.NewPriceSource(searcher, pricing.SourceConfig{
		FallbackPrice: config.Pricing.FallbackFlightPrice,
		Currency:      config.Pricing.Currency,
		Timeout:       config.Provider.Timeout,
	}, zlogger)

	// ============
	// Internal Service
	// ============
	rates := pricing.DefaultRates()
	rates.Nightly[pricing.TierBudget] = config.Pricing.NightlyBudget
	rates.Nightly[pricing.TierMid] = config.Pricing.NightlyMid
	rates.Nightly[pricing.TierLuxury] = config.Pricing.NightlyLuxury

	tripSvc := trip.NewService(
		pricing.NewCityResolver(pricing.DefaultCityCodes(), config.Pricing.DefaultLocationCode),
		prices,
		pricing.NewComposer(rates),
		trip.NewBuilder(ids),
		store,
		config.Pricing.Currency,
		zlogger,
	)
	tripHandler := trip.NewHandler(tripSvc)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		otelgin.Middleware(config.Observability.ServiceName),
		middleware.RequestID(),
		middleware.RequestLogger(zlogger),
		metrics.Middleware(),
		middleware.CORS(config.HTTP.CORSOrigins),
		middleware.MaxBodySize(config.HTTP.MaxBodyBytes),
	)

	tripHandler.RegisterRoutes(r)
	r.GET("/healthz", tripHandler.HealthHandler)
	r.GET("/metrics", metrics.Handler())
	initSwagger(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.HTTP.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlogger.Info("server listening", logger.Field{Key: "addr", Value: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlogger.Error("server stopped", logger.Field{Key: "error", Value: err})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlogger.Error("graceful shutdown failed", logger.Field{Key: "error", Value: err})
	}
	zlogger.Info("server stopped")
}

// openStore builds the trip store selected by STORE_DRIVER. Appends are
// always serialized.
func openStore(ctx context.Context, config *cfg.Config, zlogger logger.Client) (trip.Store, func(), error) {
	switch config.Store.Driver {
	case cfg.StoreRedis:
		redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
		redis := cache.NewRedisCache(redisAddr, config.RedisConfig.Password)
		if err := redis.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("redis unreachable at %s: %w", redisAddr, err)
		}
		zlogger.Info("trip store ready", logger.Field{Key: "driver", Value: "redis"}, logger.Field{Key: "addr", Value: redisAddr})
		return trip.NewSerialStore(trip.NewCacheStore(redis)), func() {}, nil

	case cfg.StoreMemory:
		zlogger.Warn("trip store is in memory, trips are lost on restart")
		return trip.NewSerialStore(trip.NewCacheStore(cache.NewMemoryCache())), func() {}, nil

	default:
		client, err := db.NewSQLiteClient(config.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.Up(client.DB()); err != nil {
			client.Close()
			return nil, nil, err
		}
		zlogger.Info("trip store ready", logger.Field{Key: "driver", Value: "sqlite"}, logger.Field{Key: "path", Value: config.Store.SQLitePath})
		closeFn := func() {
			if err := client.Close(); err != nil {
				zlogger.Error("failed to close trip database", logger.Field{Key: "error", Value: err})
			}
		}
		return trip.NewSerialStore(trip.NewSQLStore(client)), closeFn, nil
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>TrulyTravels API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
