package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/minh261002/Shopee.vn-sub000/docs"
	inventoryapp "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/auth"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/cache"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/event"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/logger"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/migration"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/persistence"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/telemetry"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/handler"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/middleware"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

//	@title			Inventory Ledger API
//	@version		1.0
//	@description	Multi-location stock ledger: locations, items, movements, reservations and stock statistics.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// Version is overridden at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()
	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	// The OTLP log provider exists before the logger, so it reports its
	// own setup through a bootstrap logger.
	bootLog, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log export", zap.Error(err))
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
		ServiceName:    serviceName,
		LoggerProvider: logProvider,
		Level:          logger.ParseLevel(cfg.Log.Level),
	}))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting inventory ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServerURL,
		ApplicationName: serviceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        db.Driver(),
	}, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if err := prepareSchema(db, log); err != nil {
		log.Fatal("Failed to prepare schema", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", db.Driver()))

	statsDB, err := db.SQLX()
	if err != nil {
		log.Fatal("Failed to open stats reader", zap.Error(err))
	}

	statsReader := persistence.NewSQLXStatsReader(statsDB)
	ledgerMetrics, err := telemetry.NewLedgerMetrics(meterProvider)
	if err != nil {
		log.Fatal("Failed to create ledger metrics", zap.Error(err))
	}
	if err := ledgerMetrics.ObserveStockLevels(statsReader.StockLevels); err != nil {
		log.Fatal("Failed to register stock level gauge", zap.Error(err))
	}

	// Repositories and services
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB,
		persistence.WithRetryPolicy(persistence.RetryPolicy{
			MaxRetries: cfg.Inventory.TxMaxRetries,
			Backoff:    cfg.Inventory.TxRetryBackoff,
		}),
		persistence.WithTransactionLogger(log),
		persistence.WithRetryCounter(ledgerMetrics.TxRetries()),
	)

	locationService := inventoryapp.NewLocationService(locationRepo, txScope, log)
	itemStore := inventoryapp.NewItemStore(locationRepo, itemRepo, txScope, log)
	ledgerService := inventoryapp.NewLedgerService(itemStore, itemRepo, movementRepo, txScope, log)
	reservationService := inventoryapp.NewReservationService(itemStore, ledgerService, txScope, log)
	statsService := inventoryapp.NewStatsService(statsReader, cfg.Inventory.RecentMovementsWindow)

	// Idempotency keys for HTTP retries and event redelivery
	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	lowStockHandler := inventoryapp.NewLowStockAlertHandler(log).
		WithNotifier(inventoryapp.NewLoggingStockAlertNotifier(log))
	eventBus.Subscribe(event.NewIdempotentHandler("low_stock_alert", lowStockHandler, idempotencyStore,
		shared.IdempotencyConfig{TTL: cfg.Inventory.IdempotencyTTL, Enabled: true}, log))
	eventBus.Subscribe(ledgerMetrics)

	locationService.SetEventPublisher(eventBus)
	itemStore.SetEventPublisher(eventBus)
	ledgerService.SetEventPublisher(eventBus)
	reservationService.SetEventPublisher(eventBus)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	handlers := handler.Handlers{
		Locations:    handler.NewLocationHandler(locationService),
		Items:        handler.NewItemHandler(locationService, itemStore, ledgerService),
		Movements:    handler.NewMovementHandler(locationService, ledgerService),
		Reservations: handler.NewReservationHandler(locationService, reservationService),
		Stats:        handler.NewStatsHandler(statsService),
		System: handler.NewSystemHandler(cfg.App.Name, Version, handler.PingFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})),
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	httpMetrics, err := middleware.HTTPMetrics(meterProvider)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(middleware.DefaultSecurityConfig()),
		middleware.CORS(cfg.HTTP),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Tracing(middleware.TracingConfig{ServiceName: serviceName, Enabled: tracerProvider.IsEnabled()}),
		httpMetrics,
		middleware.Profiling(middleware.DefaultProfilingConfig()),
	)

	engine.GET("/health", handlers.System.Health)

	var apiMiddleware []gin.HandlerFunc
	authenticate := func(c *gin.Context) { c.Next() }
	if cfg.Auth.Enabled {
		authenticate = middleware.Authenticate(middleware.AuthConfig{
			Verifier: auth.NewTokenVerifier(cfg.Auth),
			Logger:   log,
		})
		apiMiddleware = append(apiMiddleware, authenticate)
	} else {
		log.Warn("Authentication disabled; every caller may act on every store")
	}
	apiMiddleware = append(apiMiddleware, middleware.SpanAttributes())
	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Close()
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(rateLimiter))
	}
	apiMiddleware = append(apiMiddleware, middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  idempotencyStore,
		TTL:    cfg.Inventory.IdempotencyTTL,
		Logger: log,
	}))

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger, authenticate),
			ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(apiMiddleware...),
	)
	handlers.Register(r)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Flush telemetry while the exporters still have a deadline
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down tracing", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down log export", zap.Error(err))
	}

	log.Info("Server exited")
}

// prepareSchema creates SQLite tables from the models and runs the SQL
// migrations against PostgreSQL.
func prepareSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver() == config.DriverSQLite {
		return db.AutoMigrate()
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	// The migrator shares the pool, so it is not closed here: closing it
	// would close sqlDB.
	m, err := migration.New(sqlDB, migration.Source{}, log)
	if err != nil {
		return err
	}
	return m.Up()
}
