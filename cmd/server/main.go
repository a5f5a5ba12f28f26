package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/koperasi/backend/docs"
	cashierapp "github.com/koperasi/backend/internal/application/cashier"
	catalogapp "github.com/koperasi/backend/internal/application/catalog"
	identityapp "github.com/koperasi/backend/internal/application/identity"
	inventoryapp "github.com/koperasi/backend/internal/application/inventory"
	partnerapp "github.com/koperasi/backend/internal/application/partner"
	purchaseapp "github.com/koperasi/backend/internal/application/purchase"
	receiptapp "github.com/koperasi/backend/internal/application/receipt"
	reportapp "github.com/koperasi/backend/internal/application/report"
	saleapp "github.com/koperasi/backend/internal/application/sale"
	"github.com/koperasi/backend/internal/infrastructure/auth"
	"github.com/koperasi/backend/internal/infrastructure/cache"
	"github.com/koperasi/backend/internal/infrastructure/config"
	"github.com/koperasi/backend/internal/infrastructure/logger"
	"github.com/koperasi/backend/internal/infrastructure/persistence"
	"github.com/koperasi/backend/internal/infrastructure/printing"
	"github.com/koperasi/backend/internal/infrastructure/storage"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
	"github.com/koperasi/backend/internal/interfaces/http/handler"
	"github.com/koperasi/backend/internal/interfaces/http/middleware"
	"github.com/koperasi/backend/internal/interfaces/http/router"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Koperasi Backend API
//	@version		1.0
//	@description	Backend toko koperasi: kasir, penjualan kredit, pembelian, stok dan laporan.

//	@contact.name	Pengurus Koperasi
//	@contact.url	https://github.com/koperasi/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// OTLP log export is teed into the main logger once the provider exists.
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if logProvider.IsEnabled() {
		log, err = logger.New(logCfg, logProvider.Core(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Koperasi Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	meter := meterProvider.Meter()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBInstrumentation(db.DB, cfg.Telemetry, meter, log); err != nil {
		log.Fatal("Failed to register database instrumentation", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		if _, err := telemetry.RegisterPoolMetrics(meter, sqlDB); err != nil {
			log.Warn("Failed to register connection pool metrics", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	idempotencyStore := cache.NewIdempotencyStore(redisClient)
	revocation := newRevocationList(redisClient)

	archive, err := newReportArchive(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize report storage", zap.Error(err))
	}

	renderer, err := printing.NewReceiptRenderer()
	if err != nil {
		log.Fatal("Failed to initialize receipt renderer", zap.Error(err))
	}
	var pdfConverter printing.PDFConverter
	if cfg.Receipt.PDFEnabled {
		pdfConverter = printing.NewChromedpConverter(cfg.Receipt, log.Named("chromedp"))
		defer func() { _ = pdfConverter.Close() }()
	}

	businessMetrics, err := telemetry.NewBusinessMetrics(meter, log)
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormCreditPaymentRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB, cfg.App.Location())
	scope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	ledger := inventoryapp.NewLedger()
	ledger.SetRejectionRecorder(businessMetrics)

	saleService := saleapp.NewSaleService(saleRepo, scope, ledger)
	saleService.SetMetrics(businessMetrics)
	paymentService := saleapp.NewCreditPaymentService(saleRepo, paymentRepo, scope)
	paymentService.SetMetrics(businessMetrics)
	purchaseService := purchaseapp.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, scope, ledger)
	purchaseService.SetMetrics(businessMetrics)
	receiptService := receiptapp.NewReceiptService(saleService, renderer, pdfConverter,
		receiptapp.StoreInfo{Name: cfg.Receipt.StoreName, Address: cfg.Receipt.StoreAddress},
		cfg.App.Location(), log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, revocation, log)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Sale:          handler.NewSaleHandler(saleService, paymentService, receiptService),
		CreditPayment: handler.NewCreditPaymentHandler(paymentService),
		Cashier:       handler.NewCashierHandler(cashierapp.NewCashierService(productRepo, memberRepo), saleService),
		Purchase:      handler.NewPurchaseHandler(purchaseService),
		Product:       handler.NewProductHandler(catalogapp.NewProductService(productRepo, categoryRepo)),
		Category:      handler.NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo)),
		Member:        handler.NewMemberHandler(partnerapp.NewMemberService(memberRepo)),
		Supplier:      handler.NewSupplierHandler(partnerapp.NewSupplierService(supplierRepo)),
		Report: handler.NewReportHandler(
			reportapp.NewDashboardService(reportRepo),
			reportapp.NewReportService(reportRepo, archive, log),
		),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request id, tracing, logging, recovery, headers,
	// CORS, body limit, rate limit, metrics, profiling labels.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, tracerProvider.IsEnabled()))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.IsProduction()
	engine.Use(middleware.SecureWithConfig(security))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to initialize HTTP metrics", zap.Error(err))
	}
	engine.Use(httpMetrics)
	engine.Use(middleware.Profiling(profiler.IsEnabled()))
	engine.Use(middleware.SpanErrorMarker())

	systemHandler := handler.NewSystemHandler(version, map[string]handler.HealthCheck{
		"database": func(context.Context) error { return db.Ping() },
		"redis":    redisCheck(redisClient),
	})
	engine.GET("/health", systemHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	defer loginLimiter.Stop()

	guards := router.Guards{
		Authenticate: middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			Validator:  jwtService,
			Revocation: revocation,
			Logger:     log,
		}),
		Annotate:       middleware.TracingAttributeInjector(),
		Idempotency:    middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL),
		LoginRateLimit: middleware.RateLimit(loginLimiter),
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	for _, group := range router.APIGroups(handlers, guards) {
		r.Register(group)
	}
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
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("go_version", runtime.Version()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down log provider", zap.Error(err))
	}
}

func newRevocationList(client *redis.Client) auth.RevocationList {
	if client == nil {
		return auth.NewInMemoryRevocationList()
	}
	return auth.NewRedisRevocationList(client)
}

func newReportArchive(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (reportapp.Archive, error) {
	if !cfg.Enabled {
		log.Info("Object storage disabled, archived reports are kept in memory")
		return storage.NewMemoryArchive(cfg.PresignExpiration), nil
	}
	archive, err := storage.NewS3Archive(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

func redisCheck(client *redis.Client) handler.HealthCheck {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
