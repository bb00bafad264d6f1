package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/surgishop/backend/internal/application/partner"
	tradeapp "github.com/surgishop/backend/internal/application/trade"
	"github.com/surgishop/backend/internal/infrastructure/cache"
	"github.com/surgishop/backend/internal/infrastructure/config"
	"github.com/surgishop/backend/internal/infrastructure/event"
	"github.com/surgishop/backend/internal/infrastructure/logger"
	"github.com/surgishop/backend/internal/infrastructure/persistence"
	"github.com/surgishop/backend/internal/infrastructure/records"
	"github.com/surgishop/backend/internal/infrastructure/telemetry"
	"github.com/surgishop/backend/internal/interfaces/http/handler"
	"github.com/surgishop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

var version = "dev"

const (
	fieldBatchWait  = 2 * time.Millisecond
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting SurgiShop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry.ServiceVersion = version
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	meter := meterProvider.Meter("github.com/surgishop/backend")

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	unregisterPoolMetrics := func() error { return nil }
	if meterProvider.IsEnabled() {
		plugin, err := telemetry.NewDBMetricsPlugin(meter, log)
		if err != nil {
			log.Fatal("Failed to create database metrics", zap.Error(err))
		}
		if err := db.DB.Use(plugin); err != nil {
			log.Fatal("Failed to register database metrics", zap.Error(err))
		}
		poolMetrics, err := telemetry.RegisterDBPoolMetrics(meter, db.Stats)
		if err != nil {
			log.Fatal("Failed to register pool metrics", zap.Error(err))
		}
		unregisterPoolMetrics = poolMetrics.Unregister
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	ruleMetrics, err := telemetry.NewRuleMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create rule metrics", zap.Error(err))
	}

	// Ledger lookups: batched field reads behind a day-keyed balance cache
	balanceCache := cache.NewBalanceCache(ctx, cfg.Redis, log)
	recordService := records.NewCachedRecordService(
		records.NewFieldLoader(records.NewGormRecordService(db.DB), fieldBatchWait),
		balanceCache,
		cfg.Redis.BalanceTTL,
		logger.ForComponent(log, "records"),
	)

	bus := event.NewInMemoryEventBus(logger.ForComponent(log, "events"))
	audit := event.NewAuditLogHandler(logger.ForComponent(log, "audit"))
	bus.Subscribe(audit, audit.EventTypes()...)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	creditService := partnerapp.NewCreditService(
		persistence.NewGormCustomerRepository(db.DB),
		recordService,
		partnerapp.CreditServiceConfig{
			DefaultCompany: cfg.App.DefaultCompany,
			LookupTimeout:  cfg.Rules.LookupTimeout,
		},
		logger.ForComponent(log, "credit"),
	)
	creditService.SetEventPublisher(bus)
	creditService.SetMetrics(ruleMetrics)

	enforcer := tradeapp.NewLockEnforcer(recordService, cfg.Rules.LookupTimeout, logger.ForComponent(log, "lock"))
	enforcer.SetMetrics(ruleMetrics)

	salesSessions := tradeapp.NewSessionStore[*tradeapp.SalesDocumentSession](cfg.Rules.SessionTTL)
	receiptSessions := tradeapp.NewSessionStore[*tradeapp.ReceiptReconciler](cfg.Rules.SessionTTL)
	go salesSessions.Run(ctx, cfg.Rules.SweepInterval)
	go receiptSessions.Run(ctx, cfg.Rules.SweepInterval)

	salesService := tradeapp.NewSalesDocumentService(
		persistence.NewGormSalesDocumentRepository(db.DB),
		enforcer,
		salesSessions,
		cfg.Rules.AdvisoryWait,
		logger.ForComponent(log, "sales"),
	)
	salesService.SetEventPublisher(bus)

	receiptService := tradeapp.NewPurchaseReceiptService(
		persistence.NewGormPurchaseReceiptRepository(db.DB),
		receiptSessions,
		cfg.Rules.ReceiptDebounce,
		logger.ForComponent(log, "receipts"),
	)
	receiptService.SetEventPublisher(bus)
	receiptService.SetMetrics(ruleMetrics)

	engine, limiter, err := router.New(router.Handlers{
		Customers:        handler.NewCustomerHandler(creditService),
		SalesDocuments:   handler.NewSalesDocumentHandler(salesService),
		PurchaseReceipts: handler.NewPurchaseReceiptHandler(receiptService),
		System:           handler.NewSystemHandler(cfg.App.Name, version, db),
	}, router.EngineOptions{
		HTTP:           cfg.HTTP,
		Logger:         log,
		Meter:          meter,
		RequestTimeout: requestTimeout,
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if limiter != nil {
		limiter.Stop()
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := balanceCache.Close(); err != nil {
		log.Error("Error closing balance cache", zap.Error(err))
	}
	if err := unregisterPoolMetrics(); err != nil {
		log.Error("Error unregistering pool metrics", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down metrics", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
