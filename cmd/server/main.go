package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	auditapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/audit"
	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	deliveryapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/delivery"
	identityapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/identity"
	ledgerapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/ledger"
	partnerapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/partner"
	reportapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/report"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/auth"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/cache"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/config"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/logger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence"
	"github.com/Codesaur1618/Skandaenterpriese/internal/interfaces/http/handler"
	"github.com/Codesaur1618/Skandaenterpriese/internal/interfaces/http/middleware"
	"github.com/Codesaur1618/Skandaenterpriese/internal/interfaces/http/router"
)

//	@title			Skanda Ledger API
//	@version		1.0
//	@description	Multi-tenant commercial ledger for vendor bills, proxy splits, credit entries and deliveries

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const appVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Skanda Ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	permRepo := persistence.NewGormPermissionRepository(db.DB)
	rolePermRepo := persistence.NewGormRolePermissionRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	proxyRepo := persistence.NewGormProxyBillRepository(db.DB)
	creditRepo := persistence.NewGormCreditEntryRepository(db.DB)
	orderRepo := persistence.NewGormDeliveryOrderRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	// Token blacklist rides Redis so revocation survives restarts; the
	// in-memory fallback keeps a single instance usable without it
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	var blacklist auth.TokenBlacklist
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist. "+
			"Revoked tokens will be accepted again after a restart.",
			zap.Error(err),
		)
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	// Grant source: store-backed, cached in Redis when reachable
	grantStore := authz.NewRepositoryGrantSource(rolePermRepo, permRepo)
	grantFactory := cache.NewGrantSourceFactory(cfg.Redis, cache.WithLogger(log))
	grantSource, grantInvalidator, err := grantFactory.CreateSource(grantStore)
	if err != nil {
		log.Fatal("Failed to initialize grant source", zap.Error(err))
	}
	gate := authz.NewGate(roleRepo, grantSource)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	recon := ledger.NewReconciliationService()
	taxRate := decimal.NewFromFloat(cfg.Ledger.TaxRate)

	authService := identityapp.NewAuthService(
		tenantRepo, userRepo, roleRepo, grantSource, jwtService, blacklist,
		identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockDuration,
		}, log,
	)
	userService := identityapp.NewUserService(userRepo, roleRepo)
	permissionService := identityapp.NewPermissionService(
		roleRepo, permRepo, rolePermRepo, grantInvalidator, auditRepo, txManager,
	)
	billService := ledgerapp.NewBillService(
		billRepo, proxyRepo, creditRepo, vendorRepo, recon, auditRepo, txManager, taxRate,
	)
	proxyService := ledgerapp.NewProxyBillService(
		proxyRepo, billRepo, creditRepo, vendorRepo, recon, auditRepo, txManager,
	)
	creditService := ledgerapp.NewCreditEntryService(
		creditRepo, billRepo, proxyRepo, vendorRepo, recon, auditRepo, txManager,
	)
	vendorService := partnerapp.NewVendorService(
		vendorRepo, billRepo, proxyRepo, creditRepo, auditRepo, txManager,
	)
	deliveryService := deliveryapp.NewDeliveryService(
		orderRepo, billRepo, proxyRepo, userRepo, auditRepo, txManager,
	)
	reportService := reportapp.NewReportService(vendorRepo, billRepo, creditRepo, orderRepo, recon)
	auditQueryService := auditapp.NewQueryService(auditRepo)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	billHandler := handler.NewBillHandler(billService, gate)
	proxyHandler := handler.NewProxyBillHandler(proxyService)
	creditHandler := handler.NewCreditEntryHandler(creditService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService, gate)
	reportHandler := handler.NewReportHandler(reportService)
	auditHandler := handler.NewAuditHandler(auditQueryService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, appVersion)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router. Every route declares the permission
	// it requires; the route table below is the permission matrix.
	r := router.NewRouter(engine, gate, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
			"/api/v1/system/health",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Authentication (login and refresh are public via skip paths; the
	// rest need a valid token but no specific permission)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", router.PermissionAny, authHandler.Login)
	authRoutes.POST("/refresh", router.PermissionAny, authHandler.Refresh)
	authRoutes.POST("/logout", router.PermissionAny, authHandler.Logout)
	authRoutes.GET("/me", router.PermissionAny, authHandler.Me)
	authRoutes.POST("/change-password", router.PermissionAny, authHandler.ChangePassword)

	// Bills
	billRoutes := router.NewDomainGroup("bills", "/bills")
	billRoutes.GET("", identity.PermViewBills, billHandler.List)
	billRoutes.POST("", identity.PermCreateBill, billHandler.Create)
	billRoutes.GET("/:id", identity.PermViewBills, billHandler.GetByID)
	billRoutes.GET("/:id/proxy-bills", identity.PermViewBills, proxyHandler.ListByParent)
	billRoutes.POST("/:id/confirm", identity.PermConfirmBill, billHandler.Confirm)
	billRoutes.POST("/:id/cancel", identity.PermCancelBill, billHandler.Cancel)
	billRoutes.POST("/:id/authorize", identity.PermAuthorizeBill, billHandler.Authorize)
	billRoutes.POST("/:id/unauthorize", identity.PermAuthorizeBill, billHandler.Unauthorize)
	billRoutes.POST("/:id/payments", identity.PermCreateCredit, billHandler.AcceptPayment)
	billRoutes.POST("/:id/split", identity.PermCreateBill, billHandler.Split)

	// Proxy bills
	proxyRoutes := router.NewDomainGroup("proxy-bills", "/proxy-bills")
	proxyRoutes.GET("", identity.PermViewBills, proxyHandler.List)
	proxyRoutes.POST("", identity.PermCreateBill, proxyHandler.Create)
	proxyRoutes.GET("/:id", identity.PermViewBills, proxyHandler.GetByID)
	proxyRoutes.PUT("/:id/vendor", identity.PermCreateBill, proxyHandler.ReassignVendor)
	proxyRoutes.POST("/:id/confirm", identity.PermConfirmBill, proxyHandler.Confirm)
	proxyRoutes.POST("/:id/cancel", identity.PermCancelBill, proxyHandler.Cancel)
	proxyRoutes.POST("/:id/payments", identity.PermCreateCredit, proxyHandler.AcceptPayment)

	// Credit entries
	creditRoutes := router.NewDomainGroup("credits", "/credits")
	creditRoutes.GET("", identity.PermViewCredits, creditHandler.List)
	creditRoutes.POST("", identity.PermCreateCredit, creditHandler.Create)
	creditRoutes.GET("/:id", identity.PermViewCredits, creditHandler.GetByID)
	creditRoutes.PUT("/:id", identity.PermEditCredit, creditHandler.Update)

	// Vendors
	vendorRoutes := router.NewDomainGroup("vendors", "/vendors")
	vendorRoutes.GET("", identity.PermViewVendors, vendorHandler.List)
	vendorRoutes.POST("", identity.PermCreateVendor, vendorHandler.Create)
	vendorRoutes.POST("/import", identity.PermCreateVendor, vendorHandler.BulkImport)
	vendorRoutes.GET("/:id", identity.PermViewVendors, vendorHandler.GetByID)
	vendorRoutes.PUT("/:id", identity.PermEditVendor, vendorHandler.Update)
	vendorRoutes.DELETE("/:id", identity.PermDeleteVendor, vendorHandler.Delete)

	// Delivery orders
	deliveryRoutes := router.NewDomainGroup("deliveries", "/deliveries")
	deliveryRoutes.GET("", identity.PermViewDeliveries, deliveryHandler.List)
	deliveryRoutes.POST("", identity.PermCreateDelivery, deliveryHandler.Create)
	deliveryRoutes.GET("/:id", identity.PermViewDeliveries, deliveryHandler.GetByID)
	deliveryRoutes.POST("/:id/status", identity.PermUpdateDelivery, deliveryHandler.UpdateStatus)

	// User administration
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.GET("", identity.PermManagePermissions, userHandler.List)
	userRoutes.POST("", identity.PermManagePermissions, userHandler.Create)
	userRoutes.GET("/:id", identity.PermManagePermissions, userHandler.GetByID)
	userRoutes.PUT("/:id", identity.PermManagePermissions, userHandler.Update)
	userRoutes.POST("/:id/activate", identity.PermManagePermissions, userHandler.Activate)
	userRoutes.POST("/:id/deactivate", identity.PermManagePermissions, userHandler.Deactivate)
	userRoutes.POST("/:id/unlock", identity.PermManagePermissions, userHandler.Unlock)
	userRoutes.POST("/:id/reset-password", identity.PermManagePermissions, userHandler.ResetPassword)

	// Permission catalog and role grants
	permissionRoutes := router.NewDomainGroup("permissions", "/permissions")
	permissionRoutes.GET("", identity.PermManagePermissions, permissionHandler.ListCatalog)

	roleRoutes := router.NewDomainGroup("roles", "/roles")
	roleRoutes.GET("", identity.PermManagePermissions, permissionHandler.ListRoles)
	roleRoutes.GET("/:id/grants", identity.PermManagePermissions, permissionHandler.GetRoleGrants)
	roleRoutes.PUT("/:id/grants", identity.PermManagePermissions, permissionHandler.UpdateRoleGrants)

	// Reports
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/dashboard", identity.PermViewReports, reportHandler.Dashboard)
	reportRoutes.GET("/outstanding", identity.PermViewReports, reportHandler.Outstanding)
	reportRoutes.GET("/collections", identity.PermViewReports, reportHandler.Collections)
	reportRoutes.GET("/deliveries", identity.PermViewReports, reportHandler.DeliveryStatus)

	// Audit trail
	auditRoutes := router.NewDomainGroup("audit", "/audit-logs")
	auditRoutes.GET("", identity.PermManagePermissions, auditHandler.List)

	// System
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", router.PermissionAny, systemHandler.Ping)
	systemRoutes.GET("/info", router.PermissionAny, systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", router.PermissionAny, systemHandler.Health)

	// Register all domain groups
	r.Register(authRoutes).
		Register(billRoutes).
		Register(proxyRoutes).
		Register(creditRoutes).
		Register(vendorRoutes).
		Register(deliveryRoutes).
		Register(userRoutes).
		Register(permissionRoutes).
		Register(roleRoutes).
		Register(reportRoutes).
		Register(auditRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
