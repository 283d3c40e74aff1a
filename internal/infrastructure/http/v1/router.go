// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"krilo/internal/core/tenant"
	"krilo/internal/domain/auth"
	"krilo/internal/domain/catalogs/customer"
	"krilo/internal/domain/catalogs/product"
	"krilo/internal/domain/company"
	"krilo/internal/domain/documents/invoice"
	"krilo/internal/domain/export"
	"krilo/internal/domain/registers/account"
	"krilo/internal/domain/registers/inventory"
	"krilo/internal/infrastructure/http/v1/handlers"
	"krilo/internal/infrastructure/http/v1/middleware"
	"krilo/internal/infrastructure/storage/postgres/catalog_repo"
	"krilo/internal/infrastructure/storage/postgres/document_repo"
	"krilo/internal/infrastructure/storage/postgres/register_repo"
	"krilo/pkg/logger"
)

// RouterConfig holds router configuration for the multi-tenant setup.
type RouterConfig struct {
	// TenantManager manages database connections for all tenants
	TenantManager *tenant.Manager

	// MetaPool is connection to meta-database (for health checks and auth)
	MetaPool *pgxpool.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth, no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.MetaPool, cfg.TenantManager)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
		health.GET("/tenants", healthHandler.TenantsStats)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, baseHandler, cfg)

		// Protected endpoints. Auth runs first: the tenant identity is
		// carried inside the bearer credential, so TenantDB resolves
		// the partition only after the token is validated.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.TenantDB(cfg.TenantManager))

		registerBillingRoutes(protected, baseHandler)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
// Register and login work against the meta database only; no tenant
// partition is resolved.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	public := rg.Group("/auth")
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	protected.GET("/me", authHandler.Me)
}

// registerBillingRoutes registers the tenant-scoped billing endpoints.
// Repos and services are created once; the TxManager and pool are
// obtained from the request context per tenant.
func registerBillingRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler) {
	// Catalogs
	productRepo := catalog_repo.NewProductRepo()
	productService := product.NewService(productRepo)

	customerRepo := catalog_repo.NewCustomerRepo()
	customerService := customer.NewService(customerRepo)

	// Company settings singleton
	companyRepo := catalog_repo.NewCompanySettingsRepo()
	companyService := company.NewService(companyRepo)

	// Registers
	inventoryService := inventory.NewService(register_repo.NewInventoryRepo())
	accountService := account.NewService(register_repo.NewAccountRepo())

	// Invoice engine
	invoiceRepo := document_repo.NewInvoiceRepo()
	invoiceService := invoice.NewService(
		invoiceRepo,
		productRepo,
		customerRepo,
		inventoryService,
		accountService,
		companyService.SellerState,
	)

	// Document rendering
	exporter := export.NewBuilder(invoiceService, customerRepo, productRepo, companyService)
	renderer := export.NewJSONRenderer()

	// --- PRODUCTS ---
	{
		handler := handlers.NewProductHandler(base, productService)
		products := rg.Group("/products")
		products.GET("", handler.List)
		products.GET("/categories", handler.Categories)
		products.GET("/low-stock", handler.LowStock)
		products.GET("/:id", handler.Get)
		products.POST("", handler.Create)
		products.PUT("/:id", handler.Update)
		products.DELETE("/:id", handler.Delete)
	}

	// --- CUSTOMERS ---
	{
		handler := handlers.NewCustomerHandler(base, customerService)
		customers := rg.Group("/customers")
		customers.GET("", handler.List)
		customers.GET("/:id", handler.Get)
		customers.POST("", handler.Create)
		customers.PUT("/:id", handler.Update)
		customers.DELETE("/:id", handler.Delete)
	}

	// --- INVOICES ---
	{
		handler := handlers.NewInvoiceHandler(base, invoiceService, productRepo, exporter, renderer)
		invoices := rg.Group("/invoices")
		invoices.GET("", handler.List)
		invoices.GET("/:id", handler.Get)
		invoices.GET("/:id/document", handler.Document)
		invoices.POST("", handler.Create)
		invoices.PUT("/:id", handler.UpdatePayment)
	}

	// --- ACCOUNTS ---
	{
		handler := handlers.NewAccountHandler(base, accountService)
		accounts := rg.Group("/accounts")
		accounts.GET("", handler.List)
		accounts.GET("/balance", handler.Balance)
		accounts.POST("", handler.Create)
	}

	// --- COMPANY SETTINGS ---
	{
		handler := handlers.NewCompanyHandler(base, companyService)
		settings := rg.Group("/company-settings")
		settings.GET("", handler.Get)
		settings.POST("", handler.Upsert)
	}
}
