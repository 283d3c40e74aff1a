package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"krilo/internal/core/apperror"
	appctx "krilo/internal/core/context"
	"krilo/internal/core/tenant"
	"krilo/internal/infrastructure/storage/postgres"
	"krilo/pkg/logger"
)

// TenantDB middleware resolves the tenant partition and injects its
// database pool into the request context. Runs after Auth: the tenant
// identifier comes from the validated bearer credential, never from a
// client-supplied header.
//
// Flow:
// 1. Read tenant ID from authenticated user context
// 2. Get pool from Manager
// 3. Create TxManager for this request
// 4. Inject pool, TxManager, and Tenant into context
func TenantDB(manager *tenant.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tenantID := appctx.GetTenantID(ctx)
		if tenantID == "" {
			_ = c.Error(apperror.NewTenantNotResolved(""))
			c.Abort()
			return
		}

		managedPool, err := manager.GetPool(ctx, tenantID)
		if err != nil {
			logger.Warn(ctx, "tenant pool error", "tenant_id", tenantID, "error", err)

			switch {
			case errors.Is(err, tenant.ErrTenantNotFound):
				_ = c.Error(apperror.NewTenantNotResolved(tenantID))
			case errors.Is(err, tenant.ErrTenantNotActive):
				_ = c.Error(apperror.NewForbidden("tenant is not active").WithDetail("tenant_id", tenantID))
			case errors.Is(err, tenant.ErrMaxPoolLimit):
				appErr := apperror.NewInternal(err)
				appErr.HTTPStatus = http.StatusServiceUnavailable
				appErr.Message = "service temporarily unavailable"
				_ = c.Error(appErr.WithDetail("tenant_id", tenantID))
			default:
				_ = c.Error(apperror.NewInternal(err).WithDetail("tenant_id", tenantID))
			}
			c.Abort()
			return
		}

		// Track active request for graceful shutdown
		managedPool.AcquireRef()
		defer managedPool.ReleaseRef()

		txManager := postgres.NewTxManagerFromRawPool(managedPool.Pool())

		ctx = tenant.WithPool(ctx, managedPool.Pool())
		ctx = tenant.WithTxManager(ctx, txManager)
		ctx = tenant.WithTenant(ctx, managedPool.Tenant())

		// Handlers and repositories read everything from the request
		// context; gin's own key store stays untouched.
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
