package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenant-items-api/internal/tenant"
	"github.com/kingrain94/tenant-items-api/internal/utils"
)

// TenantResolver derives the tenant schema from the Host header and attaches
// it to the request before any handler runs. It never rejects a request:
// an unknown schema only fails once a scope is opened against it.
func TenantResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		schema := tenant.ResolveSchema(c.Request.Host)

		c.Set(string(utils.SchemaKey), schema)
		c.Request = c.Request.WithContext(tenant.WithSchema(c.Request.Context(), schema))
		c.Next()
	}
}
