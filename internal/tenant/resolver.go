// Package tenant resolves which tenant partition a request belongs to and
// carries the active partition through a request's context.
package tenant

import (
	"context"
	"strings"

	"github.com/kingrain94/tenant-items-api/internal/utils"
)

// ResolveSchema derives the tenant schema from a request host: everything
// before the first '.'. A host without a dot is returned unchanged. No
// default is applied and the schema is not checked for existence.
func ResolveSchema(host string) string {
	if i := strings.IndexByte(host, '.'); i >= 0 {
		return host[:i]
	}
	return host
}

// WithSchema attaches the resolved schema to ctx.
func WithSchema(ctx context.Context, schema string) context.Context {
	return context.WithValue(ctx, utils.SchemaKey, schema)
}

// SchemaFromContext returns the schema resolved for the request, if any.
func SchemaFromContext(ctx context.Context) (string, bool) {
	schema, ok := ctx.Value(utils.SchemaKey).(string)
	return schema, ok
}
