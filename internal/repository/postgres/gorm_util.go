package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
)

type txKey struct{}

// scopedTx is the transaction a tenant scope pinned to one pooled connection.
type scopedTx struct {
	schema string
	db     *gorm.DB
}

func withScopedTx(ctx context.Context, schema string, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, &scopedTx{schema: schema, db: tx})
}

// getTenantScope returns the scope transaction carried by ctx. Statements issued
// through it resolve unqualified table names against the tenant schema only.
func getTenantScope(ctx context.Context) (*gorm.DB, error) {
	tx, ok := ctx.Value(txKey{}).(*scopedTx)
	if !ok || tx.schema != tenant.ActiveSchema(ctx) {
		return nil, repository.ErrNotScoped
	}
	return tx.db.WithContext(ctx), nil
}
