package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gorm.io/gorm"

	"github.com/kingrain94/tenant-items-api/internal/config"
	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
)

type postgresRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.Repository {
	return newRepository(dbConnections.Writer, dbConnections.Reader)
}

func newRepository(writerDB, readerDB *gorm.DB) *postgresRepository {
	return &postgresRepository{
		writerDB: writerDB,
		readerDB: readerDB,
		itemRepo: NewItemRepository(),
		userRepo: NewUserRepository(),
	}
}

func (r *postgresRepository) Item() repository.ItemRepository {
	return r.itemRepo
}

func (r *postgresRepository) User() repository.UserRepository {
	return r.userRepo
}

// WithTenantScope opens a transaction, points its search_path at schema and
// runs op inside it. SET LOCAL dies with the transaction, so the pooled
// connection goes back with its previous search_path whether op commits,
// fails or panics. A schema that does not exist surfaces from op's first query.
func (r *postgresRepository) WithTenantScope(ctx context.Context, schema string, op func(ctx context.Context) error) error {
	if schema == "" {
		return tenant.ErrEmptySchema
	}

	db := r.writerDB
	if repository.IsReadOnly(ctx) {
		db = r.readerDB
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL search_path TO " + pgx.Identifier{schema}.Sanitize()).Error; err != nil {
			return fmt.Errorf("failed to activate schema %s: %w", schema, err)
		}

		return tenant.Run(ctx, schema, func(ctx context.Context) error {
			return op(withScopedTx(ctx, schema, tx))
		})
	})
}
