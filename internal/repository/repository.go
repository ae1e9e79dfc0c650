package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrNotScoped is returned when a data operation is issued outside WithTenantScope.
	ErrNotScoped = errors.New("data access outside of a tenant scope")
	// ErrUnknownSchema is returned by backends that can tell a partition does not exist.
	ErrUnknownSchema = errors.New("tenant schema does not exist")
)

// ItemRepository operates on the items of the active tenant partition.
type ItemRepository interface {
	List(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
}

// UserRepository operates on the users of the active tenant partition.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type Repository interface {
	tenant.Scoper
	Item() ItemRepository
	User() UserRepository
}

type readOnlyKey struct{}

// ReadOnly marks ctx so backends with a replica open the next scope against it.
func ReadOnly(ctx context.Context) context.Context {
	return context.WithValue(ctx, readOnlyKey{}, true)
}

func IsReadOnly(ctx context.Context) bool {
	v, _ := ctx.Value(readOnlyKey{}).(bool)
	return v
}
