// Package memory is an in-process Repository with one partition per tenant
// schema. It serves local runs and tests; partitions must be provisioned up
// front, exactly like PostgreSQL schemas.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
)

type partition struct {
	mu         sync.RWMutex
	items      []domain.Item
	users      []domain.User
	nextItemID int64
	nextUserID int64
}

// Store holds every provisioned partition.
type Store struct {
	mu         sync.RWMutex
	partitions map[string]*partition
}

func NewStore(schemas ...string) *Store {
	s := &Store{partitions: map[string]*partition{}}
	for _, schema := range schemas {
		s.Provision(schema)
	}
	return s
}

// Provision creates an empty partition for schema if it does not exist yet.
func (s *Store) Provision(schema string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partitions[schema]; !ok {
		s.partitions[schema] = &partition{nextItemID: 1, nextUserID: 1}
	}
}

// SeedUser stores user in schema's partition and returns it with its id assigned.
func (s *Store) SeedUser(schema string, user domain.User) (domain.User, error) {
	p, err := s.partition(schema)
	if err != nil {
		return domain.User{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, u := range p.users {
		if u.Username == user.Username {
			return domain.User{}, fmt.Errorf("user %q already exists in %s", user.Username, schema)
		}
	}
	user.ID = p.nextUserID
	p.nextUserID++
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now().UTC()
	}
	p.users = append(p.users, user)
	return user, nil
}

func (s *Store) partition(schema string) (*partition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.partitions[schema]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrUnknownSchema, schema)
	}
	return p, nil
}

// active returns the partition of the scope carried by ctx.
func (s *Store) active(ctx context.Context) (*partition, error) {
	if !tenant.IsScoped(ctx) {
		return nil, repository.ErrNotScoped
	}
	return s.partition(tenant.ActiveSchema(ctx))
}

type memoryRepository struct {
	store *Store
	items *ItemRepository
	users *UserRepository
}

func NewRepository(store *Store) repository.Repository {
	return &memoryRepository{
		store: store,
		items: &ItemRepository{store: store},
		users: &UserRepository{store: store},
	}
}

func (r *memoryRepository) Item() repository.ItemRepository {
	return r.items
}

func (r *memoryRepository) User() repository.UserRepository {
	return r.users
}

// WithTenantScope does not check that schema exists; the first data access does.
func (r *memoryRepository) WithTenantScope(ctx context.Context, schema string, op func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return tenant.Run(ctx, schema, op)
}
