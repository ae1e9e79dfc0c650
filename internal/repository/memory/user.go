package memory

import (
	"context"
	"time"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.ID == id })
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	p, err := r.store.active(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	users := make([]domain.User, len(p.users))
	copy(users, p.users)
	return users, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	p, err := r.store.active(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.users {
		if p.users[i].ID == id {
			p.users[i].LastLogin = &at
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *UserRepository) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	p, err := r.store.active(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, u := range p.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}
