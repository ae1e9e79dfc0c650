package memory

import (
	"context"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
)

type ItemRepository struct {
	store *Store
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	p, err := r.store.active(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	items := make([]domain.Item, len(p.items))
	copy(items, p.items)
	return items, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	p, err := r.store.active(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, item := range p.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	p, err := r.store.active(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	item.ID = p.nextItemID
	p.nextItemID++
	p.items = append(p.items, *item)
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	p, err := r.store.active(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].ID == item.ID {
			p.items[i] = *item
			return nil
		}
	}
	return repository.ErrNotFound
}
