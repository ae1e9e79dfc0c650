package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
)

type ItemRepository struct{}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	db, err := getTenantScope(ctx)
	if err != nil {
		return nil, err
	}

	items := []domain.Item{}
	if err := db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	db, err := getTenantScope(ctx)
	if err != nil {
		return nil, err
	}

	var item domain.Item
	if err := db.Where("id = ?", id).Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	db, err := getTenantScope(ctx)
	if err != nil {
		return err
	}
	return db.Create(item).Error
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	db, err := getTenantScope(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&domain.Item{}).Where("id = ?", item.ID).Update("name", item.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
