package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.take(ctx, "username = ?", username)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	db, err := getTenantScope(ctx)
	if err != nil {
		return nil, err
	}

	users := []domain.User{}
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	db, err := getTenantScope(ctx)
	if err != nil {
		return err
	}
	return db.Model(&domain.User{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *UserRepository) take(ctx context.Context, query string, arg any) (*domain.User, error) {
	db, err := getTenantScope(ctx)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := db.Where(query, arg).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
