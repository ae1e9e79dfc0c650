package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/tenant-items-api/internal/auth"
	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
)

type mockRepository struct {
	mock.Mock
	items *mockItemRepository
	users *mockUserRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: new(mockItemRepository), users: new(mockUserRepository)}
}

func (m *mockRepository) WithTenantScope(ctx context.Context, schema string, op func(ctx context.Context) error) error {
	args := m.Called(schema)
	if err := args.Error(0); err != nil {
		return err
	}
	return tenant.Run(ctx, schema, op)
}

func (m *mockRepository) Item() repository.ItemRepository { return m.items }
func (m *mockRepository) User() repository.UserRepository { return m.users }

type mockItemRepository struct{ mock.Mock }

func (m *mockItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(tenant.ActiveSchema(ctx))
	items, _ := args.Get(0).([]domain.Item)
	return items, args.Error(1)
}

func (m *mockItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(tenant.ActiveSchema(ctx), id)
	item, _ := args.Get(0).(*domain.Item)
	return item, args.Error(1)
}

func (m *mockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(tenant.ActiveSchema(ctx), item)
	return args.Error(0)
}

func (m *mockItemRepository) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(tenant.ActiveSchema(ctx), item)
	return args.Error(0)
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(tenant.ActiveSchema(ctx), username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(tenant.ActiveSchema(ctx), id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(tenant.ActiveSchema(ctx))
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *mockUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(tenant.ActiveSchema(ctx), id, at)
	return args.Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event domain.ItemEvent) error {
	return m.Called(event.Type, event.Schema, event.Item).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) IssuePair(schema string, userID int64) (auth.TokenPair, error) {
	args := m.Called(schema, userID)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *mockTokens) IssueAccess(schema string, userID int64) (string, error) {
	args := m.Called(schema, userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) Validate(tokenString, schema, tokenType string) (jwt.MapClaims, error) {
	args := m.Called(tokenString, schema, tokenType)
	claims, _ := args.Get(0).(jwt.MapClaims)
	return claims, args.Error(1)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Compare(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}

type mockQueue struct{ mock.Mock }

func (m *mockQueue) SendExportMessage(ctx context.Context, schema, exportID string, requestedBy int64) error {
	return m.Called(schema, exportID, requestedBy).Error(0)
}
