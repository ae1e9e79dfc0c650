package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

const nameRules = "required,max=255"

// EventPublisher fans item changes out to live subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ItemEvent) error
}

type ItemService struct {
	repo      repository.Repository
	publisher EventPublisher
	validate  *validator.Validate
	logger    *logger.Logger
	now       func() time.Time
}

func NewItemService(repo repository.Repository, publisher EventPublisher, logger *logger.Logger) *ItemService {
	return &ItemService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// List returns every item of the request's tenant in storage order.
func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	err := s.repo.WithTenantScope(repository.ReadOnly(ctx), requestSchema(ctx), func(ctx context.Context) error {
		var err error
		items, err = s.repo.Item().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (s *ItemService) Create(ctx context.Context, name string) (*domain.Item, error) {
	name, err := s.validateName(name)
	if err != nil {
		return nil, err
	}

	schema := requestSchema(ctx)
	item := &domain.Item{Name: name}
	err = s.repo.WithTenantScope(ctx, schema, func(ctx context.Context) error {
		return s.repo.Item().Create(ctx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.publish(ctx, domain.ItemCreated, schema, *item)
	return item, nil
}

// Update applies the non-nil fields of patch to the item with the given id.
func (s *ItemService) Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error) {
	if patch.Name != nil {
		name, err := s.validateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}

	schema := requestSchema(ctx)
	var item *domain.Item
	err := s.repo.WithTenantScope(ctx, schema, func(ctx context.Context) error {
		var err error
		item, err = s.repo.Item().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			item.Name = *patch.Name
		}
		return s.repo.Item().Update(ctx, item)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.publish(ctx, domain.ItemUpdated, schema, *item)
	return item, nil
}

func (s *ItemService) Detail(ctx context.Context, id int64) (*domain.Item, error) {
	var item *domain.Item
	err := s.repo.WithTenantScope(repository.ReadOnly(ctx), requestSchema(ctx), func(ctx context.Context) error {
		var err error
		item, err = s.repo.Item().GetByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (s *ItemService) validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := s.validate.Var(name, nameRules); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && fieldErrs[0].Tag() == "max" {
			return "", NewValidationError("name", "Ensure this field has no more than 255 characters.")
		}
		return "", NewValidationError("name", "This field may not be blank.")
	}
	return name, nil
}

// publish runs after the scope committed; a lost event never fails the write.
func (s *ItemService) publish(ctx context.Context, eventType domain.ItemEventType, schema string, item domain.Item) {
	if s.publisher == nil {
		return
	}

	event := domain.ItemEvent{Type: eventType, Schema: schema, Item: item, OccurredAt: s.now().UTC()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish item event",
			zap.String("schema", schema), zap.Int64("item_id", item.ID), zap.Error(err))
	}
}

// requestSchema returns the schema the resolver attached to ctx. An empty
// result makes WithTenantScope fail with tenant.ErrEmptySchema.
func requestSchema(ctx context.Context) string {
	schema, _ := tenant.SchemaFromContext(ctx)
	return schema
}
