package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
)

func TestRepository_PartitionsAreIsolated(t *testing.T) {
	repo := NewRepository(NewStore("acme", "globex"))
	ctx := context.Background()

	var created domain.Item
	err := repo.WithTenantScope(ctx, "acme", func(ctx context.Context) error {
		created = domain.Item{Name: "Widget"}
		return repo.Item().Create(ctx, &created)
	})
	require.NoError(t, err)

	err = repo.WithTenantScope(ctx, "globex", func(ctx context.Context) error {
		_, err := repo.Item().GetByID(ctx, created.ID)
		return err
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.WithTenantScope(ctx, "acme", func(ctx context.Context) error {
		item, err := repo.Item().GetByID(ctx, created.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, "Widget", item.Name)
		return nil
	})
	assert.NoError(t, err)
}

func TestRepository_UnknownSchemaFailsOnAccess(t *testing.T) {
	repo := NewRepository(NewStore("acme"))

	entered := false
	err := repo.WithTenantScope(context.Background(), "ghost", func(ctx context.Context) error {
		entered = true
		_, err := repo.Item().List(ctx)
		return err
	})

	assert.True(t, entered)
	assert.ErrorIs(t, err, repository.ErrUnknownSchema)
}

func TestRepository_OutsideScope(t *testing.T) {
	repo := NewRepository(NewStore("public"))

	_, err := repo.Item().List(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotScoped)
}

func TestRepository_UpdateMissingItem(t *testing.T) {
	repo := NewRepository(NewStore("acme"))

	err := repo.WithTenantScope(context.Background(), "acme", func(ctx context.Context) error {
		return repo.Item().Update(ctx, &domain.Item{ID: 42, Name: "x"})
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_SeedUserRejectsDuplicate(t *testing.T) {
	store := NewStore("acme")

	u, err := store.SeedUser("acme", domain.User{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = store.SeedUser("acme", domain.User{Username: "alice"})
	assert.Error(t, err)

	_, err = store.SeedUser("ghost", domain.User{Username: "alice"})
	assert.ErrorIs(t, err, repository.ErrUnknownSchema)
}

func TestRepository_ConcurrentScopes(t *testing.T) {
	schemas := []string{"t0", "t1", "t2", "t3"}
	repo := NewRepository(NewStore(schemas...))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			schema := schemas[i%len(schemas)]
			err := repo.WithTenantScope(context.Background(), schema, func(ctx context.Context) error {
				return repo.Item().Create(ctx, &domain.Item{Name: fmt.Sprintf("%s-%d", schema, i)})
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, schema := range schemas {
		err := repo.WithTenantScope(context.Background(), schema, func(ctx context.Context) error {
			items, err := repo.Item().List(ctx)
			require.NoError(t, err)
			assert.Len(t, items, 25)
			for _, item := range items {
				assert.Regexp(t, "^"+schema+"-", item.Name)
			}
			return nil
		})
		require.NoError(t, err)
	}
}
