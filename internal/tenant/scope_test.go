package tenant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ActivatesSchema(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultSchema, ActiveSchema(ctx))
	assert.False(t, IsScoped(ctx))

	err := Run(ctx, "acme", func(ctx context.Context) error {
		assert.Equal(t, "acme", ActiveSchema(ctx))
		assert.True(t, IsScoped(ctx))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultSchema, ActiveSchema(ctx))
}

func TestRun_RestoresAfterError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("write failed")

	err := Run(ctx, "acme", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, DefaultSchema, ActiveSchema(ctx))
}

func TestRun_RestoresAfterPanic(t *testing.T) {
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = Run(ctx, "acme", func(context.Context) error { panic("boom") })
	})
	assert.Equal(t, DefaultSchema, ActiveSchema(ctx))
}

func TestRun_NestedScopesRestoreOuter(t *testing.T) {
	err := Run(context.Background(), "acme", func(outer context.Context) error {
		err := Run(outer, "globex", func(inner context.Context) error {
			assert.Equal(t, "globex", ActiveSchema(inner))
			assert.Equal(t, 2, Depth(inner))
			return errors.New("inner failed")
		})
		assert.Error(t, err)
		assert.Equal(t, "acme", ActiveSchema(outer))
		assert.Equal(t, 1, Depth(outer))
		return nil
	})
	require.NoError(t, err)
}

func TestRun_EmptySchema(t *testing.T) {
	called := false
	err := Run(context.Background(), "", func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrEmptySchema)
	assert.False(t, called)
}

func TestRun_ConcurrentScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	schemas := []string{"acme", "globex", "initech", "umbrella"}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		schema := schemas[i%len(schemas)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Run(ctx, schema, func(ctx context.Context) error {
				for j := 0; j < 50; j++ {
					if got := ActiveSchema(ctx); got != schema {
						t.Errorf("scope leaked: want %s, got %s", schema, got)
						return nil
					}
				}
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, DefaultSchema, ActiveSchema(ctx))
}
