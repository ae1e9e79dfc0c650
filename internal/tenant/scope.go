package tenant

import (
	"context"
	"errors"
)

// DefaultSchema is the partition data operations target while no scope is active.
const DefaultSchema = "public"

var ErrEmptySchema = errors.New("tenant schema name is required")

// Scoper runs data operations against a single tenant partition.
// Implementations must restore the previous scope once op returns, fails or panics.
type Scoper interface {
	WithTenantScope(ctx context.Context, schema string, op func(ctx context.Context) error) error
}

type scopeKey struct{}

type scope struct {
	schema string
	parent *scope
}

// Enter returns a child of ctx whose active partition is schema. ctx itself is
// left untouched, which is what makes leaving a scope automatic.
func Enter(ctx context.Context, schema string) (context.Context, error) {
	if schema == "" {
		return nil, ErrEmptySchema
	}

	parent, _ := ctx.Value(scopeKey{}).(*scope)
	return context.WithValue(ctx, scopeKey{}, &scope{schema: schema, parent: parent}), nil
}

// Run executes op with schema as the active partition.
func Run(ctx context.Context, schema string, op func(ctx context.Context) error) error {
	scoped, err := Enter(ctx, schema)
	if err != nil {
		return err
	}
	return op(scoped)
}

// ActiveSchema reports the partition targeted by data operations issued with ctx.
func ActiveSchema(ctx context.Context) string {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return s.schema
	}
	return DefaultSchema
}

// IsScoped reports whether ctx carries an explicitly opened scope.
func IsScoped(ctx context.Context) bool {
	_, ok := ctx.Value(scopeKey{}).(*scope)
	return ok
}

// Depth returns how many scopes are nested in ctx.
func Depth(ctx context.Context) int {
	depth := 0
	for s, _ := ctx.Value(scopeKey{}).(*scope); s != nil; s = s.parent {
		depth++
	}
	return depth
}
