package middleware

import (
	"context"

	shapemap "github.com/shapemap/shapemap"
)

// ctxKeyMapped is a typed context key for storing a mapped result.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyMapped[T any] struct{}

// ContextWithMapped attaches a mapped projection of T to the context.
func ContextWithMapped[T any](ctx context.Context, out map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyMapped[T]{}, out)
}

// MappedFromContext retrieves a mapped projection of T from context.
func MappedFromContext[T any](ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyMapped[T]{}).(map[string]any)
	return v, ok
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []shapemap.Issue) map[string]any {
	return map[string]any{"issues": issues}
}
