// Package ctxutil carries correlation IDs through a context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type (
	lookupIDKey  struct{}
	requestIDKey struct{}
)

// WithLookupID tags ctx with the ID of one search lookup.
func WithLookupID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, lookupIDKey{}, id)
}

// LookupIDFromCtx returns the lookup ID of ctx. ok is false when none is set
// or the stored ID is uuid.Nil.
func LookupIDFromCtx(ctx context.Context) (id uuid.UUID, ok bool) {
	id, _ = ctx.Value(lookupIDKey{}).(uuid.UUID)
	return id, id != uuid.Nil
}

// WithRequestID tags ctx with the ID of an HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the request ID of ctx, or "".
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
