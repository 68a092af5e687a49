// Package ctxutil carries request-scoped identity through context.Context.
// A context without a user ID belongs to the guest.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type (
	userIDKey    struct{}
	requestIDKey struct{}
)

// WithUserID stores the signed-in user's ID in ctx.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromCtx returns the signed-in user's ID. ok is false for the guest,
// including when uuid.Nil was stored explicitly.
func UserIDFromCtx(ctx context.Context) (id uuid.UUID, ok bool) {
	id, _ = ctx.Value(userIDKey{}).(uuid.UUID)
	return id, id != uuid.Nil
}

// UserOrGuest returns the user ID, or uuid.Nil for the guest.
func UserOrGuest(ctx context.Context) uuid.UUID {
	id, _ := UserIDFromCtx(ctx)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogAttrs returns the identifiers of ctx as log attributes. Missing values
// are left out; the guest has no user_id.
func LogAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if id := RequestIDFromCtx(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if id, ok := UserIDFromCtx(ctx); ok {
		attrs = append(attrs, slog.String("user_id", id.String()))
	}
	return attrs
}
