package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const actorKey contextKey = "acting_user"

// ActingUser is the authenticated staff identity performing a request. It is
// resolved once by the auth middleware and passed explicitly into services;
// nothing below the handler layer reads it from ambient context.
type ActingUser struct {
	ID   uuid.UUID
	Role string
}

// WithActor returns a context carrying the acting user.
func WithActor(ctx context.Context, actor ActingUser) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext extracts the acting user set by the auth middleware.
func ActorFromContext(ctx context.Context) (ActingUser, bool) {
	actor, ok := ctx.Value(actorKey).(ActingUser)
	return actor, ok
}
