package auth

import "context"

type contextKey string

const actorKey contextKey = "actor"

// WithActor attaches the acting administrator's username to the context.
// Operations log the actor from here instead of a compile-time constant.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey, username)
}

// ActorFromContext returns the acting administrator's username, or
// "anonymous" when the request carries no identity (public form).
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey).(string); ok && v != "" {
		return v
	}
	return "anonymous"
}
