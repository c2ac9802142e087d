package util

import "context"

type actorKey struct{}

// WithActor stores the authenticated caller's claims in the request
// context so services can enforce ownership without seeing gin.
func WithActor(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, actorKey{}, claims)
}

// ActorFromContext returns the claims stored by WithActor, nil when the
// request carried none.
func ActorFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(actorKey{}).(*Claims)
	return claims
}
