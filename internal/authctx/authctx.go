// Package authctx carries the authenticated identity through a request's
// context so that lower layers (and the logger) can see who is acting
// without threading the user through every call.
package authctx

import "context"

type ctxKey struct{}

// WithUsername returns a copy of ctx tagged with the authenticated username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxKey{}, username)
}

// Username extracts the authenticated username from ctx. Returns "" for
// unauthenticated requests.
func Username(ctx context.Context) string {
	username, _ := ctx.Value(ctxKey{}).(string)
	return username
}
