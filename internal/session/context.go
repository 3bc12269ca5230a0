// ABOUTME: Request-context propagation of the signed-in user
// ABOUTME: Used by handlers and the audit recorder

package session

import "context"

type userContextKey struct{}

// WithUser returns a context carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// FromContext returns the user stored in ctx.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userContextKey{}).(User)
	return u, ok
}

// Actor returns the email of the user in ctx, or "anonymous".
func Actor(ctx context.Context) string {
	if u, ok := FromContext(ctx); ok && u.Email != "" {
		return u.Email
	}
	return "anonymous"
}
