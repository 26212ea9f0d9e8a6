package graphql

import "context"

// requestIDKey is an unexported context key, the idiomatic way to stash
// per-request metadata on a context.Context without colliding with keys
// other packages might use.
type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id Execute generated for the in-flight request, or
// "" if called outside a resolver invoked by this package (spec.md §1.4 of
// the ambient stack: every request gets a uuid, available to resolvers
// that want to log or propagate it downstream).
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
