package fcontext

import "context"

type key int

const requestIDKey key = iota

// WithRequestID stores the request id for retrieval further down the
// handler chain.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// RequestID returns the request id or an empty string.
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}
