// Package context carries request and conversation identifiers through a call chain
package context

import (
	stdctx "context"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey int

const (
	// RequestIDKey is the context key for request IDs
	RequestIDKey contextKey = iota
	// ThreadIDKey is the context key for conversation thread IDs
	ThreadIDKey
)

// DefaultThreadID is used when a caller does not name a conversation
const DefaultThreadID = "default"

// NewRequestID generates a new unique request ID
func NewRequestID() string {
	return uuid.New().String()
}

// WithRequestID adds a request ID to the context
func WithRequestID(parent stdctx.Context, requestID string) stdctx.Context {
	return stdctx.WithValue(parent, RequestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context
func RequestIDFromContext(ctx stdctx.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// EnsureRequestID returns ctx unchanged when it already has a request ID,
// otherwise a child context with a fresh one.
func EnsureRequestID(ctx stdctx.Context) stdctx.Context {
	if RequestIDFromContext(ctx) != "" {
		return ctx
	}
	return WithRequestID(ctx, NewRequestID())
}

// WithThreadID tags the context with a conversation thread
func WithThreadID(parent stdctx.Context, threadID string) stdctx.Context {
	return stdctx.WithValue(parent, ThreadIDKey, threadID)
}

// ThreadIDFromContext returns the thread ID or DefaultThreadID
func ThreadIDFromContext(ctx stdctx.Context) string {
	if threadID, ok := ctx.Value(ThreadIDKey).(string); ok && threadID != "" {
		return threadID
	}
	return DefaultThreadID
}
