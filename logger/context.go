package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger attaches l to ctx; handlers read it back with FromContext.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger the request middleware attached.
// Code running outside a request gets a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithSession tags the context logger with a chat session id so every line
// logged for that visitor's conversation can be grepped together.
func WithSession(ctx context.Context, sessionID string) (context.Context, *zap.Logger) {
	l := FromContext(ctx).With(zap.String("session_id", sessionID))
	return ContextWithLogger(ctx, l), l
}
