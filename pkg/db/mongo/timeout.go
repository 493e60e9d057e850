package mongo

import (
	"context"
	"time"
)

// WithTimeout bounds ctx by timeout unless it already expires sooner. Inside a
// transaction the session context is returned unchanged, since wrapping it
// would detach the operation from the session.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if InTransaction(ctx) {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}
