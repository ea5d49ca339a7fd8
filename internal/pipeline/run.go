package pipeline

import (
	"context"
	"time"
)

// RunInfo identifies one pipeline run.
type RunInfo struct {
	ID        string
	StartedAt time.Time
}

type runInfoKey struct{}

// WithRunInfo attaches the run identity to ctx so loaders can stamp it onto
// what they publish.
func WithRunInfo(ctx context.Context, info RunInfo) context.Context {
	return context.WithValue(ctx, runInfoKey{}, info)
}

// RunInfoFromContext returns the run identity carried by ctx, if any.
func RunInfoFromContext(ctx context.Context) (RunInfo, bool) {
	info, ok := ctx.Value(runInfoKey{}).(RunInfo)
	return info, ok
}
