package sweeper

import (
	"context"
	"time"
)

// Job is one periodic maintenance task. Run returns how many orders it
// touched; a non-nil error means at least one order failed, not that the
// whole batch aborted.
type Job interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) (int, error)
}
