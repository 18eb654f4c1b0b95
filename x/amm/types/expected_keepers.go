package types

import (
	"context"
	"time"
)

// BlockClock supplies the current block time. The hosting runtime implements
// it; the oracle accumulators are driven by its readings, so it must be
// monotonic across calls within the module's lifetime.
type BlockClock interface {
	BlockTime(ctx context.Context) time.Time
}
