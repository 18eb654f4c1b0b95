package main

import (
	"context"
	"time"
)

// sysClock feeds wall-clock time to the keeper. On a chain this would be
// the block time; the simulator has no blocks.
type sysClock struct{}

func (sysClock) BlockTime(context.Context) time.Time {
	return time.Now().UTC()
}
