package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// AmmHooks defines the interface for AMM module callbacks.
type AmmHooks interface {
	// AfterSwap is called after a successful swap operation.
	AfterSwap(ctx context.Context, poolID uint64, offerDenom, askDenom string, offerAmount, returnAmount sdkmath.Int) error

	// AfterPoolCreated is called after a new liquidity pool is created.
	AfterPoolCreated(ctx context.Context, poolID uint64, denomA, denomB string, controller string) error

	// AfterLiquidityChanged is called when liquidity is added or removed.
	AfterLiquidityChanged(ctx context.Context, poolID uint64, deltaA, deltaB, deltaShares sdkmath.Int, isAdd bool) error

	// OnPoolHalted is called when a pool is halted after a pricing failure.
	// Dependent modules should pause operations against the pool.
	OnPoolHalted(ctx context.Context, poolID uint64, reason string) error
}

// MultiAmmHooks combines multiple AMM hooks into a single hook that calls all of them.
type MultiAmmHooks []AmmHooks

// NewMultiAmmHooks creates a new MultiAmmHooks from a list of hooks.
func NewMultiAmmHooks(hooks ...AmmHooks) MultiAmmHooks {
	return hooks
}

// AfterSwap calls AfterSwap on all registered hooks.
func (h MultiAmmHooks) AfterSwap(ctx context.Context, poolID uint64, offerDenom, askDenom string, offerAmount, returnAmount sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterSwap(ctx, poolID, offerDenom, askDenom, offerAmount, returnAmount); err != nil {
			return err
		}
	}
	return nil
}

// AfterPoolCreated calls AfterPoolCreated on all registered hooks.
func (h MultiAmmHooks) AfterPoolCreated(ctx context.Context, poolID uint64, denomA, denomB string, controller string) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterPoolCreated(ctx, poolID, denomA, denomB, controller); err != nil {
			return err
		}
	}
	return nil
}

// AfterLiquidityChanged calls AfterLiquidityChanged on all registered hooks.
func (h MultiAmmHooks) AfterLiquidityChanged(ctx context.Context, poolID uint64, deltaA, deltaB, deltaShares sdkmath.Int, isAdd bool) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterLiquidityChanged(ctx, poolID, deltaA, deltaB, deltaShares, isAdd); err != nil {
			return err
		}
	}
	return nil
}

// OnPoolHalted calls OnPoolHalted on all registered hooks.
func (h MultiAmmHooks) OnPoolHalted(ctx context.Context, poolID uint64, reason string) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.OnPoolHalted(ctx, poolID, reason); err != nil {
			return err
		}
	}
	return nil
}
