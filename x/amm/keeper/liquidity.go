package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/cascade-dex/cascade/x/amm/curve"
	"github.com/cascade-dex/cascade/x/amm/types"
)

// ProvideLiquidity deposits both assets into a pool and mints shares.
//
// The first deposit bootstraps the pool: it mints the integer square root of
// the deposit product, retains MinLiquidityLock of those shares permanently
// in TotalShares, and credits the remainder to the depositor. Follow-up
// deposits mint proportionally to the smaller side of the deposit ratio, so
// an unbalanced deposit donates the excess to the pool.
func (k Keeper) ProvideLiquidity(ctx context.Context, poolID uint64, amountA, amountB, minShares sdkmath.Int) (sdkmath.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if pool.Halted {
		return sdkmath.Int{}, types.ErrPoolHalted.Wrapf("pool %d", poolID)
	}
	if amountA.IsNil() || amountB.IsNil() || !amountA.IsPositive() || !amountB.IsPositive() {
		return sdkmath.Int{}, types.ErrInvalidAmount.Wrap("both deposit amounts must be positive")
	}
	if minShares.IsNil() || minShares.IsNegative() {
		return sdkmath.Int{}, types.ErrInvalidAmount.Wrap("min shares cannot be nil or negative")
	}

	params := k.GetParams(ctx)

	// Oracle accumulation runs on pre-deposit reserves.
	k.accumulatePoolPrices(ctx, &pool)

	var minted sdkmath.Int
	if pool.TotalShares.IsZero() {
		product, err := curve.SafeMul(amountA, amountB)
		if err != nil {
			return sdkmath.Int{}, err
		}
		bootstrap, err := curve.IntegerSqrt(product)
		if err != nil {
			return sdkmath.Int{}, err
		}
		if bootstrap.LTE(params.MinLiquidityLock) {
			return sdkmath.Int{}, types.ErrMinimumLiquidityNotMet.Wrapf(
				"initial shares %s do not exceed the liquidity lock %s", bootstrap, params.MinLiquidityLock)
		}
		minted = bootstrap.Sub(params.MinLiquidityLock)
		if minted.LT(params.MinInitialShares) {
			return sdkmath.Int{}, types.ErrMinimumLiquidityNotMet.Wrapf(
				"initial shares %s below the module floor %s", minted, params.MinInitialShares)
		}
		pool.TotalShares = bootstrap
	} else {
		if err := assertDepositRatio(params, pool, amountA, amountB); err != nil {
			return sdkmath.Int{}, err
		}
		sharesFromA, err := curve.SafeMulDiv(amountA, pool.TotalShares, pool.ReserveA)
		if err != nil {
			return sdkmath.Int{}, err
		}
		sharesFromB, err := curve.SafeMulDiv(amountB, pool.TotalShares, pool.ReserveB)
		if err != nil {
			return sdkmath.Int{}, err
		}
		minted = sdkmath.MinInt(sharesFromA, sharesFromB)
		if minted.IsZero() {
			return sdkmath.Int{}, types.ErrMinimumLiquidityNotMet.Wrap("deposit too small to mint any shares")
		}
		pool.TotalShares = pool.TotalShares.Add(minted)
	}
	if minted.LT(minShares) {
		return sdkmath.Int{}, types.ErrMinimumLiquidityNotMet.Wrapf(
			"minted shares %s below requested minimum %s", minted, minShares)
	}

	pool.ReserveA = pool.ReserveA.Add(amountA)
	pool.ReserveB = pool.ReserveB.Add(amountB)
	if err := pool.Validate(); err != nil {
		return sdkmath.Int{}, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return sdkmath.Int{}, err
	}

	if err := k.hooks.AfterLiquidityChanged(ctx, poolID, amountA, amountB, minted, true); err != nil {
		return sdkmath.Int{}, err
	}
	k.metrics.LiquidityChanged(true)
	k.logger.Info("liquidity provided",
		"event", types.EventTypeProvideLiquidity,
		types.AttributeKeyPoolID, poolID,
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		types.AttributeKeyShares, minted.String(),
	)
	return minted, nil
}

// WithdrawLiquidity burns shares and pays out both assets proportionally,
// rounded down. The liquidity lock can never be burned, so a pool that has
// been bootstrapped always retains a residual reserve.
func (k Keeper) WithdrawLiquidity(ctx context.Context, poolID uint64, shares sdkmath.Int) (amountA, amountB sdkmath.Int, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if shares.IsNil() || !shares.IsPositive() {
		return sdkmath.Int{}, sdkmath.Int{}, types.ErrInvalidAmount.Wrap("shares must be positive")
	}
	params := k.GetParams(ctx)
	redeemable := pool.TotalShares.Sub(params.MinLiquidityLock)
	if shares.GT(redeemable) {
		return sdkmath.Int{}, sdkmath.Int{}, types.ErrInsufficientShares.Wrapf(
			"requested %s, redeemable %s of %s total", shares, redeemable, pool.TotalShares)
	}

	k.accumulatePoolPrices(ctx, &pool)

	amountA, err = curve.SafeMulDiv(shares, pool.ReserveA, pool.TotalShares)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	amountB, err = curve.SafeMulDiv(shares, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	pool.ReserveA = pool.ReserveA.Sub(amountA)
	pool.ReserveB = pool.ReserveB.Sub(amountB)
	pool.TotalShares = pool.TotalShares.Sub(shares)
	if err := pool.Validate(); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	if err := k.hooks.AfterLiquidityChanged(ctx, poolID, amountA, amountB, shares, false); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	k.metrics.LiquidityChanged(false)
	k.logger.Info("liquidity withdrawn",
		"event", types.EventTypeWithdrawLiquidity,
		types.AttributeKeyPoolID, poolID,
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		types.AttributeKeyShares, shares.String(),
	)
	return amountA, amountB, nil
}

// SharesToAssets previews the proportional payout for burning shares,
// without touching state.
func (k Keeper) SharesToAssets(ctx context.Context, poolID uint64, shares sdkmath.Int) (amountA, amountB sdkmath.Int, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if shares.IsNil() || shares.IsNegative() {
		return sdkmath.Int{}, sdkmath.Int{}, types.ErrInvalidAmount.Wrap("shares cannot be nil or negative")
	}
	if pool.TotalShares.IsZero() {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), nil
	}
	amountA, err = curve.SafeMulDiv(shares, pool.ReserveA, pool.TotalShares)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	amountB, err = curve.SafeMulDiv(shares, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return amountA, amountB, nil
}

// assertDepositRatio bounds how far a follow-up deposit's ratio may deviate
// from the pool ratio. Cross-multiplied so no division is needed:
// a*Rb and b*Ra must agree within the configured tolerance both ways.
func assertDepositRatio(params types.Params, pool types.Pool, amountA, amountB sdkmath.Int) error {
	if params.DepositSlippageTolerance.IsZero() {
		return nil
	}
	left := sdkmath.LegacyNewDecFromInt(amountA.Mul(pool.ReserveB))
	right := sdkmath.LegacyNewDecFromInt(amountB.Mul(pool.ReserveA))
	oneMinusTol := sdkmath.LegacyOneDec().Sub(params.DepositSlippageTolerance)
	if left.Mul(oneMinusTol).GT(right) || right.Mul(oneMinusTol).GT(left) {
		return types.ErrMaxSlippageExceeded.Wrap("deposit ratio deviates beyond the slippage tolerance")
	}
	return nil
}
