package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// accumulatePoolPrices advances the pool's cumulative price accumulators to
// the current block time using the pre-trade reserve ratio:
//
//	accumulator += spot price * elapsed seconds
//
// It must run before any reserve mutation so the elapsed interval is priced
// at the reserves that held during it. Zero elapsed time is a no-op; an
// empty pool has no spot price, so only the timestamp advances. The caller
// persists the mutated pool.
func (k Keeper) accumulatePoolPrices(ctx context.Context, pool *types.Pool) {
	now := k.blockTime(ctx)
	elapsed := now - pool.LastUpdateUnix
	if elapsed <= 0 {
		return
	}
	if !pool.IsEmpty() {
		priceA := sdkmath.LegacyNewDecFromInt(pool.ReserveB).QuoInt(pool.ReserveA)
		priceB := sdkmath.LegacyNewDecFromInt(pool.ReserveA).QuoInt(pool.ReserveB)
		pool.PriceCumulativeA = pool.PriceCumulativeA.Add(priceA.MulInt64(elapsed))
		pool.PriceCumulativeB = pool.PriceCumulativeB.Add(priceB.MulInt64(elapsed))
		k.metrics.OracleUpdated()
	}
	pool.LastUpdateUnix = now
}

// CumulativePrices is the oracle reading for one pool. PriceCumulativeA
// accumulates the price of asset A quoted in B, PriceCumulativeB the
// inverse. A TWAP over a window is the difference of two readings divided
// by the elapsed seconds.
type CumulativePrices struct {
	PoolID           uint64
	PriceCumulativeA sdkmath.LegacyDec
	PriceCumulativeB sdkmath.LegacyDec
	LastUpdateUnix   int64
}

// QueryCumulativePrices returns the pool's accumulators advanced virtually
// to the current block time, without writing state. Two readings taken at
// different times therefore bracket the interval exactly even if no trade
// touched the pool in between.
func (k Keeper) QueryCumulativePrices(ctx context.Context, poolID uint64) (CumulativePrices, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return CumulativePrices{}, err
	}
	k.accumulatePoolPrices(ctx, &pool)
	return CumulativePrices{
		PoolID:           poolID,
		PriceCumulativeA: pool.PriceCumulativeA,
		PriceCumulativeB: pool.PriceCumulativeB,
		LastUpdateUnix:   pool.LastUpdateUnix,
	}, nil
}

// GetSpotPrice returns the instantaneous ask-per-offer price from the
// current reserves.
func (k Keeper) GetSpotPrice(ctx context.Context, poolID uint64, offerDenom, askDenom string) (sdkmath.LegacyDec, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdkmath.LegacyDec{}, err
	}
	offerReserve, askReserve, _, _, _, err := pool.OrientedReserves(offerDenom, askDenom)
	if err != nil {
		return sdkmath.LegacyDec{}, err
	}
	if offerReserve.IsZero() {
		return sdkmath.LegacyDec{}, types.ErrEmptyPool.Wrapf("pool %d has no %s reserve", poolID, offerDenom)
	}
	return sdkmath.LegacyNewDecFromInt(askReserve).QuoInt(offerReserve), nil
}
