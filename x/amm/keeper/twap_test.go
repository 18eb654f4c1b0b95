package keeper_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/cascade-dex/cascade/x/amm/types"
)

func TestCumulativePrices_AccrueOnSwap(t *testing.T) {
	k, clock, ctx := newTestKeeper(t)
	poolID := setupXykPool(t, k, ctx, 1000, 2000, feeRate(0), sdkmath.LegacyZeroDec())

	clock.advance(10 * time.Second)
	_, err := k.ExecuteSwap(ctx, poolID, swapRequest(10))
	require.NoError(t, err)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	// Pre-trade prices: A at 2000/1000 = 2, B at 1000/2000 = 0.5, over 10s.
	require.Equal(t, sdkmath.LegacyNewDec(20), pool.PriceCumulativeA)
	require.Equal(t, sdkmath.LegacyNewDec(5), pool.PriceCumulativeB)
	require.Equal(t, clock.now.Unix(), pool.LastUpdateUnix)
}

func TestCumulativePrices_SameTimestampNoOp(t *testing.T) {
	k, clock, ctx := newTestKeeper(t)
	poolID := setupXykPool(t, k, ctx, 1_000_000, 1_000_000, feeRate(0), sdkmath.LegacyZeroDec())

	clock.advance(5 * time.Second)
	_, err := k.ExecuteSwap(ctx, poolID, swapRequest(100))
	require.NoError(t, err)

	first, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	// Second swap in the same block accumulates nothing further.
	_, err = k.ExecuteSwap(ctx, poolID, swapRequest(100))
	require.NoError(t, err)

	second, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, first.PriceCumulativeA, second.PriceCumulativeA)
	require.Equal(t, first.PriceCumulativeB, second.PriceCumulativeB)
}

func TestCumulativePrices_MonotonicAcrossOperations(t *testing.T) {
	k, clock, ctx := newTestKeeper(t)
	poolID := setupXykPool(t, k, ctx, 1_000_000, 1_000_000, feeRate(30), sdkmath.LegacyZeroDec())

	prevA := sdkmath.LegacyZeroDec()
	prevB := sdkmath.LegacyZeroDec()
	for i := 0; i < 5; i++ {
		clock.advance(7 * time.Second)
		_, err := k.ExecuteSwap(ctx, poolID, swapRequest(1000))
		require.NoError(t, err)

		pool, err := k.GetPool(ctx, poolID)
		require.NoError(t, err)
		require.True(t, pool.PriceCumulativeA.GT(prevA), "accumulator A did not grow on step %d", i)
		require.True(t, pool.PriceCumulativeB.GT(prevB), "accumulator B did not grow on step %d", i)
		prevA = pool.PriceCumulativeA
		prevB = pool.PriceCumulativeB
	}
}

func TestQueryCumulativePrices_VirtualAdvance(t *testing.T) {
	k, clock, ctx := newTestKeeper(t)
	poolID := setupXykPool(t, k, ctx, 1000, 2000, feeRate(0), sdkmath.LegacyZeroDec())

	clock.advance(30 * time.Second)
	reading, err := k.QueryCumulativePrices(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, sdkmath.LegacyNewDec(60), reading.PriceCumulativeA)
	require.Equal(t, sdkmath.LegacyNewDec(15), reading.PriceCumulativeB)
	require.Equal(t, clock.now.Unix(), reading.LastUpdateUnix)

	// The query did not persist the advance.
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.True(t, pool.PriceCumulativeA.IsZero())
}

func TestGetSpotPrice(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	poolID := setupXykPool(t, k, ctx, 1000, 2000, feeRate(0), sdkmath.LegacyZeroDec())

	price, err := k.GetSpotPrice(ctx, poolID, "uatom", "uusdc")
	require.NoError(t, err)
	require.Equal(t, sdkmath.LegacyNewDec(2), price)

	inverse, err := k.GetSpotPrice(ctx, poolID, "uusdc", "uatom")
	require.NoError(t, err)
	require.Equal(t, sdkmath.LegacyNewDecWithPrec(5, 1), inverse)

	_, err = k.GetSpotPrice(ctx, poolID, "uatom", "ubtc")
	require.ErrorIs(t, err, types.ErrAssetMismatch)
}
