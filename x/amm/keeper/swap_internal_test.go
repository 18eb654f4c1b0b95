package keeper

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/cascade-dex/cascade/x/amm/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) BlockTime(context.Context) time.Time { return c.now }

// A convergence failure raised after ExecuteSwap has mutated its local pool
// copy must halt the pool as stored, never persist the in-flight reserves.
func TestFailPricing_HaltsStoredRecordOnly(t *testing.T) {
	k := NewKeeper(dbadapter.Store{DB: dbm.NewMemDB()}, fixedClock{now: time.Unix(1_700_000_000, 0).UTC()}, "cascade1authority", log.NewNopLogger())
	ctx := context.Background()

	pool := types.Pool{
		Id:               1,
		AssetA:           types.Asset{Denom: "uatom", Decimals: 6},
		AssetB:           types.Asset{Denom: "uusdc", Decimals: 6},
		ReserveA:         sdkmath.NewInt(1_000_000),
		ReserveB:         sdkmath.NewInt(1_000_000),
		TotalShares:      sdkmath.NewInt(1_000_000),
		Curve:            types.Curve{Kind: types.CurveConstantProduct},
		FeeRate:          sdkmath.LegacyZeroDec(),
		ProtocolFeeShare: sdkmath.LegacyZeroDec(),
		Controller:       "cascade1controller",
		PriceCumulativeA: sdkmath.LegacyZeroDec(),
		PriceCumulativeB: sdkmath.LegacyZeroDec(),
		LastUpdateUnix:   1_700_000_000,
	}
	require.NoError(t, k.SetPool(ctx, pool))

	// The local state ExecuteSwap holds right before its final write:
	// accumulator advanced, offer added, payout subtracted.
	inFlight := pool
	inFlight.ReserveA = sdkmath.NewInt(1_010_000)
	inFlight.ReserveB = sdkmath.NewInt(990_010)
	inFlight.PriceCumulativeA = sdkmath.LegacyNewDec(60)
	inFlight.LastUpdateUnix = 1_700_000_060

	// Non-convergence pricing errors pass through without halting.
	liqErr := types.ErrInsufficientLiquidity.Wrap("swap would drain the ask reserve")
	require.ErrorIs(t, k.failPricing(ctx, inFlight.Id, liqErr), types.ErrInsufficientLiquidity)
	stored, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.False(t, stored.Halted)

	convErr := types.ErrConvergenceFailure.Wrap("y solver exhausted its iteration budget")
	require.ErrorIs(t, k.failPricing(ctx, inFlight.Id, convErr), types.ErrConvergenceFailure)

	stored, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.True(t, stored.Halted)
	require.Equal(t, pool.ReserveA, stored.ReserveA)
	require.Equal(t, pool.ReserveB, stored.ReserveB)
	require.Equal(t, pool.PriceCumulativeA, stored.PriceCumulativeA)
	require.Equal(t, pool.LastUpdateUnix, stored.LastUpdateUnix)
}
