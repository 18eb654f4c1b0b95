package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/cascade-dex/cascade/x/amm/types"
)

func TestCreatePool_Valid(t *testing.T) {
	k, _, ctx := newTestKeeper(t)

	poolID, err := k.CreatePool(ctx, testController, uusdc(), uatom(), types.Curve{Kind: types.CurveConstantProduct}, feeRate(30), sdkmath.LegacyZeroDec())
	require.NoError(t, err)
	require.Equal(t, uint64(1), poolID)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	// Canonical ordering puts the smaller denom first regardless of call order.
	require.Equal(t, "uatom", pool.AssetA.Denom)
	require.Equal(t, "uusdc", pool.AssetB.Denom)
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())
	require.True(t, pool.TotalShares.IsZero())
	require.False(t, pool.Halted)
}

func TestCreatePool_DuplicatePair(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	xyk := types.Curve{Kind: types.CurveConstantProduct}

	_, err := k.CreatePool(ctx, testController, uatom(), uusdc(), xyk, feeRate(30), sdkmath.LegacyZeroDec())
	require.NoError(t, err)

	// Same pair in either orientation is rejected for the same curve kind.
	_, err = k.CreatePool(ctx, testController, uusdc(), uatom(), xyk, feeRate(30), sdkmath.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrDuplicatePool)

	// A different curve kind on the same pair is a distinct pool.
	stable := types.Curve{Kind: types.CurveStableSwap, Amplification: 100}
	poolID, err := k.CreatePool(ctx, testController, uatom(), uusdc(), stable, feeRate(30), sdkmath.LegacyZeroDec())
	require.NoError(t, err)
	require.Equal(t, uint64(2), poolID)
}

func TestCreatePool_SlashDenomsStayDistinct(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	xyk := types.Curve{Kind: types.CurveConstantProduct}
	asset := func(denom string) types.Asset { return types.Asset{Denom: denom, Decimals: 6} }

	// Both pairs concatenate to "ibc/uatom/uusdc"; the index must keep
	// them apart.
	_, err := k.CreatePool(ctx, testController, asset("ibc/uatom"), asset("uusdc"), xyk, feeRate(30), sdkmath.LegacyZeroDec())
	require.NoError(t, err)
	_, err = k.CreatePool(ctx, testController, asset("ibc"), asset("uatom/uusdc"), xyk, feeRate(30), sdkmath.LegacyZeroDec())
	require.NoError(t, err)

	// The genuine duplicate is still caught.
	_, err = k.CreatePool(ctx, testController, asset("uusdc"), asset("ibc/uatom"), xyk, feeRate(30), sdkmath.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrDuplicatePool)
}

func TestCreatePool_Validation(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	xyk := types.Curve{Kind: types.CurveConstantProduct}

	tests := []struct {
		name string
		run  func() error
	}{
		{"same denom", func() error {
			_, err := k.CreatePool(ctx, testController, uatom(), uatom(), xyk, feeRate(30), sdkmath.LegacyZeroDec())
			return err
		}},
		{"fee above cap", func() error {
			_, err := k.CreatePool(ctx, testController, uatom(), uusdc(), xyk, sdkmath.LegacyNewDecWithPrec(2, 1), sdkmath.LegacyZeroDec())
			return err
		}},
		{"empty controller", func() error {
			_, err := k.CreatePool(ctx, "", uatom(), uusdc(), xyk, feeRate(30), sdkmath.LegacyZeroDec())
			return err
		}},
		{"stableswap without amplification", func() error {
			_, err := k.CreatePool(ctx, testController, uatom(), uusdc(), types.Curve{Kind: types.CurveStableSwap}, feeRate(30), sdkmath.LegacyZeroDec())
			return err
		}},
		{"xyk with amplification", func() error {
			_, err := k.CreatePool(ctx, testController, uatom(), uusdc(), types.Curve{Kind: types.CurveConstantProduct, Amplification: 5}, feeRate(30), sdkmath.LegacyZeroDec())
			return err
		}},
		{"protocol share above one", func() error {
			_, err := k.CreatePool(ctx, testController, uatom(), uusdc(), xyk, feeRate(30), sdkmath.LegacyNewDec(2))
			return err
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.run(), types.ErrInvalidParams)
		})
	}
}

func TestGetPool_NotFound(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	_, err := k.GetPool(ctx, 42)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestUpdatePoolFees(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	poolID := setupXykPool(t, k, ctx, 1000, 1000, feeRate(30), sdkmath.LegacyZeroDec())

	err := k.UpdatePoolFees(ctx, "someone-else", poolID, feeRate(50), sdkmath.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrUnauthorized)

	err = k.UpdatePoolFees(ctx, testController, poolID, feeRate(50), sdkmath.LegacyNewDecWithPrec(5, 1))
	require.NoError(t, err)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, feeRate(50), pool.FeeRate)
	require.Equal(t, sdkmath.LegacyNewDecWithPrec(5, 1), pool.ProtocolFeeShare)
}

func TestResumePool(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	poolID := setupXykPool(t, k, ctx, 1000, 1000, feeRate(30), sdkmath.LegacyZeroDec())

	// Resuming a healthy pool is an error.
	require.ErrorIs(t, k.ResumePool(ctx, testAuthority, poolID), types.ErrInvalidPoolState)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	pool.Halted = true
	require.NoError(t, k.SetPool(ctx, pool))

	require.ErrorIs(t, k.ResumePool(ctx, testController, poolID), types.ErrUnauthorized)

	require.NoError(t, k.ResumePool(ctx, testAuthority, poolID))
	halted, err := k.IsPoolHalted(ctx, poolID)
	require.NoError(t, err)
	require.False(t, halted)
}

func TestGetAllPools(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	require.Equal(t, uint64(1), k.GetNextPoolID(ctx))

	setupXykPool(t, k, ctx, 1000, 1000, feeRate(30), sdkmath.LegacyZeroDec())
	_, err := k.CreatePool(ctx, testController,
		types.Asset{Denom: "uosmo", Decimals: 6}, uusdc(),
		types.Curve{Kind: types.CurveStableSwap, Amplification: 50}, feeRate(10), sdkmath.LegacyZeroDec())
	require.NoError(t, err)

	pools, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 2)
	require.Equal(t, uint64(1), pools[0].Id)
	require.Equal(t, uint64(2), pools[1].Id)
	require.Equal(t, uint64(3), k.GetNextPoolID(ctx))
}
