package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cascade-dex/cascade/x/amm/keeper"
	"github.com/cascade-dex/cascade/x/amm/types"
)

func TestSplitFee_Exact(t *testing.T) {
	tests := []struct {
		name          string
		gross         int64
		feeRate       sdkmath.LegacyDec
		protocolShare sdkmath.LegacyDec
		commission    int64
		protocol      int64
		lp            int64
	}{
		{"thirty bps half split", 10_000, feeRate(30), sdkmath.LegacyNewDecWithPrec(5, 1), 30, 15, 15},
		{"residual goes to lps", 9_901, feeRate(30), sdkmath.LegacyNewDecWithPrec(5, 1), 29, 14, 15},
		{"zero fee", 10_000, sdkmath.LegacyZeroDec(), sdkmath.LegacyNewDecWithPrec(5, 1), 0, 0, 0},
		{"all to protocol", 10_000, feeRate(100), sdkmath.LegacyOneDec(), 100, 100, 0},
		{"all to lps", 10_000, feeRate(100), sdkmath.LegacyZeroDec(), 100, 0, 100},
		{"commission truncates to zero", 90, feeRate(30), sdkmath.LegacyOneDec(), 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			commission, protocol, lp := keeper.SplitFee(sdkmath.NewInt(tc.gross), tc.feeRate, tc.protocolShare)
			require.Equal(t, sdkmath.NewInt(tc.commission), commission)
			require.Equal(t, sdkmath.NewInt(tc.protocol), protocol)
			require.Equal(t, sdkmath.NewInt(tc.lp), lp)
		})
	}
}

func TestSplitFee_ConservationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gross := sdkmath.NewInt(rapid.Int64Range(0, 1_000_000_000_000).Draw(t, "gross"))
		feeBps := rapid.Int64Range(0, 1000).Draw(t, "feeBps")
		shareBps := rapid.Int64Range(0, 10_000).Draw(t, "shareBps")

		rate := sdkmath.LegacyNewDecWithPrec(feeBps, 4)
		share := sdkmath.LegacyNewDecWithPrec(shareBps, 4)

		commission, protocol, lp := keeper.SplitFee(gross, rate, share)
		require.Equal(t, commission, protocol.Add(lp), "fee split must conserve the commission exactly")
		require.True(t, commission.LTE(gross))
		require.False(t, protocol.IsNegative())
		require.False(t, lp.IsNegative())
	})
}

func TestProtocolFees_AccumulateAndWithdraw(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	half := sdkmath.LegacyNewDecWithPrec(5, 1)
	poolID := setupXykPool(t, k, ctx, 1_000_000, 1_000_000, feeRate(100), half)

	var expected = sdkmath.ZeroInt()
	for i := 0; i < 3; i++ {
		res, err := k.ExecuteSwap(ctx, poolID, swapRequest(10_000))
		require.NoError(t, err)
		expected = expected.Add(res.ProtocolFeeAmount)
	}
	require.True(t, expected.IsPositive())

	fees, err := k.GetProtocolFees(ctx)
	require.NoError(t, err)
	require.Len(t, fees, 1)
	require.Equal(t, types.ProtocolFee{Denom: "uusdc", Amount: expected}, fees[0])

	_, err = k.WithdrawProtocolFees(ctx, testController, "uusdc")
	require.ErrorIs(t, err, types.ErrUnauthorized)

	withdrawn, err := k.WithdrawProtocolFees(ctx, testAuthority, "uusdc")
	require.NoError(t, err)
	require.Equal(t, expected, withdrawn)

	remaining, err := k.GetProtocolFee(ctx, "uusdc")
	require.NoError(t, err)
	require.True(t, remaining.IsZero())
}

func TestFeeConservation_AcrossSwap(t *testing.T) {
	k, _, ctx := newTestKeeper(t)
	half := sdkmath.LegacyNewDecWithPrec(5, 1)
	poolID := setupXykPool(t, k, ctx, 1_000_000, 1_000_000, feeRate(100), half)

	before, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)

	res, err := k.ExecuteSwap(ctx, poolID, swapRequest(50_000))
	require.NoError(t, err)

	after, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	treasury, err := k.GetProtocolFee(ctx, "uusdc")
	require.NoError(t, err)

	// Every unit of the ask reserve is accounted for: trader return,
	// treasury, and what stayed in the pool.
	gross := res.ReturnAmount.Add(res.CommissionAmount)
	require.Equal(t, before.ReserveB,
		after.ReserveB.Add(res.ReturnAmount).Add(treasury))
	require.Equal(t, gross.Sub(res.CommissionAmount), res.ReturnAmount)
	require.Equal(t, res.CommissionAmount, res.LpFeeAmount.Add(res.ProtocolFeeAmount))
}
