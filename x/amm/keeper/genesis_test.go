package keeper_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/cascade-dex/cascade/x/amm/types"
)

func TestGenesis_ExportImportRoundTrip(t *testing.T) {
	k, clock, ctx := newTestKeeper(t)

	poolID := setupXykPool(t, k, ctx, 1_000_000, 2_000_000, feeRate(30), sdkmath.LegacyNewDecWithPrec(5, 1))
	clock.advance(time.Minute)
	_, err := k.ExecuteSwap(ctx, poolID, swapRequest(10_000))
	require.NoError(t, err)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Pools, 1)
	require.NotEmpty(t, exported.ProtocolFees)

	k2, _, ctx2 := newTestKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	reExported, err := k2.ExportGenesis(ctx2)
	require.NoError(t, err)
	require.Equal(t, exported, reExported)

	// The rebuilt pair index still blocks duplicates.
	_, err = k2.CreatePool(ctx2, testController, uatom(), uusdc(),
		types.Curve{Kind: types.CurveConstantProduct}, feeRate(30), sdkmath.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrDuplicatePool)
}

func TestGenesis_RejectsInvalidState(t *testing.T) {
	k, _, ctx := newTestKeeper(t)

	state := types.DefaultGenesis()
	state.NextPoolId = 0
	require.Error(t, k.InitGenesis(ctx, *state))

	state = types.DefaultGenesis()
	state.Pools = []types.Pool{{Id: 5}}
	require.Error(t, k.InitGenesis(ctx, *state))

	state = types.DefaultGenesis()
	state.ProtocolFees = []types.ProtocolFee{{Denom: "uusdc", Amount: sdkmath.NewInt(-1)}}
	require.Error(t, k.InitGenesis(ctx, *state))
}

func TestGenesis_RejectsDuplicatePair(t *testing.T) {
	k, _, ctx := newTestKeeper(t)

	genesisPool := func(id uint64, a, b types.Asset) types.Pool {
		return types.Pool{
			Id:               id,
			AssetA:           a,
			AssetB:           b,
			ReserveA:         sdkmath.NewInt(1_000),
			ReserveB:         sdkmath.NewInt(1_000),
			TotalShares:      sdkmath.NewInt(1_000),
			Curve:            types.Curve{Kind: types.CurveConstantProduct},
			FeeRate:          sdkmath.LegacyZeroDec(),
			ProtocolFeeShare: sdkmath.LegacyZeroDec(),
			Controller:       testController,
			PriceCumulativeA: sdkmath.LegacyZeroDec(),
			PriceCumulativeB: sdkmath.LegacyZeroDec(),
			LastUpdateUnix:   1_700_000_000,
		}
	}

	// Same pair and curve twice, second in reversed orientation.
	state := types.DefaultGenesis()
	state.NextPoolId = 3
	state.Pools = []types.Pool{
		genesisPool(1, uatom(), uusdc()),
		genesisPool(2, uusdc(), uatom()),
	}
	require.ErrorIs(t, state.Validate(), types.ErrDuplicatePool)
	require.ErrorIs(t, k.InitGenesis(ctx, *state), types.ErrDuplicatePool)

	// A different curve kind on the same pair is a distinct pool.
	state.Pools[1] = genesisPool(2, uatom(), uusdc())
	state.Pools[1].Curve = types.Curve{Kind: types.CurveStableSwap, Amplification: 100}
	require.NoError(t, state.Validate())
}

func TestGenesis_Default(t *testing.T) {
	state := types.DefaultGenesis()
	require.NoError(t, state.Validate())
	require.Equal(t, types.DefaultParams(), state.Params)
	require.Equal(t, uint64(1), state.NextPoolId)
}
