package keeper_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/cascade-dex/cascade/x/amm/keeper"
	"github.com/cascade-dex/cascade/x/amm/types"
)

const (
	testAuthority  = "cascade1authority"
	testController = "cascade1controller"
)

type testClock struct {
	now time.Time
}

func (c *testClock) BlockTime(context.Context) time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestKeeper(t *testing.T) (*keeper.Keeper, *testClock, context.Context) {
	t.Helper()
	store := dbadapter.Store{DB: dbm.NewMemDB()}
	clock := &testClock{now: time.Unix(1_700_000_000, 0).UTC()}
	k := keeper.NewKeeper(store, clock, testAuthority, log.NewNopLogger())
	return k, clock, context.Background()
}

func uatom() types.Asset { return types.Asset{Denom: "uatom", Decimals: 6} }
func uusdc() types.Asset { return types.Asset{Denom: "uusdc", Decimals: 6} }

func feeRate(bps int64) sdkmath.LegacyDec {
	return sdkmath.LegacyNewDecWithPrec(bps, 4)
}

// setupXykPool creates a constant product pool and forces its reserves to
// the given values, sidestepping the bootstrap deposit so tests control the
// exact state they price against.
func setupXykPool(t *testing.T, k *keeper.Keeper, ctx context.Context, reserveA, reserveB int64, fee, protocolShare sdkmath.LegacyDec) uint64 {
	t.Helper()
	poolID, err := k.CreatePool(ctx, testController, uatom(), uusdc(), types.Curve{Kind: types.CurveConstantProduct}, fee, protocolShare)
	require.NoError(t, err)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	pool.ReserveA = sdkmath.NewInt(reserveA)
	pool.ReserveB = sdkmath.NewInt(reserveB)
	pool.TotalShares = sdkmath.NewInt(reserveA)
	require.NoError(t, k.SetPool(ctx, pool))
	return poolID
}

// wideSpread opts a request out of the default spread bound.
func wideSpread() *sdkmath.LegacyDec {
	d := sdkmath.LegacyNewDecWithPrec(5, 1)
	return &d
}

func TestKeeper_ParamsDefaultAndRoundTrip(t *testing.T) {
	k, _, ctx := newTestKeeper(t)

	require.Equal(t, types.DefaultParams(), k.GetParams(ctx))

	params := types.DefaultParams()
	params.MaxFeeRate = sdkmath.LegacyNewDecWithPrec(2, 1)
	require.NoError(t, k.SetParams(ctx, params))
	require.Equal(t, params, k.GetParams(ctx))

	params.MinLiquidityLock = sdkmath.ZeroInt()
	require.ErrorIs(t, k.SetParams(ctx, params), types.ErrInvalidParams)
}
