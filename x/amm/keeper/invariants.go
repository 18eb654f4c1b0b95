package keeper

import (
	"context"

	"github.com/cascade-dex/cascade/x/amm/curve"
	"github.com/cascade-dex/cascade/x/amm/types"
)

// CheckInvariants walks every pool record and verifies the state-level
// invariants: structural validity, solvable curve invariant, and that
// halted pools are the only ones allowed to carry a broken solver state.
// Intended for genesis import, upgrades, and test harnesses.
func (k Keeper) CheckInvariants(ctx context.Context) error {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return err
	}
	for _, pool := range pools {
		if err := pool.Validate(); err != nil {
			return types.ErrInvalidPoolState.Wrapf("pool %d: %v", pool.Id, err)
		}
		if pool.IsEmpty() || pool.Halted {
			continue
		}
		if _, err := curve.InvariantValue(pool.Curve, pool.ReserveA, pool.ReserveB, pool.AssetA.Decimals, pool.AssetB.Decimals); err != nil {
			return types.ErrInvalidPoolState.Wrapf("pool %d invariant is not solvable: %v", pool.Id, err)
		}
	}
	return nil
}
