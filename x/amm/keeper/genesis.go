package keeper

import (
	"context"
	"encoding/binary"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// InitGenesis imports the module state. The pair index is rebuilt from the
// pool records rather than trusted from the export.
func (k Keeper) InitGenesis(ctx context.Context, state types.GenesisState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, state.Params); err != nil {
		return err
	}
	k.SetNextPoolID(ctx, state.NextPoolId)

	store := k.getStore(ctx)
	for _, pool := range state.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, pool.Id)
		store.Set(PoolByPairKey(pool.AssetA.Denom, pool.AssetB.Denom, int32(pool.Curve.Kind)), idBytes)
	}
	for _, fee := range state.ProtocolFees {
		if err := k.accumulateProtocolFee(ctx, fee.Denom, fee.Amount); err != nil {
			return err
		}
	}
	return k.CheckInvariants(ctx)
}

// ExportGenesis exports the module state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}
	fees, err := k.GetProtocolFees(ctx)
	if err != nil {
		return nil, err
	}
	return &types.GenesisState{
		Params:       k.GetParams(ctx),
		NextPoolId:   k.GetNextPoolID(ctx),
		Pools:        pools,
		ProtocolFees: fees,
	}, nil
}
