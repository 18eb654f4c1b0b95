package keeper

import (
	"context"
	"encoding/json"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// GetParams returns the module parameters, falling back to defaults when
// none have been stored yet.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	store := k.getStore(ctx)
	bz := store.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams validates and persists the module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return types.ErrInvalidParams.Wrapf("failed to marshal params: %v", err)
	}
	k.getStore(ctx).Set(ParamsKey, bz)
	return nil
}
