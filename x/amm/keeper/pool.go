package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// SetPool persists a pool record.
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	store := k.getStore(ctx)
	bz, err := json.Marshal(pool)
	if err != nil {
		return types.ErrInvalidPoolState.Wrapf("failed to marshal pool %d: %v", pool.Id, err)
	}
	store.Set(PoolKey(pool.Id), bz)
	return nil
}

// GetPool retrieves a pool by ID.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, types.ErrInvalidPoolState.Wrapf("failed to unmarshal pool %d: %v", poolID, err)
	}
	return pool, nil
}

// GetAllPools returns every pool record in state, ordered by ID.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	store := k.getStore(ctx)
	iter := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iter.Close()

	var pools []types.Pool
	for ; iter.Valid(); iter.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iter.Value(), &pool); err != nil {
			return nil, types.ErrInvalidPoolState.Wrapf("failed to unmarshal pool record: %v", err)
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

// GetNextPoolID reads the pool ID counter without advancing it.
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(PoolCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetNextPoolID writes the pool ID counter.
func (k Keeper) SetNextPoolID(ctx context.Context, id uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	store.Set(PoolCountKey, bz)
}

// CreatePool registers a new empty pool for an asset pair and curve.
// Reserves and shares start at zero; the first liquidity deposit bootstraps
// them. A pair may host at most one pool per curve kind.
func (k Keeper) CreatePool(
	ctx context.Context,
	controller string,
	assetA, assetB types.Asset,
	curve types.Curve,
	feeRate, protocolFeeShare sdkmath.LegacyDec,
) (uint64, error) {
	params := k.GetParams(ctx)

	// 1. Validate inputs
	if controller == "" {
		return 0, types.ErrInvalidParams.Wrap("pool controller cannot be empty")
	}
	if err := assetA.Validate(); err != nil {
		return 0, err
	}
	if err := assetB.Validate(); err != nil {
		return 0, err
	}
	if assetA.Denom == assetB.Denom {
		return 0, types.ErrInvalidParams.Wrap("pool assets must differ")
	}
	if err := curve.Validate(params.MaxAmplification); err != nil {
		return 0, err
	}
	if err := validatePoolFees(params, feeRate, protocolFeeShare); err != nil {
		return 0, err
	}

	// 2. Canonical ordering: asset A is the lexicographically smaller denom
	if assetA.Denom > assetB.Denom {
		assetA, assetB = assetB, assetA
	}

	// 3. Reject duplicates on the same pair and curve kind
	store := k.getStore(ctx)
	pairKey := PoolByPairKey(assetA.Denom, assetB.Denom, int32(curve.Kind))
	if bz := store.Get(pairKey); bz != nil {
		existing := binary.BigEndian.Uint64(bz)
		return 0, types.ErrDuplicatePool.Wrapf("pool %d already serves %s/%s with curve %s",
			existing, assetA.Denom, assetB.Denom, curve.Kind)
	}

	// 4. Build and persist the record
	poolID := k.GetNextPoolID(ctx)
	pool := types.Pool{
		Id:               poolID,
		AssetA:           assetA,
		AssetB:           assetB,
		ReserveA:         sdkmath.ZeroInt(),
		ReserveB:         sdkmath.ZeroInt(),
		TotalShares:      sdkmath.ZeroInt(),
		Curve:            curve,
		FeeRate:          feeRate,
		ProtocolFeeShare: protocolFeeShare,
		Controller:       controller,
		PriceCumulativeA: sdkmath.LegacyZeroDec(),
		PriceCumulativeB: sdkmath.LegacyZeroDec(),
		LastUpdateUnix:   k.blockTime(ctx),
	}
	if err := pool.Validate(); err != nil {
		return 0, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return 0, err
	}

	// 5. Update index and counter
	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, poolID)
	store.Set(pairKey, idBytes)
	k.SetNextPoolID(ctx, poolID+1)

	if err := k.hooks.AfterPoolCreated(ctx, poolID, assetA.Denom, assetB.Denom, controller); err != nil {
		return 0, err
	}
	k.metrics.PoolCreated(curve.Kind.String())
	k.logger.Info("pool created",
		"event", types.EventTypeCreatePool,
		types.AttributeKeyPoolID, poolID,
		"pair", assetA.Denom+"/"+assetB.Denom,
		"curve", curve.Kind.String(),
	)
	return poolID, nil
}

// UpdatePoolFees changes a pool's commission parameters. Only the pool's
// controller may call it.
func (k Keeper) UpdatePoolFees(ctx context.Context, caller string, poolID uint64, feeRate, protocolFeeShare sdkmath.LegacyDec) error {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if caller != pool.Controller {
		return types.ErrUnauthorized.Wrapf("%s is not the controller of pool %d", caller, poolID)
	}
	if err := validatePoolFees(k.GetParams(ctx), feeRate, protocolFeeShare); err != nil {
		return err
	}

	pool.FeeRate = feeRate
	pool.ProtocolFeeShare = protocolFeeShare
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}
	k.logger.Info("pool fees updated",
		"event", types.EventTypeUpdatePoolFees,
		types.AttributeKeyPoolID, poolID,
		"fee_rate", feeRate.String(),
		"protocol_fee_share", protocolFeeShare.String(),
	)
	return nil
}

// haltPool persists the halted flag and notifies hooks. Called when pricing
// fails in a way that makes the pool state untrustworthy.
func (k Keeper) haltPool(ctx context.Context, pool types.Pool, reason string) error {
	pool.Halted = true
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}
	if err := k.hooks.OnPoolHalted(ctx, pool.Id, reason); err != nil {
		return err
	}
	k.metrics.PoolHalted()
	k.logger.Error("pool halted",
		"event", types.EventTypePoolHalted,
		types.AttributeKeyPoolID, pool.Id,
		types.AttributeKeyReason, reason,
	)
	return nil
}

// ResumePool clears a pool's halted flag. Only the module authority may
// call it.
func (k Keeper) ResumePool(ctx context.Context, caller string, poolID uint64) error {
	if caller != k.authority {
		return types.ErrUnauthorized.Wrapf("%s is not the module authority", caller)
	}
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if !pool.Halted {
		return types.ErrInvalidPoolState.Wrapf("pool %d is not halted", poolID)
	}
	pool.Halted = false
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}
	k.logger.Info("pool resumed",
		"event", types.EventTypePoolResumed,
		types.AttributeKeyPoolID, poolID,
	)
	return nil
}

// IsPoolHalted reports whether a pool is currently halted.
func (k Keeper) IsPoolHalted(ctx context.Context, poolID uint64) (bool, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return false, err
	}
	return pool.Halted, nil
}

func validatePoolFees(params types.Params, feeRate, protocolFeeShare sdkmath.LegacyDec) error {
	if feeRate.IsNil() || feeRate.IsNegative() {
		return types.ErrInvalidParams.Wrap("fee rate cannot be nil or negative")
	}
	if feeRate.GT(params.MaxFeeRate) {
		return types.ErrInvalidParams.Wrapf("fee rate %s exceeds maximum %s", feeRate, params.MaxFeeRate)
	}
	if protocolFeeShare.IsNil() || protocolFeeShare.IsNegative() || protocolFeeShare.GT(sdkmath.LegacyOneDec()) {
		return types.ErrInvalidParams.Wrap("protocol fee share must be in [0, 1]")
	}
	return nil
}
