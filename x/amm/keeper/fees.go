package keeper

import (
	"context"
	"sort"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// SplitFee breaks the commission on a gross curve return into the protocol
// and LP portions. Conservation is exact: lp = commission - protocol, so
// integer residue from the protocol share always lands with the LPs.
func SplitFee(gross sdkmath.Int, feeRate, protocolFeeShare sdkmath.LegacyDec) (commission, protocolFee, lpFee sdkmath.Int) {
	commission = feeRate.MulInt(gross).TruncateInt()
	protocolFee = protocolFeeShare.MulInt(commission).TruncateInt()
	lpFee = commission.Sub(protocolFee)
	return commission, protocolFee, lpFee
}

// accumulateProtocolFee adds amount to the treasury balance for denom.
func (k Keeper) accumulateProtocolFee(ctx context.Context, denom string, amount sdkmath.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	store := k.getStore(ctx)
	key := ProtocolFeeKey(denom)
	current := sdkmath.ZeroInt()
	if bz := store.Get(key); bz != nil {
		if err := current.Unmarshal(bz); err != nil {
			return types.ErrInvalidPoolState.Wrapf("corrupt protocol fee record for %s: %v", denom, err)
		}
	}
	bz, err := current.Add(amount).Marshal()
	if err != nil {
		return types.ErrInvalidPoolState.Wrapf("failed to marshal protocol fee for %s: %v", denom, err)
	}
	store.Set(key, bz)
	return nil
}

// GetProtocolFee returns the accumulated treasury balance for one denom.
func (k Keeper) GetProtocolFee(ctx context.Context, denom string) (sdkmath.Int, error) {
	store := k.getStore(ctx)
	bz := store.Get(ProtocolFeeKey(denom))
	if bz == nil {
		return sdkmath.ZeroInt(), nil
	}
	amount := sdkmath.ZeroInt()
	if err := amount.Unmarshal(bz); err != nil {
		return sdkmath.Int{}, types.ErrInvalidPoolState.Wrapf("corrupt protocol fee record for %s: %v", denom, err)
	}
	return amount, nil
}

// GetProtocolFees returns every accumulated treasury balance, sorted by
// denom.
func (k Keeper) GetProtocolFees(ctx context.Context) ([]types.ProtocolFee, error) {
	store := k.getStore(ctx)
	iter := storetypes.KVStorePrefixIterator(store, ProtocolFeeKeyPrefix)
	defer iter.Close()

	var fees []types.ProtocolFee
	for ; iter.Valid(); iter.Next() {
		denom := string(iter.Key()[len(ProtocolFeeKeyPrefix):])
		amount := sdkmath.ZeroInt()
		if err := amount.Unmarshal(iter.Value()); err != nil {
			return nil, types.ErrInvalidPoolState.Wrapf("corrupt protocol fee record for %s: %v", denom, err)
		}
		fees = append(fees, types.ProtocolFee{Denom: denom, Amount: amount})
	}
	sort.Slice(fees, func(i, j int) bool { return fees[i].Denom < fees[j].Denom })
	return fees, nil
}

// WithdrawProtocolFees drains the treasury balance for denom. Only the
// module authority may call it.
func (k Keeper) WithdrawProtocolFees(ctx context.Context, caller, denom string) (sdkmath.Int, error) {
	if caller != k.authority {
		return sdkmath.Int{}, types.ErrUnauthorized.Wrapf("%s is not the module authority", caller)
	}
	amount, err := k.GetProtocolFee(ctx, denom)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if amount.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	k.getStore(ctx).Delete(ProtocolFeeKey(denom))
	k.logger.Info("protocol fees withdrawn",
		"event", types.EventTypeWithdrawProtocolFees,
		"denom", denom,
		"amount", amount.String(),
	)
	return amount, nil
}
