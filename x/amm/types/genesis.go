package types

import (
	sdkmath "cosmossdk.io/math"
)

// ProtocolFee is the accumulated treasury balance for one denom.
type ProtocolFee struct {
	Denom  string      `json:"denom"`
	Amount sdkmath.Int `json:"amount"`
}

// GenesisState is the full exported state of the module.
type GenesisState struct {
	Params       Params        `json:"params"`
	NextPoolId   uint64        `json:"next_pool_id"`
	Pools        []Pool        `json:"pools"`
	ProtocolFees []ProtocolFee `json:"protocol_fees"`
}

// DefaultGenesis returns the module's default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		NextPoolId: 1,
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.NextPoolId == 0 {
		return ErrInvalidPoolState.Wrap("next pool id cannot be zero")
	}
	type pairKey struct {
		denomA, denomB string
		kind           CurveKind
	}
	seen := make(map[uint64]struct{}, len(gs.Pools))
	seenPairs := make(map[pairKey]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
		if _, ok := seen[pool.Id]; ok {
			return ErrDuplicatePool.Wrapf("pool id %d appears twice in genesis", pool.Id)
		}
		seen[pool.Id] = struct{}{}
		if pool.Id >= gs.NextPoolId {
			return ErrInvalidPoolState.Wrapf("pool id %d is not below the next pool id %d", pool.Id, gs.NextPoolId)
		}
		pair := pairKey{denomA: pool.AssetA.Denom, denomB: pool.AssetB.Denom, kind: pool.Curve.Kind}
		if pair.denomA > pair.denomB {
			pair.denomA, pair.denomB = pair.denomB, pair.denomA
		}
		if _, ok := seenPairs[pair]; ok {
			return ErrDuplicatePool.Wrapf("pair %s/%s with curve %s appears twice in genesis",
				pair.denomA, pair.denomB, pool.Curve.Kind)
		}
		seenPairs[pair] = struct{}{}
	}
	seenDenoms := make(map[string]struct{}, len(gs.ProtocolFees))
	for _, fee := range gs.ProtocolFees {
		if fee.Denom == "" {
			return ErrInvalidPoolState.Wrap("protocol fee denom cannot be empty")
		}
		if fee.Amount.IsNil() || fee.Amount.IsNegative() {
			return ErrInvalidPoolState.Wrapf("protocol fee amount for %s cannot be nil or negative", fee.Denom)
		}
		if _, ok := seenDenoms[fee.Denom]; ok {
			return ErrInvalidPoolState.Wrapf("protocol fee denom %s appears twice in genesis", fee.Denom)
		}
		seenDenoms[fee.Denom] = struct{}{}
	}
	return nil
}
