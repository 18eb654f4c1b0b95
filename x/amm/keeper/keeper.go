package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// Keeper of the amm store. Pool records, the pair index, module params and
// the protocol fee treasury all live under the KVStore supplied by the
// hosting runtime; block time comes from the injected clock.
type Keeper struct {
	store     storetypes.KVStore
	clock     types.BlockClock
	authority string
	logger    log.Logger
	hooks     types.MultiAmmHooks
	metrics   *Metrics
}

// NewKeeper creates a new amm Keeper instance. The authority is the account
// allowed to resume halted pools and withdraw protocol fees.
func NewKeeper(
	store storetypes.KVStore,
	clock types.BlockClock,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		store:     store,
		clock:     clock,
		authority: authority,
		logger:    logger.With("module", "x/"+types.ModuleName),
	}
}

// SetHooks sets the module hooks. Panics if called more than once, matching
// the usual keeper wiring contract.
func (k *Keeper) SetHooks(hooks ...types.AmmHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set amm hooks twice")
	}
	k.hooks = types.NewMultiAmmHooks(hooks...)
	return k
}

// EnableMetrics attaches the prometheus metrics singleton. Without it every
// metrics call is a no-op, so library users may skip it.
func (k *Keeper) EnableMetrics() *Keeper {
	k.metrics = GetMetrics()
	return k
}

// GetAuthority returns the module authority account.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns the module logger.
func (k Keeper) Logger() log.Logger {
	return k.logger
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(_ context.Context) storetypes.KVStore {
	return k.store
}

// blockTime reads the current block time from the injected clock.
func (k Keeper) blockTime(ctx context.Context) int64 {
	return k.clock.BlockTime(ctx).Unix()
}
