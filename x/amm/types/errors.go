package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrArithmetic             = errors.Register(ModuleName, 1, "arithmetic error")
	ErrInsufficientLiquidity  = errors.Register(ModuleName, 2, "insufficient liquidity in pool")
	ErrEmptyPool              = errors.Register(ModuleName, 3, "pool has no reserves")
	ErrMinimumLiquidityNotMet = errors.Register(ModuleName, 4, "minimum liquidity not met")
	ErrInsufficientShares     = errors.Register(ModuleName, 5, "insufficient liquidity shares")
	ErrMaxSlippageExceeded    = errors.Register(ModuleName, 6, "max slippage exceeded")
	ErrConvergenceFailure     = errors.Register(ModuleName, 7, "invariant solver failed to converge")
	ErrDuplicatePool          = errors.Register(ModuleName, 8, "pool already exists")
	ErrUnauthorized           = errors.Register(ModuleName, 9, "unauthorized")
	ErrPoolNotFound           = errors.Register(ModuleName, 10, "pool not found")
	ErrInvalidAmount          = errors.Register(ModuleName, 11, "invalid amount")
	ErrAssetMismatch          = errors.Register(ModuleName, 12, "asset does not belong to pool")
	ErrInvalidPoolState       = errors.Register(ModuleName, 13, "invalid pool state")
	ErrPoolHalted             = errors.Register(ModuleName, 14, "pool trading is halted")
	ErrInvalidParams          = errors.Register(ModuleName, 15, "invalid parameters")
)
