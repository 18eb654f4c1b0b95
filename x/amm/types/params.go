package types

import (
	sdkmath "cosmossdk.io/math"
)

// Params holds the module-wide configuration persisted in the store.
type Params struct {
	// MaxFeeRate caps per-pool commission rates.
	MaxFeeRate sdkmath.LegacyDec `json:"max_fee_rate"`

	// DefaultMaxSpread applies when a swap supplies neither a belief price
	// bound nor an explicit max spread.
	DefaultMaxSpread sdkmath.LegacyDec `json:"default_max_spread"`

	// MaxSpreadCap is the hard ceiling on caller-supplied max spread values.
	MaxSpreadCap sdkmath.LegacyDec `json:"max_spread_cap"`

	// MinInitialShares is the floor on shares minted to the first depositor
	// after the lock is subtracted.
	MinInitialShares sdkmath.Int `json:"min_initial_shares"`

	// MinLiquidityLock is permanently retained in TotalShares on the first
	// deposit so a pool can never be fully drained by share burns.
	MinLiquidityLock sdkmath.Int `json:"min_liquidity_lock"`

	// DepositSlippageTolerance bounds how far a follow-up deposit's ratio
	// may move the effective price versus the pool ratio.
	DepositSlippageTolerance sdkmath.LegacyDec `json:"deposit_slippage_tolerance"`

	// MaxAmplification caps the stableswap amplification coefficient.
	MaxAmplification uint64 `json:"max_amplification"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		MaxFeeRate:               sdkmath.LegacyNewDecWithPrec(1, 1),  // 10%
		DefaultMaxSpread:         sdkmath.LegacyNewDecWithPrec(5, 3),  // 0.5%
		MaxSpreadCap:             sdkmath.LegacyNewDecWithPrec(5, 1),  // 50%
		MinInitialShares:         sdkmath.NewInt(1000),
		MinLiquidityLock:         sdkmath.NewInt(1000),
		DepositSlippageTolerance: sdkmath.LegacyNewDecWithPrec(1, 2), // 1%
		MaxAmplification:         1_000_000,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if err := validateRate("max fee rate", p.MaxFeeRate); err != nil {
		return err
	}
	if err := validateRate("default max spread", p.DefaultMaxSpread); err != nil {
		return err
	}
	if err := validateRate("max spread cap", p.MaxSpreadCap); err != nil {
		return err
	}
	if p.DefaultMaxSpread.GT(p.MaxSpreadCap) {
		return ErrInvalidParams.Wrap("default max spread exceeds the spread cap")
	}
	if p.MinInitialShares.IsNil() || p.MinInitialShares.IsNegative() {
		return ErrInvalidParams.Wrap("min initial shares cannot be nil or negative")
	}
	if p.MinLiquidityLock.IsNil() || !p.MinLiquidityLock.IsPositive() {
		return ErrInvalidParams.Wrap("min liquidity lock must be positive")
	}
	if err := validateRate("deposit slippage tolerance", p.DepositSlippageTolerance); err != nil {
		return err
	}
	if p.MaxAmplification == 0 {
		return ErrInvalidParams.Wrap("max amplification must be positive")
	}
	return nil
}

func validateRate(name string, d sdkmath.LegacyDec) error {
	if d.IsNil() {
		return ErrInvalidParams.Wrapf("%s cannot be nil", name)
	}
	if d.IsNegative() {
		return ErrInvalidParams.Wrapf("%s cannot be negative: %s", name, d)
	}
	if d.GT(sdkmath.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("%s cannot exceed 1: %s", name, d)
	}
	return nil
}
