package types

import (
	sdkmath "cosmossdk.io/math"
)

// SwapRequest carries the caller-supplied inputs of a swap. BeliefPrice and
// MaxSpread are optional; when both are nil the module default spread bound
// applies.
type SwapRequest struct {
	OfferDenom  string
	AskDenom    string
	OfferAmount sdkmath.Int

	// MinReturn is the minimum net return the caller accepts. Zero disables
	// the check.
	MinReturn sdkmath.Int

	// BeliefPrice is the caller's expected ask-per-offer price. When set,
	// the spread assertion measures against it instead of the pre-trade
	// reserve ratio.
	BeliefPrice *sdkmath.LegacyDec

	// MaxSpread bounds the relative loss versus the expected return.
	MaxSpread *sdkmath.LegacyDec
}

// Validate checks the request independent of any pool.
func (r SwapRequest) Validate() error {
	if r.OfferDenom == "" || r.AskDenom == "" {
		return ErrInvalidAmount.Wrap("offer and ask denoms must be set")
	}
	if r.OfferDenom == r.AskDenom {
		return ErrInvalidAmount.Wrap("offer and ask denoms must differ")
	}
	if r.OfferAmount.IsNil() || !r.OfferAmount.IsPositive() {
		return ErrInvalidAmount.Wrap("offer amount must be positive")
	}
	if r.MinReturn.IsNil() || r.MinReturn.IsNegative() {
		return ErrInvalidAmount.Wrap("min return cannot be nil or negative")
	}
	if r.BeliefPrice != nil && !r.BeliefPrice.IsPositive() {
		return ErrInvalidAmount.Wrap("belief price must be positive")
	}
	if r.MaxSpread != nil && r.MaxSpread.IsNegative() {
		return ErrInvalidAmount.Wrap("max spread cannot be negative")
	}
	return nil
}

// SwapResult breaks down the outcome of a priced swap. ReturnAmount is the
// net amount leaving the pool toward the trader; CommissionAmount =
// LpFeeAmount + ProtocolFeeAmount is withheld from the gross curve output.
type SwapResult struct {
	OfferAmount       sdkmath.Int
	ReturnAmount      sdkmath.Int
	SpreadAmount      sdkmath.Int
	CommissionAmount  sdkmath.Int
	LpFeeAmount       sdkmath.Int
	ProtocolFeeAmount sdkmath.Int
}
