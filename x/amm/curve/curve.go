// Package curve implements the pricing layer: checked fixed-point
// arithmetic and the swap invariants pools trade against. It is pure
// computation over reserves; it never touches the store.
package curve

import (
	"cosmossdk.io/math"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// SwapInput is the oriented slice of pool state a pricing call needs.
type SwapInput struct {
	OfferReserve  math.Int
	AskReserve    math.Int
	OfferAmount   math.Int
	OfferDecimals uint32
	AskDecimals   uint32
}

// ComputeSwap prices offerAmount against the pool's curve and returns the
// gross return (before commission) and the spread. The switch over the
// curve kind is exhaustive; an unknown kind is a state corruption error,
// not a fallback.
func ComputeSwap(c types.Curve, in SwapInput) (returnAmount, spreadAmount math.Int, err error) {
	if in.OfferAmount.IsNil() || !in.OfferAmount.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInvalidAmount.Wrap("offer amount must be positive")
	}
	switch c.Kind {
	case types.CurveConstantProduct:
		return constantProductSwap(in.OfferReserve, in.AskReserve, in.OfferAmount)
	case types.CurveStableSwap:
		return stableSwap(in.OfferReserve, in.AskReserve, in.OfferAmount, in.OfferDecimals, in.AskDecimals, c.Amplification)
	default:
		return math.Int{}, math.Int{}, types.ErrInvalidPoolState.Wrapf("unknown curve kind %d", c.Kind)
	}
}

// ComputeRequiredOffer inverts the curve: the offer amount needed for a
// gross ask-side return of grossAsk, rounded against the caller.
func ComputeRequiredOffer(c types.Curve, in SwapInput, grossAsk math.Int) (offerAmount, spreadAmount math.Int, err error) {
	if grossAsk.IsNil() || !grossAsk.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInvalidAmount.Wrap("ask amount must be positive")
	}
	switch c.Kind {
	case types.CurveConstantProduct:
		return constantProductRequiredOffer(in.OfferReserve, in.AskReserve, grossAsk)
	case types.CurveStableSwap:
		return stableSwapRequiredOffer(in.OfferReserve, in.AskReserve, grossAsk, in.OfferDecimals, in.AskDecimals, c.Amplification)
	default:
		return math.Int{}, math.Int{}, types.ErrInvalidPoolState.Wrapf("unknown curve kind %d", c.Kind)
	}
}

// InvariantValue returns the conserved quantity for the reserves: k for
// constant product, D for stableswap. Swaps must never decrease it.
func InvariantValue(c types.Curve, reserveA, reserveB math.Int, decimalsA, decimalsB uint32) (math.Int, error) {
	switch c.Kind {
	case types.CurveConstantProduct:
		return constantProductInvariant(reserveA, reserveB)
	case types.CurveStableSwap:
		return stableSwapInvariant(reserveA, reserveB, decimalsA, decimalsB, c.Amplification)
	default:
		return math.Int{}, types.ErrInvalidPoolState.Wrapf("unknown curve kind %d", c.Kind)
	}
}
