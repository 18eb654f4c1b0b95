package curve

import (
	"cosmossdk.io/math"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// constantProductSwap prices a swap against x*y=k. The post-trade offer
// reserve divides the product rounded up, so the pool keeps every unit of
// truncation. The spread is the shortfall versus the pre-trade spot price
// and is reporting-only.
func constantProductSwap(offerReserve, askReserve, offerAmount math.Int) (returnAmount, spreadAmount math.Int, err error) {
	if offerReserve.IsZero() || askReserve.IsZero() {
		return math.Int{}, math.Int{}, types.ErrEmptyPool.Wrap("constant product swap against empty reserves")
	}

	newOfferReserve, err := SafeAdd(offerReserve, offerAmount)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	newAskReserve, err := SafeMulDivCeil(offerReserve, askReserve, newOfferReserve)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	returnAmount, err = SafeSub(askReserve, newAskReserve)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if returnAmount.GTE(askReserve) {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"swap would drain the ask reserve: return %s, reserve %s", returnAmount, askReserve)
	}

	spotReturn, err := SafeMulDiv(offerAmount, askReserve, offerReserve)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	spreadAmount = math.ZeroInt()
	if spotReturn.GT(returnAmount) {
		spreadAmount = spotReturn.Sub(returnAmount)
	}
	return returnAmount, spreadAmount, nil
}

// constantProductRequiredOffer inverts the curve: the offer amount that
// yields at least grossAsk out of the ask reserve, rounded up against the
// caller.
func constantProductRequiredOffer(offerReserve, askReserve, grossAsk math.Int) (offerAmount, spreadAmount math.Int, err error) {
	if offerReserve.IsZero() || askReserve.IsZero() {
		return math.Int{}, math.Int{}, types.ErrEmptyPool.Wrap("reverse swap against empty reserves")
	}
	if grossAsk.GTE(askReserve) {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"requested return %s not covered by ask reserve %s", grossAsk, askReserve)
	}

	newAskReserve := askReserve.Sub(grossAsk)
	newOfferReserve, err := SafeMulDivCeil(offerReserve, askReserve, newAskReserve)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	offerAmount, err = SafeSub(newOfferReserve, offerReserve)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	spotReturn, err := SafeMulDiv(offerAmount, askReserve, offerReserve)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	spreadAmount = math.ZeroInt()
	if spotReturn.GT(grossAsk) {
		spreadAmount = spotReturn.Sub(grossAsk)
	}
	return offerAmount, spreadAmount, nil
}

// constantProductInvariant returns k = reserveA * reserveB.
func constantProductInvariant(reserveA, reserveB math.Int) (math.Int, error) {
	return SafeMul(reserveA, reserveB)
}
