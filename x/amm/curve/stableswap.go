package curve

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/cascade-dex/cascade/x/amm/types"
)

const (
	// AmpPrecision scales the amplification coefficient inside the solvers.
	AmpPrecision = 100

	// maxSolverIterations caps both Newton-Raphson loops. Convergence
	// typically occurs in 4 rounds or less.
	maxSolverIterations = 255

	// nCoins is fixed: pools are pairs.
	nCoins = 2
)

var (
	bigOne          = big.NewInt(1)
	bigTwo          = big.NewInt(2)
	bigNCoins       = big.NewInt(nCoins)
	bigAmpPrecision = big.NewInt(AmpPrecision)
)

// stableSwapD solves the amplified invariant for D over the
// precision-adjusted balances xp. Iteration:
//
//	D = (Ann*S/AmpPrecision + D_P*n) * D /
//	    ((Ann-AmpPrecision)*D/AmpPrecision + (n+1)*D_P)
//
// with D_P = D^(n+1) / (n^n * prod(xp)), seeded at D = S, until two
// successive values differ by at most 1.
func stableSwapD(xp [nCoins]*big.Int, ampPrecise *big.Int) (*big.Int, error) {
	s := new(big.Int).Add(xp[0], xp[1])
	if s.Sign() == 0 {
		return big.NewInt(0), nil
	}
	for i := range xp {
		if xp[i].Sign() <= 0 {
			return nil, types.ErrEmptyPool.Wrap("stableswap balance is not positive")
		}
	}

	d := new(big.Int).Set(s)
	ann := new(big.Int).Mul(ampPrecise, bigNCoins)
	dPrev := new(big.Int)

	for i := 0; i < maxSolverIterations; i++ {
		dp := new(big.Int).Set(d)
		for j := range xp {
			dp.Mul(dp, d)
			dp.Quo(dp, new(big.Int).Mul(xp[j], bigNCoins))
		}
		dPrev.Set(d)

		num := new(big.Int).Mul(ann, s)
		num.Quo(num, bigAmpPrecision)
		num.Add(num, new(big.Int).Mul(dp, bigNCoins))
		num.Mul(num, d)

		den := new(big.Int).Sub(ann, bigAmpPrecision)
		den.Mul(den, d)
		den.Quo(den, bigAmpPrecision)
		den.Add(den, new(big.Int).Mul(dp, big.NewInt(nCoins+1)))

		d = num.Quo(num, den)

		if new(big.Int).Sub(d, dPrev).CmpAbs(bigOne) <= 0 {
			return d, nil
		}
	}
	return nil, types.ErrConvergenceFailure.Wrap("D solver exhausted its iteration budget")
}

// stableSwapY solves for the post-trade ask-side balance given the
// post-trade offer-side balance x, holding D fixed. Iteration:
//
//	y = (y^2 + c) / (2y + b - D)
//
// with c = D^3 * AmpPrecision / (n^2 * x * Ann) and
// b = x + D*AmpPrecision/Ann, seeded at y = D.
func stableSwapY(x, d, ampPrecise *big.Int) (*big.Int, error) {
	if x.Sign() <= 0 {
		return nil, types.ErrEmptyPool.Wrap("stableswap balance is not positive")
	}
	ann := new(big.Int).Mul(ampPrecise, bigNCoins)

	c := new(big.Int).Set(d)
	c.Mul(c, d)
	c.Quo(c, new(big.Int).Mul(x, bigNCoins))
	c.Mul(c, d)
	c.Mul(c, bigAmpPrecision)
	c.Quo(c, new(big.Int).Mul(ann, bigNCoins))

	b := new(big.Int).Mul(d, bigAmpPrecision)
	b.Quo(b, ann)
	b.Add(b, x)

	y := new(big.Int).Set(d)
	yPrev := new(big.Int)
	for i := 0; i < maxSolverIterations; i++ {
		yPrev.Set(y)

		num := new(big.Int).Mul(y, y)
		num.Add(num, c)
		den := new(big.Int).Mul(y, bigTwo)
		den.Add(den, b)
		den.Sub(den, d)
		y = num.Quo(num, den)

		if new(big.Int).Sub(y, yPrev).CmpAbs(bigOne) <= 0 {
			return y, nil
		}
	}
	return nil, types.ErrConvergenceFailure.Wrap("y solver exhausted its iteration budget")
}

// decimalScale returns 10^(target-decimals) for lifting a balance to the
// pair's common precision.
func decimalScale(decimals, target uint32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(target-decimals)), nil)
}

func maxDecimals(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// stableSwap prices a swap against the amplified invariant. Both reserves
// are lifted to the pair's greatest decimal precision before solving; the
// scaled output loses one unit to rounding and is floored back to ask-side
// base units. The spread is the shortfall versus a 1:1 exchange.
func stableSwap(offerReserve, askReserve, offerAmount math.Int, offerDecimals, askDecimals uint32, amplification uint64) (returnAmount, spreadAmount math.Int, err error) {
	if offerReserve.IsZero() || askReserve.IsZero() {
		return math.Int{}, math.Int{}, types.ErrEmptyPool.Wrap("stableswap against empty reserves")
	}

	target := maxDecimals(offerDecimals, askDecimals)
	offerScale := decimalScale(offerDecimals, target)
	askScale := decimalScale(askDecimals, target)

	xp := [nCoins]*big.Int{
		new(big.Int).Mul(offerReserve.BigInt(), offerScale),
		new(big.Int).Mul(askReserve.BigInt(), askScale),
	}
	ampPrecise := new(big.Int).Mul(new(big.Int).SetUint64(amplification), bigAmpPrecision)

	d, err := stableSwapD(xp, ampPrecise)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	x := new(big.Int).Mul(offerAmount.BigInt(), offerScale)
	x.Add(x, xp[0])
	y, err := stableSwapY(x, d, ampPrecise)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	dy := new(big.Int).Sub(xp[1], y)
	dy.Sub(dy, bigOne)
	if dy.Sign() < 0 {
		dy.SetInt64(0)
	}
	dy.Quo(dy, askScale)
	returnAmount = math.NewIntFromBigInt(dy)
	if returnAmount.GTE(askReserve) {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"swap would drain the ask reserve: return %s, reserve %s", returnAmount, askReserve)
	}

	// 1:1 reference return in ask base units.
	par := new(big.Int).Mul(offerAmount.BigInt(), offerScale)
	par.Quo(par, askScale)
	spreadAmount = math.ZeroInt()
	if parInt := math.NewIntFromBigInt(par); parInt.GT(returnAmount) {
		spreadAmount = parInt.Sub(returnAmount)
	}
	return returnAmount, spreadAmount, nil
}

// stableSwapRequiredOffer inverts the curve for reverse simulation: the
// offer amount that yields grossAsk, found by solving for the offer-side
// balance holding D fixed, rounded up against the caller.
func stableSwapRequiredOffer(offerReserve, askReserve, grossAsk math.Int, offerDecimals, askDecimals uint32, amplification uint64) (offerAmount, spreadAmount math.Int, err error) {
	if offerReserve.IsZero() || askReserve.IsZero() {
		return math.Int{}, math.Int{}, types.ErrEmptyPool.Wrap("reverse swap against empty reserves")
	}
	if grossAsk.GTE(askReserve) {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"requested return %s not covered by ask reserve %s", grossAsk, askReserve)
	}

	target := maxDecimals(offerDecimals, askDecimals)
	offerScale := decimalScale(offerDecimals, target)
	askScale := decimalScale(askDecimals, target)

	xp := [nCoins]*big.Int{
		new(big.Int).Mul(offerReserve.BigInt(), offerScale),
		new(big.Int).Mul(askReserve.BigInt(), askScale),
	}
	ampPrecise := new(big.Int).Mul(new(big.Int).SetUint64(amplification), bigAmpPrecision)

	d, err := stableSwapD(xp, ampPrecise)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	// Post-trade ask balance, then solve the same quadratic for the
	// offer-side balance that supports it.
	newAsk := new(big.Int).Mul(grossAsk.BigInt(), askScale)
	newAsk.Sub(xp[1], newAsk)
	x, err := stableSwapY(newAsk, d, ampPrecise)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	dx := new(big.Int).Sub(x, xp[0])
	dx.Add(dx, bigOne)
	if dx.Sign() < 0 {
		dx.SetInt64(0)
	}
	quo, rem := new(big.Int).QuoRem(dx, offerScale, new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, bigOne)
	}
	offerAmount = math.NewIntFromBigInt(quo)

	par := new(big.Int).Mul(offerAmount.BigInt(), offerScale)
	par.Quo(par, askScale)
	spreadAmount = math.ZeroInt()
	if parInt := math.NewIntFromBigInt(par); parInt.GT(grossAsk) {
		spreadAmount = parInt.Sub(grossAsk)
	}
	return offerAmount, spreadAmount, nil
}

// stableSwapInvariant returns D for the current reserves.
func stableSwapInvariant(reserveA, reserveB math.Int, decimalsA, decimalsB uint32, amplification uint64) (math.Int, error) {
	target := maxDecimals(decimalsA, decimalsB)
	xp := [nCoins]*big.Int{
		new(big.Int).Mul(reserveA.BigInt(), decimalScale(decimalsA, target)),
		new(big.Int).Mul(reserveB.BigInt(), decimalScale(decimalsB, target)),
	}
	ampPrecise := new(big.Int).Mul(new(big.Int).SetUint64(amplification), bigAmpPrecision)
	d, err := stableSwapD(xp, ampPrecise)
	if err != nil {
		return math.Int{}, err
	}
	return math.NewIntFromBigInt(d), nil
}
