package curve

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/cascade-dex/cascade/x/amm/types"
)

// Checked arithmetic over math.Int for the pricing layer. Amounts are
// unsigned conceptually; every operation rejects results at or above 2^256
// so intermediate products stay inside the range the store types accept.

var maxInt256 = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// SafeAdd adds two math.Int values with overflow checking.
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxInt256) >= 0 {
		return math.Int{}, types.ErrArithmetic.Wrap("overflow: addition result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a with underflow checking.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrArithmetic.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// SafeMul multiplies two math.Int values with overflow checking.
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.Cmp(maxInt256) >= 0 {
		return math.Int{}, types.ErrArithmetic.Wrap("overflow: multiplication result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeQuo divides a by b with division-by-zero checking. The quotient is
// truncated toward zero.
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, types.ErrArithmetic.Wrap("division by zero")
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// SafeMulDiv computes floor(a * b / c). The product is widened through
// big.Int so it may exceed 256 bits as long as the quotient does not.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrArithmetic.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := new(big.Int).Quo(intermediate, c.BigInt())
	if result.Cmp(maxInt256) >= 0 {
		return math.Int{}, types.ErrArithmetic.Wrap("overflow in multiply-divide")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeMulDivCeil computes ceil(a * b / c). Used for amounts owed to the
// pool, where rounding must never favor the caller.
func SafeMulDivCeil(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrArithmetic.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	quo, rem := new(big.Int).QuoRem(intermediate, c.BigInt(), new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	if quo.Cmp(maxInt256) >= 0 {
		return math.Int{}, types.ErrArithmetic.Wrap("overflow in multiply-divide")
	}
	return math.NewIntFromBigInt(quo), nil
}

// IntegerSqrt returns floor(sqrt(a)).
func IntegerSqrt(a math.Int) (math.Int, error) {
	if a.IsNegative() {
		return math.Int{}, types.ErrArithmetic.Wrap("square root of negative value")
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(a.BigInt())), nil
}
