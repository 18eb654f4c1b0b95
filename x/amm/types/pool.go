package types

import (
	"cosmossdk.io/math"
)

// MaxAssetDecimals bounds the decimal precision of a pool asset. Amounts are
// base units; 18 matches the widest precision the fixed-point layer carries.
const MaxAssetDecimals = 18

// Asset identifies one side of a trading pair.
type Asset struct {
	Denom    string `json:"denom"`
	Decimals uint32 `json:"decimals"`
}

// Validate checks the asset metadata.
func (a Asset) Validate() error {
	if a.Denom == "" {
		return ErrInvalidParams.Wrap("asset denom cannot be empty")
	}
	if a.Decimals > MaxAssetDecimals {
		return ErrInvalidParams.Wrapf("asset decimals %d exceed maximum %d", a.Decimals, MaxAssetDecimals)
	}
	return nil
}

// CurveKind enumerates the supported pricing curves. The set is closed:
// every consumer must switch exhaustively over it.
type CurveKind int32

const (
	// CurveConstantProduct prices swaps against x*y=k.
	CurveConstantProduct CurveKind = iota
	// CurveStableSwap prices swaps against the amplified stableswap invariant.
	CurveStableSwap
)

// String implements fmt.Stringer.
func (c CurveKind) String() string {
	switch c {
	case CurveConstantProduct:
		return "constant_product"
	case CurveStableSwap:
		return "stableswap"
	default:
		return "unknown"
	}
}

// Curve is the pricing strategy fixed at pool creation. Amplification is
// only meaningful for CurveStableSwap and must be zero otherwise.
type Curve struct {
	Kind          CurveKind `json:"kind"`
	Amplification uint64    `json:"amplification,omitempty"`
}

// Validate checks the curve against the module's amplification bounds.
func (c Curve) Validate(maxAmplification uint64) error {
	switch c.Kind {
	case CurveConstantProduct:
		if c.Amplification != 0 {
			return ErrInvalidParams.Wrap("constant product curve takes no amplification coefficient")
		}
	case CurveStableSwap:
		if c.Amplification == 0 {
			return ErrInvalidParams.Wrap("stableswap amplification coefficient must be positive")
		}
		if c.Amplification > maxAmplification {
			return ErrInvalidParams.Wrapf("amplification %d exceeds maximum %d", c.Amplification, maxAmplification)
		}
	default:
		return ErrInvalidParams.Wrapf("unknown curve kind %d", c.Kind)
	}
	return nil
}

// Pool is the persisted record for one trading pair. Assets are stored in
// lexicographic denom order. Reserves and shares are base-unit integers;
// the price accumulators and the last update timestamp form the oracle
// state and only ever grow.
type Pool struct {
	Id               uint64         `json:"id"`
	AssetA           Asset          `json:"asset_a"`
	AssetB           Asset          `json:"asset_b"`
	ReserveA         math.Int       `json:"reserve_a"`
	ReserveB         math.Int       `json:"reserve_b"`
	TotalShares      math.Int       `json:"total_shares"`
	Curve            Curve          `json:"curve"`
	FeeRate          math.LegacyDec `json:"fee_rate"`
	ProtocolFeeShare math.LegacyDec `json:"protocol_fee_share"`
	Controller       string         `json:"controller"`
	PriceCumulativeA math.LegacyDec `json:"price_cumulative_a"`
	PriceCumulativeB math.LegacyDec `json:"price_cumulative_b"`
	LastUpdateUnix   int64          `json:"last_update_unix"`
	Halted           bool           `json:"halted"`
}

// Validate checks structural consistency of the pool record. Curve and fee
// bounds are validated against Params at creation; this check is
// parameter-free so it can run on any loaded record.
func (p Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolState.Wrap("pool id cannot be zero")
	}
	if err := p.AssetA.Validate(); err != nil {
		return err
	}
	if err := p.AssetB.Validate(); err != nil {
		return err
	}
	if p.AssetA.Denom == p.AssetB.Denom {
		return ErrInvalidPoolState.Wrap("pool assets must differ")
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalShares.IsNil() {
		return ErrInvalidPoolState.Wrap("pool amounts cannot be nil")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() || p.TotalShares.IsNegative() {
		return ErrInvalidPoolState.Wrap("pool amounts cannot be negative")
	}
	if p.ReserveA.IsZero() != p.ReserveB.IsZero() {
		return ErrInvalidPoolState.Wrap("one-sided reserves: pool invariant is broken")
	}
	if p.TotalShares.IsZero() != p.ReserveA.IsZero() {
		return ErrInvalidPoolState.Wrap("total shares must be zero exactly when reserves are zero")
	}
	if p.FeeRate.IsNil() || p.FeeRate.IsNegative() {
		return ErrInvalidPoolState.Wrap("fee rate cannot be nil or negative")
	}
	if p.ProtocolFeeShare.IsNil() || p.ProtocolFeeShare.IsNegative() || p.ProtocolFeeShare.GT(math.LegacyOneDec()) {
		return ErrInvalidPoolState.Wrap("protocol fee share must be in [0, 1]")
	}
	if p.PriceCumulativeA.IsNil() || p.PriceCumulativeA.IsNegative() ||
		p.PriceCumulativeB.IsNil() || p.PriceCumulativeB.IsNegative() {
		return ErrInvalidPoolState.Wrap("price accumulators cannot be nil or negative")
	}
	return nil
}

// HasDenom reports whether denom is one of the pool's assets.
func (p Pool) HasDenom(denom string) bool {
	return denom == p.AssetA.Denom || denom == p.AssetB.Denom
}

// OrientedReserves resolves the offer/ask orientation of a swap. It returns
// the offer-side and ask-side reserves with their decimal precisions and
// whether the offer side is asset A.
func (p Pool) OrientedReserves(offerDenom, askDenom string) (offerReserve, askReserve math.Int, offerDecimals, askDecimals uint32, offerIsA bool, err error) {
	switch {
	case offerDenom == p.AssetA.Denom && askDenom == p.AssetB.Denom:
		return p.ReserveA, p.ReserveB, p.AssetA.Decimals, p.AssetB.Decimals, true, nil
	case offerDenom == p.AssetB.Denom && askDenom == p.AssetA.Denom:
		return p.ReserveB, p.ReserveA, p.AssetB.Decimals, p.AssetA.Decimals, false, nil
	default:
		return math.Int{}, math.Int{}, 0, 0, false,
			ErrAssetMismatch.Wrapf("pair %s/%s does not match pool %s/%s",
				offerDenom, askDenom, p.AssetA.Denom, p.AssetB.Denom)
	}
}

// IsEmpty reports whether the pool holds no reserves.
func (p Pool) IsEmpty() bool {
	return p.ReserveA.IsZero() || p.ReserveB.IsZero()
}
