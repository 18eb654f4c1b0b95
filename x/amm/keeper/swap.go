package keeper

import (
	"context"
	"errors"

	sdkmath "cosmossdk.io/math"

	"github.com/cascade-dex/cascade/x/amm/curve"
	"github.com/cascade-dex/cascade/x/amm/types"
)

// ExecuteSwap trades req.OfferAmount against the pool. The pipeline is
// validate, price, split fees, assert slippage, accumulate the oracle,
// then apply: the pool record is written exactly once at the end, so any
// failure leaves state untouched.
//
// The commission comes out of the gross curve return. The LP portion stays
// in the ask reserve; the protocol portion leaves it into the per-denom
// treasury. If the pricing solver fails to converge the pool is halted
// before the error is returned.
func (k Keeper) ExecuteSwap(ctx context.Context, poolID uint64, req types.SwapRequest) (types.SwapResult, error) {
	if err := req.Validate(); err != nil {
		return types.SwapResult{}, err
	}
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapResult{}, err
	}
	if pool.Halted {
		return types.SwapResult{}, types.ErrPoolHalted.Wrapf("pool %d", poolID)
	}
	offerReserve, askReserve, offerDecimals, askDecimals, offerIsA, err := pool.OrientedReserves(req.OfferDenom, req.AskDenom)
	if err != nil {
		return types.SwapResult{}, err
	}
	if pool.IsEmpty() {
		return types.SwapResult{}, types.ErrEmptyPool.Wrapf("pool %d", poolID)
	}

	invariantBefore, err := curve.InvariantValue(pool.Curve, pool.ReserveA, pool.ReserveB, pool.AssetA.Decimals, pool.AssetB.Decimals)
	if err != nil {
		return types.SwapResult{}, k.failPricing(ctx, poolID, err)
	}

	gross, spread, err := curve.ComputeSwap(pool.Curve, curve.SwapInput{
		OfferReserve:  offerReserve,
		AskReserve:    askReserve,
		OfferAmount:   req.OfferAmount,
		OfferDecimals: offerDecimals,
		AskDecimals:   askDecimals,
	})
	if err != nil {
		return types.SwapResult{}, k.failPricing(ctx, poolID, err)
	}

	commission, protocolFee, lpFee := SplitFee(gross, pool.FeeRate, pool.ProtocolFeeShare)
	net := gross.Sub(commission)

	params := k.GetParams(ctx)
	if err := assertMaxSpread(params, req, net, spread); err != nil {
		return types.SwapResult{}, err
	}
	if req.MinReturn.IsPositive() && net.LT(req.MinReturn) {
		return types.SwapResult{}, types.ErrMaxSlippageExceeded.Wrapf(
			"return %s below requested minimum %s", net, req.MinReturn)
	}

	// Oracle accumulation prices the elapsed interval at pre-trade reserves.
	k.accumulatePoolPrices(ctx, &pool)

	askOut := net.Add(protocolFee)
	if offerIsA {
		pool.ReserveA = pool.ReserveA.Add(req.OfferAmount)
		pool.ReserveB = pool.ReserveB.Sub(askOut)
	} else {
		pool.ReserveB = pool.ReserveB.Add(req.OfferAmount)
		pool.ReserveA = pool.ReserveA.Sub(askOut)
	}

	invariantAfter, err := curve.InvariantValue(pool.Curve, pool.ReserveA, pool.ReserveB, pool.AssetA.Decimals, pool.AssetB.Decimals)
	if err != nil {
		return types.SwapResult{}, k.failPricing(ctx, poolID, err)
	}
	if invariantAfter.LT(invariantBefore) {
		return types.SwapResult{}, types.ErrInvalidPoolState.Wrapf(
			"swap would decrease the pool invariant from %s to %s", invariantBefore, invariantAfter)
	}

	if err := pool.Validate(); err != nil {
		return types.SwapResult{}, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return types.SwapResult{}, err
	}
	if err := k.accumulateProtocolFee(ctx, req.AskDenom, protocolFee); err != nil {
		return types.SwapResult{}, err
	}

	if err := k.hooks.AfterSwap(ctx, poolID, req.OfferDenom, req.AskDenom, req.OfferAmount, net); err != nil {
		return types.SwapResult{}, err
	}
	k.metrics.SwapExecuted(pool.Curve.Kind.String(), req.OfferAmount, net)
	k.logger.Info("swap executed",
		"event", types.EventTypeSwap,
		types.AttributeKeyPoolID, poolID,
		types.AttributeKeyOfferDenom, req.OfferDenom,
		types.AttributeKeyAskDenom, req.AskDenom,
		types.AttributeKeyOfferAmount, req.OfferAmount.String(),
		types.AttributeKeyReturnAmount, net.String(),
		types.AttributeKeySpread, spread.String(),
		types.AttributeKeyCommission, commission.String(),
	)
	return types.SwapResult{
		OfferAmount:       req.OfferAmount,
		ReturnAmount:      net,
		SpreadAmount:      spread,
		CommissionAmount:  commission,
		LpFeeAmount:       lpFee,
		ProtocolFeeAmount: protocolFee,
	}, nil
}

// SimulateSwap prices a swap without mutating state. Convergence failures
// surface as errors but do not halt the pool, since nothing was traded.
func (k Keeper) SimulateSwap(ctx context.Context, poolID uint64, offerDenom, askDenom string, offerAmount sdkmath.Int) (types.SwapResult, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapResult{}, err
	}
	offerReserve, askReserve, offerDecimals, askDecimals, _, err := pool.OrientedReserves(offerDenom, askDenom)
	if err != nil {
		return types.SwapResult{}, err
	}
	if pool.IsEmpty() {
		return types.SwapResult{}, types.ErrEmptyPool.Wrapf("pool %d", poolID)
	}

	gross, spread, err := curve.ComputeSwap(pool.Curve, curve.SwapInput{
		OfferReserve:  offerReserve,
		AskReserve:    askReserve,
		OfferAmount:   offerAmount,
		OfferDecimals: offerDecimals,
		AskDecimals:   askDecimals,
	})
	if err != nil {
		return types.SwapResult{}, err
	}
	commission, protocolFee, lpFee := SplitFee(gross, pool.FeeRate, pool.ProtocolFeeShare)
	return types.SwapResult{
		OfferAmount:       offerAmount,
		ReturnAmount:      gross.Sub(commission),
		SpreadAmount:      spread,
		CommissionAmount:  commission,
		LpFeeAmount:       lpFee,
		ProtocolFeeAmount: protocolFee,
	}, nil
}

// SimulateReverseSwap computes the offer amount needed to receive askAmount
// net of commission. All rounding in the inversion goes against the caller,
// so executing the returned offer yields at least askAmount.
func (k Keeper) SimulateReverseSwap(ctx context.Context, poolID uint64, offerDenom, askDenom string, askAmount sdkmath.Int) (types.SwapResult, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapResult{}, err
	}
	offerReserve, askReserve, offerDecimals, askDecimals, _, err := pool.OrientedReserves(offerDenom, askDenom)
	if err != nil {
		return types.SwapResult{}, err
	}
	if pool.IsEmpty() {
		return types.SwapResult{}, types.ErrEmptyPool.Wrapf("pool %d", poolID)
	}
	if askAmount.IsNil() || !askAmount.IsPositive() {
		return types.SwapResult{}, types.ErrInvalidAmount.Wrap("ask amount must be positive")
	}
	oneMinusFee := sdkmath.LegacyOneDec().Sub(pool.FeeRate)
	if !oneMinusFee.IsPositive() {
		return types.SwapResult{}, types.ErrInvalidPoolState.Wrapf("pool %d fee rate %s leaves no return", poolID, pool.FeeRate)
	}

	// Gross the desired net return back up through the commission.
	gross := sdkmath.LegacyNewDecFromInt(askAmount).Quo(oneMinusFee).Ceil().TruncateInt()

	offerAmount, spread, err := curve.ComputeRequiredOffer(pool.Curve, curve.SwapInput{
		OfferReserve:  offerReserve,
		AskReserve:    askReserve,
		OfferDecimals: offerDecimals,
		AskDecimals:   askDecimals,
	}, gross)
	if err != nil {
		return types.SwapResult{}, err
	}
	commission, protocolFee, lpFee := SplitFee(gross, pool.FeeRate, pool.ProtocolFeeShare)
	return types.SwapResult{
		OfferAmount:       offerAmount,
		ReturnAmount:      gross.Sub(commission),
		SpreadAmount:      spread,
		CommissionAmount:  commission,
		LpFeeAmount:       lpFee,
		ProtocolFeeAmount: protocolFee,
	}, nil
}

// failPricing converts a pricing error into a persistent halt when the
// solver failed to converge. Other pricing errors pass through unchanged.
// The pool is re-read from the store before halting: the caller's in-flight
// copy may already carry reserve mutations that must not outlive the
// failed invocation.
func (k Keeper) failPricing(ctx context.Context, poolID uint64, pricingErr error) error {
	if !errors.Is(pricingErr, types.ErrConvergenceFailure) {
		return pricingErr
	}
	k.metrics.ConvergenceFailure()
	stored, err := k.GetPool(ctx, poolID)
	if err != nil {
		return errors.Join(pricingErr, err)
	}
	if err := k.haltPool(ctx, stored, pricingErr.Error()); err != nil {
		return errors.Join(pricingErr, err)
	}
	return pricingErr
}

// assertMaxSpread enforces the caller's slippage bound. With a belief price
// the bound measures the shortfall against the expected return at that
// price; otherwise it measures the curve spread against the linear-price
// return. A caller-supplied bound may not exceed the module cap; when none
// is supplied the module default applies.
func assertMaxSpread(params types.Params, req types.SwapRequest, netReturn, spread sdkmath.Int) error {
	bound := params.DefaultMaxSpread
	if req.MaxSpread != nil {
		if req.MaxSpread.GT(params.MaxSpreadCap) {
			return types.ErrInvalidParams.Wrapf("max spread %s exceeds the cap %s", req.MaxSpread, params.MaxSpreadCap)
		}
		bound = *req.MaxSpread
	}

	if req.BeliefPrice != nil {
		expected := req.BeliefPrice.MulInt(req.OfferAmount).TruncateInt()
		if !expected.IsPositive() {
			return types.ErrInvalidAmount.Wrap("belief price implies a zero expected return")
		}
		if netReturn.GTE(expected) {
			return nil
		}
		shortfall := expected.Sub(netReturn)
		ratio := sdkmath.LegacyNewDecFromInt(shortfall).QuoInt(expected)
		if ratio.GT(bound) {
			return types.ErrMaxSlippageExceeded.Wrapf(
				"spread %s versus belief price exceeds bound %s", ratio, bound)
		}
		return nil
	}

	base := netReturn.Add(spread)
	if !base.IsPositive() {
		return nil
	}
	ratio := sdkmath.LegacyNewDecFromInt(spread).QuoInt(base)
	if ratio.GT(bound) {
		return types.ErrMaxSlippageExceeded.Wrapf("spread ratio %s exceeds bound %s", ratio, bound)
	}
	return nil
}
