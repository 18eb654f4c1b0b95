package keeper

import (
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the AMM module. All recording
// methods are nil-safe so the keeper works without metrics attached.
type Metrics struct {
	// Swap metrics
	SwapsTotal *prometheus.CounterVec
	SwapVolume *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdds    prometheus.Counter
	LiquidityRemoves prometheus.Counter

	// Pool metrics
	PoolCreations *prometheus.CounterVec
	PoolHalts     prometheus.Counter

	// Solver metrics
	ConvergenceFailures prometheus.Counter

	// Oracle metrics
	OracleUpdates prometheus.Counter
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *Metrics
)

// NewMetrics creates and registers AMM metrics (singleton pattern)
func NewMetrics() *Metrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"curve"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap volume in base units",
				},
				[]string{"curve", "side"},
			),
			LiquidityAdds: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "liquidity_adds_total",
					Help:      "Total liquidity provisions",
				},
			),
			LiquidityRemoves: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "liquidity_removes_total",
					Help:      "Total liquidity withdrawals",
				},
			),
			PoolCreations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "pool_creations_total",
					Help:      "Total number of pools created",
				},
				[]string{"curve"},
			),
			PoolHalts: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "pool_halts_total",
					Help:      "Total pools halted after pricing failures",
				},
			),
			ConvergenceFailures: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "convergence_failures_total",
					Help:      "Invariant solver iteration budget exhaustions",
				},
			),
			OracleUpdates: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "oracle_updates_total",
					Help:      "Cumulative price accumulator advances",
				},
			),
		}
	})
	return ammMetrics
}

// GetMetrics returns the singleton AMM metrics instance
func GetMetrics() *Metrics {
	if ammMetrics == nil {
		return NewMetrics()
	}
	return ammMetrics
}

// SwapExecuted records a completed swap.
func (m *Metrics) SwapExecuted(curveKind string, offerAmount, returnAmount sdkmath.Int) {
	if m == nil {
		return
	}
	m.SwapsTotal.WithLabelValues(curveKind).Inc()
	if offerAmount.IsInt64() {
		m.SwapVolume.WithLabelValues(curveKind, "offer").Add(float64(offerAmount.Int64()))
	}
	if returnAmount.IsInt64() {
		m.SwapVolume.WithLabelValues(curveKind, "return").Add(float64(returnAmount.Int64()))
	}
}

// LiquidityChanged records a provision or withdrawal.
func (m *Metrics) LiquidityChanged(isAdd bool) {
	if m == nil {
		return
	}
	if isAdd {
		m.LiquidityAdds.Inc()
	} else {
		m.LiquidityRemoves.Inc()
	}
}

// PoolCreated records a pool creation.
func (m *Metrics) PoolCreated(curveKind string) {
	if m == nil {
		return
	}
	m.PoolCreations.WithLabelValues(curveKind).Inc()
}

// PoolHalted records a pool halt.
func (m *Metrics) PoolHalted() {
	if m == nil {
		return
	}
	m.PoolHalts.Inc()
}

// ConvergenceFailure records a solver iteration budget exhaustion.
func (m *Metrics) ConvergenceFailure() {
	if m == nil {
		return
	}
	m.ConvergenceFailures.Inc()
}

// OracleUpdated records a cumulative price advance.
func (m *Metrics) OracleUpdated() {
	if m == nil {
		return
	}
	m.OracleUpdates.Inc()
}
