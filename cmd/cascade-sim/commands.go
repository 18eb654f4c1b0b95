package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cascade-dex/cascade/x/amm/types"
)

func printJSON(v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(bz))
	return err
}

func parseInt(s, name string) (sdkmath.Int, error) {
	v, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid %s amount: %q", name, s)
	}
	return v, nil
}

func newCreatePoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool <denom-a> <decimals-a> <denom-b> <decimals-b>",
		Short: "Register an empty pool for an asset pair",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, cfg, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			decA, err := parseUint32(args[1])
			if err != nil {
				return err
			}
			decB, err := parseUint32(args[3])
			if err != nil {
				return err
			}
			feeStr, _ := cmd.Flags().GetString("fee-rate")
			fee, err := sdkmath.LegacyNewDecFromStr(feeStr)
			if err != nil {
				return fmt.Errorf("invalid fee rate: %w", err)
			}
			shareStr, _ := cmd.Flags().GetString("protocol-share")
			share, err := sdkmath.LegacyNewDecFromStr(shareStr)
			if err != nil {
				return fmt.Errorf("invalid protocol share: %w", err)
			}
			amp, _ := cmd.Flags().GetUint64("amplification")

			curve := types.Curve{Kind: types.CurveConstantProduct}
			if amp > 0 {
				curve = types.Curve{Kind: types.CurveStableSwap, Amplification: amp}
			}

			poolID, err := k.CreatePool(context.Background(), cfg.Actor,
				types.Asset{Denom: args[0], Decimals: decA},
				types.Asset{Denom: args[2], Decimals: decB},
				curve, fee, share)
			if err != nil {
				return err
			}
			return printJSON(map[string]uint64{"pool_id": poolID})
		},
	}
	cmd.Flags().String("fee-rate", "0.003", "commission rate on the gross return")
	cmd.Flags().String("protocol-share", "0", "protocol portion of the commission")
	cmd.Flags().Uint64("amplification", 0, "stableswap amplification; 0 selects constant product")
	return cmd
}

func newProvideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provide <pool-id> <amount-a> <amount-b>",
		Short: "Deposit both assets and mint shares",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			amountA, err := parseInt(args[1], "asset A")
			if err != nil {
				return err
			}
			amountB, err := parseInt(args[2], "asset B")
			if err != nil {
				return err
			}
			minSharesStr, _ := cmd.Flags().GetString("min-shares")
			minShares, err := parseInt(minSharesStr, "min shares")
			if err != nil {
				return err
			}

			shares, err := k.ProvideLiquidity(context.Background(), poolID, amountA, amountB, minShares)
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"shares": shares.String()})
		},
	}
	cmd.Flags().String("min-shares", "0", "minimum shares to accept")
	return cmd
}

func newWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <pool-id> <shares>",
		Short: "Burn shares for a proportional payout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			shares, err := parseInt(args[1], "shares")
			if err != nil {
				return err
			}

			amountA, amountB, err := k.WithdrawLiquidity(context.Background(), poolID, shares)
			if err != nil {
				return err
			}
			return printJSON(map[string]string{
				"amount_a": amountA.String(),
				"amount_b": amountB.String(),
			})
		},
	}
}

func newSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap <pool-id> <offer-denom> <offer-amount> <ask-denom>",
		Short: "Execute a swap against a pool",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			offerAmount, err := parseInt(args[2], "offer")
			if err != nil {
				return err
			}
			minReturnStr, _ := cmd.Flags().GetString("min-return")
			minReturn, err := parseInt(minReturnStr, "min return")
			if err != nil {
				return err
			}

			req := types.SwapRequest{
				OfferDenom:  args[1],
				AskDenom:    args[3],
				OfferAmount: offerAmount,
				MinReturn:   minReturn,
			}
			if s, _ := cmd.Flags().GetString("belief-price"); s != "" {
				belief, err := sdkmath.LegacyNewDecFromStr(s)
				if err != nil {
					return fmt.Errorf("invalid belief price: %w", err)
				}
				req.BeliefPrice = &belief
			}
			if s, _ := cmd.Flags().GetString("max-spread"); s != "" {
				spread, err := sdkmath.LegacyNewDecFromStr(s)
				if err != nil {
					return fmt.Errorf("invalid max spread: %w", err)
				}
				req.MaxSpread = &spread
			}

			res, err := k.ExecuteSwap(context.Background(), poolID, req)
			if err != nil {
				return err
			}
			return printSwapResult(res)
		},
	}
	cmd.Flags().String("min-return", "0", "minimum net return to accept")
	cmd.Flags().String("belief-price", "", "expected ask-per-offer price")
	cmd.Flags().String("max-spread", "", "maximum tolerated spread ratio")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <pool-id> <offer-denom> <offer-amount> <ask-denom>",
		Short: "Price a swap without executing it",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			offerAmount, err := parseInt(args[2], "offer")
			if err != nil {
				return err
			}
			res, err := k.SimulateSwap(context.Background(), poolID, args[1], args[3], offerAmount)
			if err != nil {
				return err
			}
			return printSwapResult(res)
		},
	}
}

func newSimulateReverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate-reverse <pool-id> <offer-denom> <ask-denom> <ask-amount>",
		Short: "Quote the offer needed for a desired net return",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			askAmount, err := parseInt(args[3], "ask")
			if err != nil {
				return err
			}
			res, err := k.SimulateReverseSwap(context.Background(), poolID, args[1], args[2], askAmount)
			if err != nil {
				return err
			}
			return printSwapResult(res)
		},
	}
}

func newPricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices <pool-id>",
		Short: "Read the pool's cumulative price accumulators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			reading, err := k.QueryCumulativePrices(context.Background(), poolID)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"pool_id":            reading.PoolID,
				"price_cumulative_a": reading.PriceCumulativeA.String(),
				"price_cumulative_b": reading.PriceCumulativeB.String(),
				"last_update_unix":   reading.LastUpdateUnix,
			})
		},
	}
}

func newPoolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "List all pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			pools, err := k.GetAllPools(context.Background())
			if err != nil {
				return err
			}
			return printJSON(pools)
		},
	}
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <pool-id>",
		Short: "Resume a halted pool (authority only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, cfg, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			return k.ResumePool(context.Background(), cfg.Actor, poolID)
		},
	}
}

func newFeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fees",
		Short: "List accumulated protocol fees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			fees, err := k.GetProtocolFees(context.Background())
			if err != nil {
				return err
			}
			return printJSON(fees)
		},
	}
}

func newWithdrawFeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw-fees <denom>",
		Short: "Drain the protocol fee treasury for a denom (authority only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, cfg, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			amount, err := k.WithdrawProtocolFees(context.Background(), cfg.Actor, args[0])
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"denom": args[0], "amount": amount.String()})
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the full module state as genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, _, closer, err := openKeeper(cmd)
			if err != nil {
				return err
			}
			defer closer()

			state, err := k.ExportGenesis(context.Background())
			if err != nil {
				return err
			}
			return printJSON(state)
		},
	}
}

func printSwapResult(res types.SwapResult) error {
	return printJSON(map[string]string{
		"offer_amount":        res.OfferAmount.String(),
		"return_amount":       res.ReturnAmount.String(),
		"spread_amount":       res.SpreadAmount.String(),
		"commission_amount":   res.CommissionAmount.String(),
		"lp_fee_amount":       res.LpFeeAmount.String(),
		"protocol_fee_amount": res.ProtocolFeeAmount.String(),
	})
}

func parsePoolID(s string) (uint64, error) {
	var id uint64
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil || id == 0 {
		return 0, fmt.Errorf("invalid pool id: %q", s)
	}
	return id, nil
}

func parseUint32(s string) (uint32, error) {
	var v uint32
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("invalid decimals: %q", s)
	}
	return v, nil
}
