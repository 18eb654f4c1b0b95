package types

// Event types for the AMM module
const (
	EventTypeCreatePool           = "create_pool"
	EventTypeProvideLiquidity     = "provide_liquidity"
	EventTypeWithdrawLiquidity    = "withdraw_liquidity"
	EventTypeSwap                 = "swap"
	EventTypePoolHalted           = "pool_halted"
	EventTypePoolResumed          = "pool_resumed"
	EventTypeUpdatePoolFees       = "update_pool_fees"
	EventTypeWithdrawProtocolFees = "withdraw_protocol_fees"

	AttributeKeyPoolID       = "pool_id"
	AttributeKeyOfferDenom   = "offer_denom"
	AttributeKeyAskDenom     = "ask_denom"
	AttributeKeyOfferAmount  = "offer_amount"
	AttributeKeyReturnAmount = "return_amount"
	AttributeKeySpread       = "spread_amount"
	AttributeKeyCommission   = "commission_amount"
	AttributeKeyShares       = "shares"
	AttributeKeyReason       = "reason"
)
