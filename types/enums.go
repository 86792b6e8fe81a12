package types

// Operation tags one request to the liquidity interaction layer.
type Operation uint8

const (
	OperationInitialize Operation = iota
	OperationAddLiquidity
	OperationRemoveLiquidity
	OperationAddAndRemoveLiquidity
)

func (op Operation) String() string {
	switch op {
	case OperationInitialize:
		return "initialize"
	case OperationAddLiquidity:
		return "add_liquidity"
	case OperationRemoveLiquidity:
		return "remove_liquidity"
	case OperationAddAndRemoveLiquidity:
		return "add_and_remove_liquidity"
	default:
		return "unknown"
	}
}

// EntryPoint is a cp-swap instruction invoked on behalf of the caller.
type EntryPoint uint8

const (
	EntryPointInitialize EntryPoint = iota
	EntryPointDeposit
	EntryPointWithdraw
)

func (e EntryPoint) String() string {
	switch e {
	case EntryPointInitialize:
		return "initialize"
	case EntryPointDeposit:
		return "deposit"
	case EntryPointWithdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}
