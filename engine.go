package liquidityinteraction

import (
	"context"

	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
)

// Engine is the cp-swap program as seen by this package: exactly the three
// entry points the interaction layer invokes.
type Engine interface {
	Initialize(ctx context.Context, accounts *cpswap.InitializeInstructionAccounts, args *cpswap.InitializeInstructionArgs) error
	Deposit(ctx context.Context, accounts *cpswap.DepositInstructionAccounts, args *cpswap.DepositInstructionArgs) error
	Withdraw(ctx context.Context, accounts *cpswap.WithdrawInstructionAccounts, args *cpswap.WithdrawInstructionArgs) error
}

// Executor provides the host unit of execution. Every invocation made on the
// Engine passed to fn is committed together when fn returns nil, and none of
// them has a lasting effect when fn or the commit fails. The combined
// add-and-remove operation relies on this instead of compensating by hand.
type Executor interface {
	Atomically(ctx context.Context, fn func(Engine) error) error
}
