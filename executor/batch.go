package executor

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
)

// Batch is an engine that turns every invocation into a cp-swap instruction,
// in call order, for inclusion in one transaction.
type Batch struct {
	programID    solana.PublicKey
	instructions []solana.Instruction
}

func NewBatch(programID solana.PublicKey) *Batch {
	return &Batch{programID: programID}
}

func (b *Batch) Initialize(
	_ context.Context,
	accounts *cpswap.InitializeInstructionAccounts,
	args *cpswap.InitializeInstructionArgs,
) error {
	b.instructions = append(b.instructions, cpswap.NewInitializeInstruction(b.programID, accounts, args))
	return nil
}

func (b *Batch) Deposit(
	_ context.Context,
	accounts *cpswap.DepositInstructionAccounts,
	args *cpswap.DepositInstructionArgs,
) error {
	b.instructions = append(b.instructions, cpswap.NewDepositInstruction(b.programID, accounts, args))
	return nil
}

func (b *Batch) Withdraw(
	_ context.Context,
	accounts *cpswap.WithdrawInstructionAccounts,
	args *cpswap.WithdrawInstructionArgs,
) error {
	b.instructions = append(b.instructions, cpswap.NewWithdrawInstruction(b.programID, accounts, args))
	return nil
}

func (b *Batch) Instructions() []solana.Instruction {
	return b.instructions
}

func (b *Batch) Len() int {
	return len(b.instructions)
}
