package interaction

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

// NewInitializeInstruction builds the program's initialize instruction: the
// cp-swap program followed by the cp-swap initialize accounts.
func NewInitializeInstruction(
	programID, cpSwapProgram solana.PublicKey,
	accounts *cpswap.InitializeInstructionAccounts,
	args types.InitializeArgs,
) *solana.GenericInstruction {
	inner := cpswap.NewInitializeInstruction(cpSwapProgram, accounts, &cpswap.InitializeInstructionArgs{})
	return solana.NewInstruction(
		programID,
		prepend(cpSwapProgram, inner.Accounts()),
		encode(InitializeDiscriminator, [3]uint64{args.InitAmount0, args.InitAmount1, args.OpenTime}),
	)
}

func NewAddLiquidityInstruction(
	programID, cpSwapProgram solana.PublicKey,
	accounts *cpswap.DepositInstructionAccounts,
	args types.LiquidityArgs,
) *solana.GenericInstruction {
	inner := cpswap.NewDepositInstruction(cpSwapProgram, accounts, &cpswap.DepositInstructionArgs{})
	return solana.NewInstruction(
		programID,
		prepend(cpSwapProgram, inner.Accounts()),
		encode(AddLiquidityDiscriminator, liquidityValues(args)),
	)
}

func NewRemoveLiquidityInstruction(
	programID, cpSwapProgram solana.PublicKey,
	accounts *cpswap.WithdrawInstructionAccounts,
	args types.LiquidityArgs,
) *solana.GenericInstruction {
	inner := cpswap.NewWithdrawInstruction(cpSwapProgram, accounts, &cpswap.WithdrawInstructionArgs{})
	return solana.NewInstruction(
		programID,
		prepend(cpSwapProgram, inner.Accounts()),
		encode(RemoveLiquidityDiscriminator, liquidityValues(args)),
	)
}

// NewAddAndRemoveLiquidityInstruction takes the remove liquidity account list,
// which covers both legs.
func NewAddAndRemoveLiquidityInstruction(
	programID, cpSwapProgram solana.PublicKey,
	accounts *cpswap.WithdrawInstructionAccounts,
	args types.LiquidityArgs,
) *solana.GenericInstruction {
	inner := cpswap.NewWithdrawInstruction(cpSwapProgram, accounts, &cpswap.WithdrawInstructionArgs{})
	return solana.NewInstruction(
		programID,
		prepend(cpSwapProgram, inner.Accounts()),
		encode(AddAndRemoveLiquidityDiscriminator, liquidityValues(args)),
	)
}

// DecodeInstruction identifies an instruction of the program by its
// discriminator and returns it as a request. Only the arguments are filled in.
func DecodeInstruction(data []byte) (types.Request, error) {
	discriminator, values, err := decode(data)
	if err != nil {
		return types.Request{}, err
	}

	liquidity := types.LiquidityArgs{
		LpTokenAmount:       values[0],
		MaximumToken0Amount: values[1],
		MaximumToken1Amount: values[2],
	}

	switch discriminator {
	case InitializeDiscriminator:
		return types.Request{
			Operation: types.OperationInitialize,
			InitializeArgs: types.InitializeArgs{
				InitAmount0: values[0],
				InitAmount1: values[1],
				OpenTime:    values[2],
			},
		}, nil
	case AddLiquidityDiscriminator:
		return types.Request{Operation: types.OperationAddLiquidity, LiquidityArgs: liquidity}, nil
	case RemoveLiquidityDiscriminator:
		return types.Request{Operation: types.OperationRemoveLiquidity, LiquidityArgs: liquidity}, nil
	case AddAndRemoveLiquidityDiscriminator:
		return types.Request{Operation: types.OperationAddAndRemoveLiquidity, LiquidityArgs: liquidity}, nil
	default:
		return types.Request{}, fmt.Errorf("%w: unknown discriminator %x", ErrInvalidInstructionData, discriminator[:])
	}
}

func liquidityValues(args types.LiquidityArgs) [3]uint64 {
	return [3]uint64{args.LpTokenAmount, args.MaximumToken0Amount, args.MaximumToken1Amount}
}
