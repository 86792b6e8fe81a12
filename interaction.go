package liquidityinteraction

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

const commitStage = "commit"

// LiquidityInteraction validates caller supplied accounts and routes the four
// liquidity operations to the cp-swap engine.
type LiquidityInteraction struct {
	cpSwapProgram solana.PublicKey
	executor      Executor
	log           *zap.Logger
}

type Option func(*LiquidityInteraction)

// WithCpSwapProgram overrides the engine program identity, e.g. for devnet.
func WithCpSwapProgram(programID solana.PublicKey) Option {
	return func(li *LiquidityInteraction) {
		li.cpSwapProgram = programID
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(li *LiquidityInteraction) {
		li.log = log
	}
}

func NewLiquidityInteraction(executor Executor, opts ...Option) *LiquidityInteraction {
	li := &LiquidityInteraction{
		cpSwapProgram: CpSwapProgramId,
		executor:      executor,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(li)
	}
	return li
}

// CpSwapProgram returns the engine program identity accounts are validated against.
func (li *LiquidityInteraction) CpSwapProgram() solana.PublicKey {
	return li.cpSwapProgram
}

// Execute dispatches a request by its operation tag.
func (li *LiquidityInteraction) Execute(ctx context.Context, req types.Request) error {
	switch req.Operation {
	case types.OperationInitialize:
		return li.Initialize(ctx, req.InitializeAccounts, req.InitializeArgs)
	case types.OperationAddLiquidity:
		return li.AddLiquidity(ctx, req.LiquidityAccounts, req.LiquidityArgs)
	case types.OperationRemoveLiquidity:
		return li.RemoveLiquidity(ctx, req.LiquidityAccounts, req.LiquidityArgs)
	case types.OperationAddAndRemoveLiquidity:
		return li.AddAndRemoveLiquidity(ctx, req.LiquidityAccounts, req.LiquidityArgs)
	default:
		return fmt.Errorf("unknown operation: %d", req.Operation)
	}
}

// Initialize bootstraps a pool. The three values reach the engine unchanged;
// rules on initial reserves or open time are the engine's.
func (li *LiquidityInteraction) Initialize(
	ctx context.Context,
	accounts *types.InitializeAccounts,
	args types.InitializeArgs,
) error {
	const op = types.OperationInitialize

	if err := li.reject(op, ValidateInitializeAccounts(li.cpSwapProgram, accounts)); err != nil {
		return err
	}

	li.log.Debug("invoking engine",
		zap.Stringer("operation", op),
		zap.Stringer("pool", accounts.PoolState),
		zap.Uint64("init_amount_0", args.InitAmount0),
		zap.Uint64("init_amount_1", args.InitAmount1),
		zap.Uint64("open_time", args.OpenTime),
	)

	return li.atomically(ctx, op, func(engine Engine) error {
		return invoke(op, types.EntryPointInitialize, engine.Initialize(
			ctx,
			ToInitializeAccounts(accounts),
			&cpswap.InitializeInstructionArgs{
				InitAmount0: args.InitAmount0,
				InitAmount1: args.InitAmount1,
				OpenTime:    args.OpenTime,
			},
		))
	})
}

// AddLiquidity deposits into the pool. Required token amounts are computed and
// bounded by the engine; the caller's ceilings are forwarded unchanged.
func (li *LiquidityInteraction) AddLiquidity(
	ctx context.Context,
	accounts *types.LiquidityAccounts,
	args types.LiquidityArgs,
) error {
	const op = types.OperationAddLiquidity

	if err := li.reject(op, ValidateLiquidityAccounts(li.cpSwapProgram, accounts, false)); err != nil {
		return err
	}
	li.logLiquidity(op, accounts, args)

	return li.atomically(ctx, op, func(engine Engine) error {
		return li.deposit(ctx, op, engine, accounts, args)
	})
}

// RemoveLiquidity withdraws from the pool. The two token bounds act as minimum
// outputs and are forwarded unchanged.
func (li *LiquidityInteraction) RemoveLiquidity(
	ctx context.Context,
	accounts *types.LiquidityAccounts,
	args types.LiquidityArgs,
) error {
	const op = types.OperationRemoveLiquidity

	if err := li.reject(op, ValidateLiquidityAccounts(li.cpSwapProgram, accounts, true)); err != nil {
		return err
	}
	li.logLiquidity(op, accounts, args)

	return li.atomically(ctx, op, func(engine Engine) error {
		return li.withdraw(ctx, op, engine, accounts, args)
	})
}

// AddAndRemoveLiquidity withdraws then deposits with the same bounds inside a
// single unit of execution, so no other transaction observes the state
// between the two legs. The accounts are validated once for both legs.
//
// A failing withdraw leg returns before the deposit leg is issued, and the
// executor discards whatever the unit had done.
func (li *LiquidityInteraction) AddAndRemoveLiquidity(
	ctx context.Context,
	accounts *types.LiquidityAccounts,
	args types.LiquidityArgs,
) error {
	const op = types.OperationAddAndRemoveLiquidity

	if err := li.reject(op, ValidateLiquidityAccounts(li.cpSwapProgram, accounts, true)); err != nil {
		return err
	}
	li.logLiquidity(op, accounts, args)

	return li.atomically(ctx, op, func(engine Engine) error {
		if err := li.withdraw(ctx, op, engine, accounts, args); err != nil {
			return err
		}
		return li.deposit(ctx, op, engine, accounts, args)
	})
}

func (li *LiquidityInteraction) deposit(
	ctx context.Context,
	op types.Operation,
	engine Engine,
	accounts *types.LiquidityAccounts,
	args types.LiquidityArgs,
) error {
	return invoke(op, types.EntryPointDeposit, engine.Deposit(
		ctx,
		ToDepositAccounts(accounts),
		&cpswap.DepositInstructionArgs{
			LpTokenAmount:       args.LpTokenAmount,
			MaximumToken0Amount: args.MaximumToken0Amount,
			MaximumToken1Amount: args.MaximumToken1Amount,
		},
	))
}

func (li *LiquidityInteraction) withdraw(
	ctx context.Context,
	op types.Operation,
	engine Engine,
	accounts *types.LiquidityAccounts,
	args types.LiquidityArgs,
) error {
	return invoke(op, types.EntryPointWithdraw, engine.Withdraw(
		ctx,
		ToWithdrawAccounts(accounts),
		&cpswap.WithdrawInstructionArgs{
			LpTokenAmount:       args.LpTokenAmount,
			MinimumToken0Amount: args.MaximumToken0Amount,
			MinimumToken1Amount: args.MaximumToken1Amount,
		},
	))
}

func (li *LiquidityInteraction) reject(op types.Operation, vs []Violation) error {
	err := newConstraintViolation(op, vs)
	if err != nil {
		li.log.Warn("request rejected",
			zap.Stringer("operation", op),
			zap.Int("violations", len(vs)),
			zap.Error(err),
		)
	}
	return err
}

// atomically runs fn in one unit of execution. Errors raised outside of an
// engine invocation are attributed to the commit.
func (li *LiquidityInteraction) atomically(ctx context.Context, op types.Operation, fn func(Engine) error) error {
	err := li.executor.Atomically(ctx, fn)
	if err == nil {
		return nil
	}

	var failure *ExternalEngineFailure
	if !errors.As(err, &failure) {
		failure = &ExternalEngineFailure{
			Operation: op,
			Stage:     commitStage,
			Err:       err,
		}
	}

	li.log.Warn("engine invocation failed",
		zap.Stringer("operation", op),
		zap.String("stage", failure.Stage),
		zap.Error(failure.Err),
	)
	return failure
}

func (li *LiquidityInteraction) logLiquidity(op types.Operation, accounts *types.LiquidityAccounts, args types.LiquidityArgs) {
	li.log.Debug("invoking engine",
		zap.Stringer("operation", op),
		zap.Stringer("pool", accounts.PoolState),
		zap.Stringer("owner", accounts.Owner),
		zap.Uint64("lp_token_amount", args.LpTokenAmount),
		zap.Uint64("maximum_token_0_amount", args.MaximumToken0Amount),
		zap.Uint64("maximum_token_1_amount", args.MaximumToken1Amount),
	)
}

func invoke(op types.Operation, entry types.EntryPoint, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalEngineFailure{
		Operation: op,
		Stage:     entry.String(),
		Err:       err,
	}
}

// ToDepositAccounts maps a validated liquidity account set to the cp-swap deposit accounts.
func ToDepositAccounts(accounts *types.LiquidityAccounts) *cpswap.DepositInstructionAccounts {
	return &cpswap.DepositInstructionAccounts{
		Owner:            accounts.Owner,
		Authority:        accounts.Authority,
		PoolState:        accounts.PoolState,
		OwnerLpToken:     accounts.OwnerLpToken.Address,
		Token0Account:    accounts.Token0Account.Address,
		Token1Account:    accounts.Token1Account.Address,
		Token0Vault:      accounts.Token0Vault.Address,
		Token1Vault:      accounts.Token1Vault.Address,
		TokenProgram:     accounts.TokenProgram,
		TokenProgram2022: accounts.TokenProgram2022,
		Vault0Mint:       accounts.Vault0Mint.Address,
		Vault1Mint:       accounts.Vault1Mint.Address,
		LpMint:           accounts.LpMint.Address,
	}
}

// ToWithdrawAccounts maps a validated liquidity account set to the cp-swap withdraw accounts.
func ToWithdrawAccounts(accounts *types.LiquidityAccounts) *cpswap.WithdrawInstructionAccounts {
	return &cpswap.WithdrawInstructionAccounts{
		Owner:            accounts.Owner,
		Authority:        accounts.Authority,
		PoolState:        accounts.PoolState,
		OwnerLpToken:     accounts.OwnerLpToken.Address,
		Token0Account:    accounts.Token0Account.Address,
		Token1Account:    accounts.Token1Account.Address,
		Token0Vault:      accounts.Token0Vault.Address,
		Token1Vault:      accounts.Token1Vault.Address,
		TokenProgram:     accounts.TokenProgram,
		TokenProgram2022: accounts.TokenProgram2022,
		Vault0Mint:       accounts.Vault0Mint.Address,
		Vault1Mint:       accounts.Vault1Mint.Address,
		LpMint:           accounts.LpMint.Address,
		MemoProgram:      accounts.MemoProgram,
	}
}

func ToInitializeAccounts(accounts *types.InitializeAccounts) *cpswap.InitializeInstructionAccounts {
	return &cpswap.InitializeInstructionAccounts{
		Creator:                accounts.Creator,
		AmmConfig:              accounts.AmmConfig,
		Authority:              accounts.Authority,
		PoolState:              accounts.PoolState,
		Token0Mint:             accounts.Token0Mint.Address,
		Token1Mint:             accounts.Token1Mint.Address,
		LpMint:                 accounts.LpMint,
		CreatorToken0:          accounts.CreatorToken0.Address,
		CreatorToken1:          accounts.CreatorToken1.Address,
		CreatorLpToken:         accounts.CreatorLpToken,
		Token0Vault:            accounts.Token0Vault,
		Token1Vault:            accounts.Token1Vault,
		CreatePoolFee:          accounts.CreatePoolFee,
		ObservationState:       accounts.ObservationState,
		TokenProgram:           accounts.TokenProgram,
		Token0Program:          accounts.Token0Program,
		Token1Program:          accounts.Token1Program,
		AssociatedTokenProgram: accounts.AssociatedTokenProgram,
		SystemProgram:          accounts.SystemProgram,
		Rent:                   accounts.Rent,
	}
}
