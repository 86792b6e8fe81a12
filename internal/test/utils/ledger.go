package testUtils

import (
	"context"
	"errors"
	"maps"

	"github.com/gagliardetto/solana-go"

	liquidityinteraction "github.com/RequescoS/raydium-liquidity-interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// Call is one engine invocation as the engine received it.
type Call struct {
	EntryPoint types.EntryPoint
	Initialize *cpswap.InitializeInstructionArgs
	Deposit    *cpswap.DepositInstructionArgs
	Withdraw   *cpswap.WithdrawInstructionArgs

	InitializeAccounts *cpswap.InitializeInstructionAccounts
	DepositAccounts    *cpswap.DepositInstructionAccounts
	WithdrawAccounts   *cpswap.WithdrawInstructionAccounts
}

// LedgerExecutor is an in-memory host: token balances are staged per unit and
// only replace the ledger when the whole unit succeeds. Calls keeps every
// invocation issued, committed or not.
type LedgerExecutor struct {
	Balances map[solana.PublicKey]uint64
	Calls    []Call
	Commits  int

	FailInitialize error
	FailDeposit    error
	FailWithdraw   error
	FailCommit     error
}

func NewLedgerExecutor(balances map[solana.PublicKey]uint64) *LedgerExecutor {
	if balances == nil {
		balances = map[solana.PublicKey]uint64{}
	}
	return &LedgerExecutor{Balances: balances}
}

// NewFixtureLedger seeds the ledger with the fixture's token balances.
func NewFixtureLedger(f *Fixture) *LedgerExecutor {
	accounts := f.LiquidityAccounts()
	balances := map[solana.PublicKey]uint64{}
	for _, ta := range []types.TokenAccount{
		accounts.OwnerLpToken,
		accounts.Token0Account,
		accounts.Token1Account,
		accounts.Token0Vault,
		accounts.Token1Vault,
	} {
		balances[ta.Address] = ta.Amount
	}
	return NewLedgerExecutor(balances)
}

func (e *LedgerExecutor) Atomically(_ context.Context, fn func(liquidityinteraction.Engine) error) error {
	staged := &ledgerEngine{
		exec:     e,
		balances: maps.Clone(e.Balances),
	}
	if err := fn(staged); err != nil {
		return err
	}
	if e.FailCommit != nil {
		return e.FailCommit
	}
	e.Balances = staged.balances
	e.Commits++
	return nil
}

// EntryPoints lists the entry points invoked, in order.
func (e *LedgerExecutor) EntryPoints() []types.EntryPoint {
	out := make([]types.EntryPoint, 0, len(e.Calls))
	for _, c := range e.Calls {
		out = append(out, c.EntryPoint)
	}
	return out
}

type ledgerEngine struct {
	exec     *LedgerExecutor
	balances map[solana.PublicKey]uint64
}

func (l *ledgerEngine) Initialize(
	_ context.Context,
	accounts *cpswap.InitializeInstructionAccounts,
	args *cpswap.InitializeInstructionArgs,
) error {
	l.exec.Calls = append(l.exec.Calls, Call{
		EntryPoint:         types.EntryPointInitialize,
		Initialize:         args,
		InitializeAccounts: accounts,
	})
	if l.exec.FailInitialize != nil {
		return l.exec.FailInitialize
	}

	if err := l.move(accounts.CreatorToken0, accounts.Token0Vault, args.InitAmount0); err != nil {
		return err
	}
	if err := l.move(accounts.CreatorToken1, accounts.Token1Vault, args.InitAmount1); err != nil {
		return err
	}
	l.balances[accounts.CreatorLpToken] += args.InitAmount0
	return nil
}

// Deposit takes the maximum amounts as the required amounts.
func (l *ledgerEngine) Deposit(
	_ context.Context,
	accounts *cpswap.DepositInstructionAccounts,
	args *cpswap.DepositInstructionArgs,
) error {
	l.exec.Calls = append(l.exec.Calls, Call{
		EntryPoint:      types.EntryPointDeposit,
		Deposit:         args,
		DepositAccounts: accounts,
	})
	if l.exec.FailDeposit != nil {
		return l.exec.FailDeposit
	}

	if err := l.move(accounts.Token0Account, accounts.Token0Vault, args.MaximumToken0Amount); err != nil {
		return err
	}
	if err := l.move(accounts.Token1Account, accounts.Token1Vault, args.MaximumToken1Amount); err != nil {
		return err
	}
	l.balances[accounts.OwnerLpToken] += args.LpTokenAmount
	return nil
}

// Withdraw pays out exactly the minimum amounts.
func (l *ledgerEngine) Withdraw(
	_ context.Context,
	accounts *cpswap.WithdrawInstructionAccounts,
	args *cpswap.WithdrawInstructionArgs,
) error {
	l.exec.Calls = append(l.exec.Calls, Call{
		EntryPoint:       types.EntryPointWithdraw,
		Withdraw:         args,
		WithdrawAccounts: accounts,
	})
	if l.exec.FailWithdraw != nil {
		return l.exec.FailWithdraw
	}

	if l.balances[accounts.OwnerLpToken] < args.LpTokenAmount {
		return ErrInsufficientFunds
	}
	l.balances[accounts.OwnerLpToken] -= args.LpTokenAmount

	if err := l.move(accounts.Token0Vault, accounts.Token0Account, args.MinimumToken0Amount); err != nil {
		return err
	}
	return l.move(accounts.Token1Vault, accounts.Token1Account, args.MinimumToken1Amount)
}

func (l *ledgerEngine) move(from, to solana.PublicKey, amount uint64) error {
	if l.balances[from] < amount {
		return ErrInsufficientFunds
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}
