package executor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liquidityinteraction "github.com/RequescoS/raydium-liquidity-interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
	"github.com/RequescoS/raydium-liquidity-interaction/executor"
)

type fakeRPC struct {
	simulated []*solana.Transaction
	simErr    interface{}
}

func (f *fakeRPC) GetLatestBlockhash(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash(solana.NewWallet().PublicKey())},
	}, nil
}

func (f *fakeRPC) SimulateTransaction(_ context.Context, tx *solana.Transaction) (*rpc.SimulateTransactionResponse, error) {
	f.simulated = append(f.simulated, tx)
	return &rpc.SimulateTransactionResponse{
		Value: &rpc.SimulateTransactionResult{
			Err:  f.simErr,
			Logs: []string{"Program log: ok"},
		},
	}, nil
}

type recordingSender struct {
	sent []*solana.Transaction
}

func (r *recordingSender) send(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	r.sent = append(r.sent, tx)
	return tx.Signatures[0], nil
}

func liquidityArgs(owner solana.PublicKey) (*cpswap.WithdrawInstructionAccounts, *cpswap.DepositInstructionAccounts) {
	key := func() solana.PublicKey { return solana.NewWallet().PublicKey() }
	withdraw := &cpswap.WithdrawInstructionAccounts{
		Owner:            owner,
		Authority:        key(),
		PoolState:        key(),
		OwnerLpToken:     key(),
		Token0Account:    key(),
		Token1Account:    key(),
		Token0Vault:      key(),
		Token1Vault:      key(),
		TokenProgram:     solana.TokenProgramID,
		TokenProgram2022: solana.Token2022ProgramID,
		Vault0Mint:       key(),
		Vault1Mint:       key(),
		LpMint:           key(),
		MemoProgram:      solana.MemoProgramID,
	}
	deposit := &cpswap.DepositInstructionAccounts{
		Owner:            withdraw.Owner,
		Authority:        withdraw.Authority,
		PoolState:        withdraw.PoolState,
		OwnerLpToken:     withdraw.OwnerLpToken,
		Token0Account:    withdraw.Token0Account,
		Token1Account:    withdraw.Token1Account,
		Token0Vault:      withdraw.Token0Vault,
		Token1Vault:      withdraw.Token1Vault,
		TokenProgram:     withdraw.TokenProgram,
		TokenProgram2022: withdraw.TokenProgram2022,
		Vault0Mint:       withdraw.Vault0Mint,
		Vault1Mint:       withdraw.Vault1Mint,
		LpMint:           withdraw.LpMint,
	}
	return withdraw, deposit
}

func TestBatch(t *testing.T) {
	batch := executor.NewBatch(cpswap.ProgramID)
	withdraw, deposit := liquidityArgs(solana.NewWallet().PublicKey())

	require.NoError(t, batch.Withdraw(context.Background(), withdraw, &cpswap.WithdrawInstructionArgs{LpTokenAmount: 1000, MinimumToken0Amount: 500, MinimumToken1Amount: 500}))
	require.NoError(t, batch.Deposit(context.Background(), deposit, &cpswap.DepositInstructionArgs{LpTokenAmount: 1000, MaximumToken0Amount: 500, MaximumToken1Amount: 500}))

	ixns := batch.Instructions()
	require.Len(t, ixns, 2)

	data, err := ixns[0].Data()
	require.NoError(t, err)
	args, err := cpswap.DecodeWithdrawInstructionArgs(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), args.LpTokenAmount)
	assert.Len(t, ixns[0].Accounts(), 14)

	data, err = ixns[1].Data()
	require.NoError(t, err)
	_, err = cpswap.DecodeDepositInstructionArgs(data)
	require.NoError(t, err)
	assert.Len(t, ixns[1].Accounts(), 13)
}

func TestTxExecutor(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	withdraw, deposit := liquidityArgs(payer.PublicKey())

	unit := func(engine liquidityinteraction.Engine) error {
		if err := engine.Withdraw(context.Background(), withdraw, &cpswap.WithdrawInstructionArgs{LpTokenAmount: 1}); err != nil {
			return err
		}
		return engine.Deposit(context.Background(), deposit, &cpswap.DepositInstructionArgs{LpTokenAmount: 1})
	}

	t.Run("sends one transaction", func(t *testing.T) {
		conn := &fakeRPC{}
		sender := &recordingSender{}
		exec := executor.NewTxExecutor(conn, sender.send, cpswap.ProgramID, payer)

		require.NoError(t, exec.Atomically(context.Background(), unit))
		require.Len(t, sender.sent, 1)
		assert.Empty(t, conn.simulated)

		tx := sender.sent[0]
		require.Len(t, tx.Message.Instructions, 3)

		programs := make([]solana.PublicKey, 0, 3)
		for _, ix := range tx.Message.Instructions {
			programID, err := tx.Message.Program(ix.ProgramIDIndex)
			require.NoError(t, err)
			programs = append(programs, programID)
		}
		assert.Equal(t, []solana.PublicKey{computebudget.ProgramID, cpswap.ProgramID, cpswap.ProgramID}, programs)

		data := tx.Message.Instructions[1].Data
		_, err := cpswap.DecodeWithdrawInstructionArgs(data)
		assert.NoError(t, err, "withdraw must come first")
		assert.Equal(t, tx.Signatures[0], exec.LastSignature())
	})

	t.Run("simulates", func(t *testing.T) {
		conn := &fakeRPC{}
		sender := &recordingSender{}
		exec := executor.NewTxExecutor(conn, sender.send, cpswap.ProgramID, payer, executor.WithSimulation(true))

		require.NoError(t, exec.Atomically(context.Background(), unit))
		assert.Len(t, conn.simulated, 1)
		assert.Empty(t, sender.sent)
		assert.Equal(t, []string{"Program log: ok"}, exec.LastLogs())
	})

	t.Run("failed simulation", func(t *testing.T) {
		conn := &fakeRPC{simErr: map[string]interface{}{"InstructionError": []interface{}{1, "Custom"}}}
		exec := executor.NewTxExecutor(conn, nil, cpswap.ProgramID, payer, executor.WithSimulation(true))

		err := exec.Atomically(context.Background(), unit)
		assert.ErrorIs(t, err, executor.ErrSimulationFailed)
	})

	t.Run("unit failure submits nothing", func(t *testing.T) {
		conn := &fakeRPC{}
		sender := &recordingSender{}
		exec := executor.NewTxExecutor(conn, sender.send, cpswap.ProgramID, payer)

		boom := errors.New("boom")
		err := exec.Atomically(context.Background(), func(liquidityinteraction.Engine) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, sender.sent)
	})

	t.Run("empty unit", func(t *testing.T) {
		exec := executor.NewTxExecutor(&fakeRPC{}, nil, cpswap.ProgramID, payer)
		err := exec.Atomically(context.Background(), func(liquidityinteraction.Engine) error { return nil })
		assert.ErrorIs(t, err, executor.ErrEmptyUnit)
	})

	t.Run("missing signer", func(t *testing.T) {
		other, _ := liquidityArgs(solana.NewWallet().PublicKey())
		exec := executor.NewTxExecutor(&fakeRPC{}, nil, cpswap.ProgramID, payer)
		err := exec.Atomically(context.Background(), func(engine liquidityinteraction.Engine) error {
			return engine.Withdraw(context.Background(), other, &cpswap.WithdrawInstructionArgs{})
		})
		assert.Error(t, err)
	})
}
