package cpswap_test

import (
	"encoding/binary"
	"testing"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
)

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func TestDepositInstruction(t *testing.T) {
	accounts := &cpswap.DepositInstructionAccounts{
		Owner:            newKey(),
		Authority:        newKey(),
		PoolState:        newKey(),
		OwnerLpToken:     newKey(),
		Token0Account:    newKey(),
		Token1Account:    newKey(),
		Token0Vault:      newKey(),
		Token1Vault:      newKey(),
		TokenProgram:     solana.TokenProgramID,
		TokenProgram2022: solana.Token2022ProgramID,
		Vault0Mint:       newKey(),
		Vault1Mint:       newKey(),
		LpMint:           newKey(),
	}
	ix := cpswap.NewDepositInstruction(
		cpswap.ProgramID,
		accounts,
		&cpswap.DepositInstructionArgs{
			LpTokenAmount:       1000,
			MaximumToken0Amount: 500,
			MaximumToken1Amount: 501,
		},
	)

	assert.Equal(t, cpswap.ProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 32)
	assert.Equal(t, ag_binary.Sighash(ag_binary.SIGHASH_GLOBAL_NAMESPACE, "deposit"), data[:8])
	assert.Equal(t, uint64(1000), binary.LittleEndian.Uint64(data[8:]))
	assert.Equal(t, uint64(500), binary.LittleEndian.Uint64(data[16:]))
	assert.Equal(t, uint64(501), binary.LittleEndian.Uint64(data[24:]))

	metas := ix.Accounts()
	require.Len(t, metas, 13)
	assert.True(t, metas[0].IsSigner)
	assert.Equal(t, accounts.Owner, metas[0].PublicKey)
	assert.False(t, metas[1].IsWritable)
	assert.Equal(t, accounts.Authority, metas[1].PublicKey)
	assert.True(t, metas[6].IsWritable)
	assert.Equal(t, accounts.Token0Vault, metas[6].PublicKey)
	assert.Equal(t, accounts.LpMint, metas[12].PublicKey)
	assert.True(t, metas[12].IsWritable)

	args, err := cpswap.DecodeDepositInstructionArgs(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), args.LpTokenAmount)
	assert.Equal(t, uint64(500), args.MaximumToken0Amount)
	assert.Equal(t, uint64(501), args.MaximumToken1Amount)
}

func TestWithdrawInstruction(t *testing.T) {
	memo := solana.MemoProgramID
	ix := cpswap.NewWithdrawInstruction(
		cpswap.DevnetProgramID,
		&cpswap.WithdrawInstructionAccounts{
			Owner:       newKey(),
			MemoProgram: memo,
		},
		&cpswap.WithdrawInstructionArgs{
			LpTokenAmount:       200,
			MinimumToken0Amount: 50,
			MinimumToken1Amount: 60,
		},
	)

	metas := ix.Accounts()
	require.Len(t, metas, 14)
	assert.Equal(t, memo, metas[13].PublicKey)
	assert.False(t, metas[13].IsWritable)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, cpswap.WithdrawDiscriminator[:], data[:8])

	args, err := cpswap.DecodeWithdrawInstructionArgs(data)
	require.NoError(t, err)
	assert.Equal(t, cpswap.WithdrawInstructionArgs{
		LpTokenAmount:       200,
		MinimumToken0Amount: 50,
		MinimumToken1Amount: 60,
	}, *args)

	_, err = cpswap.DecodeDepositInstructionArgs(data)
	assert.ErrorIs(t, err, cpswap.ErrInvalidInstructionData)
}

func TestInitializeInstruction(t *testing.T) {
	creator := newKey()
	ix := cpswap.NewInitializeInstruction(
		cpswap.ProgramID,
		&cpswap.InitializeInstructionAccounts{Creator: creator},
		&cpswap.InitializeInstructionArgs{
			InitAmount0: 10_000_000_000,
			InitAmount1: 20_000_000_000,
			OpenTime:    0,
		},
	)

	metas := ix.Accounts()
	require.Len(t, metas, 20)
	assert.True(t, metas[0].IsSigner)
	assert.True(t, metas[0].IsWritable)

	data, err := ix.Data()
	require.NoError(t, err)
	args, err := cpswap.DecodeInitializeInstructionArgs(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000_000), args.InitAmount0)
	assert.Equal(t, uint64(20_000_000_000), args.InitAmount1)
	assert.Zero(t, args.OpenTime)

	_, err = cpswap.DecodeInitializeInstructionArgs(data[:20])
	assert.ErrorIs(t, err, cpswap.ErrInvalidInstructionData)
}

func TestPoolStateAccount(t *testing.T) {
	pool := cpswap.PoolStateAccount{
		AmmConfig:      newKey(),
		Token0Vault:    newKey(),
		Token1Vault:    newKey(),
		LpMint:         newKey(),
		Token0Mint:     newKey(),
		Token1Mint:     newKey(),
		Token0Program:  solana.TokenProgramID,
		Token1Program:  solana.Token2022ProgramID,
		ObservationKey: newKey(),
		AuthBump:       254,
		LpMintDecimals: 9,
		LpSupply:       1_000_000,
		OpenTime:       1_700_000_000,
	}

	data := pool.Marshal()
	require.Len(t, data, cpswap.PoolStateAccountSize)
	assert.Equal(t, 637, cpswap.PoolStateAccountSize)

	var decoded cpswap.PoolStateAccount
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, pool, decoded)
	assert.Contains(t, decoded.String(), pool.LpMint.String())

	t.Run("short data", func(t *testing.T) {
		var p cpswap.PoolStateAccount
		assert.ErrorIs(t, p.Unmarshal(data[:100]), cpswap.ErrInvalidAccountData)
	})

	t.Run("wrong discriminator", func(t *testing.T) {
		corrupted := append([]byte(nil), data...)
		corrupted[0] ^= 0xff
		var p cpswap.PoolStateAccount
		assert.ErrorIs(t, p.Unmarshal(corrupted), cpswap.ErrInvalidAccountData)
	})
}
