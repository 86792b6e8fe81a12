package interaction_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
	"github.com/RequescoS/raydium-liquidity-interaction/interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func withdrawAccounts() *cpswap.WithdrawInstructionAccounts {
	return &cpswap.WithdrawInstructionAccounts{
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
		MemoProgram:      solana.MemoProgramID,
	}
}

func TestLiquidityInstructions(t *testing.T) {
	args := types.LiquidityArgs{
		LpTokenAmount:       1000,
		MaximumToken0Amount: 500,
		MaximumToken1Amount: 500,
	}

	t.Run("add liquidity", func(t *testing.T) {
		w := withdrawAccounts()
		accounts := &cpswap.DepositInstructionAccounts{
			Owner:            w.Owner,
			Authority:        w.Authority,
			PoolState:        w.PoolState,
			OwnerLpToken:     w.OwnerLpToken,
			Token0Account:    w.Token0Account,
			Token1Account:    w.Token1Account,
			Token0Vault:      w.Token0Vault,
			Token1Vault:      w.Token1Vault,
			TokenProgram:     w.TokenProgram,
			TokenProgram2022: w.TokenProgram2022,
			Vault0Mint:       w.Vault0Mint,
			Vault1Mint:       w.Vault1Mint,
			LpMint:           w.LpMint,
		}

		ix := interaction.NewAddLiquidityInstruction(interaction.ProgramID, cpswap.ProgramID, accounts, args)
		assert.Equal(t, interaction.ProgramID, ix.ProgramID())

		metas := ix.Accounts()
		require.Len(t, metas, 14)
		assert.Equal(t, cpswap.ProgramID, metas[0].PublicKey)
		assert.False(t, metas[0].IsWritable)
		assert.Equal(t, w.Owner, metas[1].PublicKey)
		assert.True(t, metas[1].IsSigner)
		assert.Equal(t, w.LpMint, metas[13].PublicKey)

		data, err := ix.Data()
		require.NoError(t, err)
		assert.Equal(t, interaction.AddLiquidityDiscriminator[:], data[:8])

		req, err := interaction.DecodeInstruction(data)
		require.NoError(t, err)
		assert.Equal(t, types.OperationAddLiquidity, req.Operation)
		assert.Equal(t, args, req.LiquidityArgs)
	})

	t.Run("remove liquidity", func(t *testing.T) {
		w := withdrawAccounts()
		ix := interaction.NewRemoveLiquidityInstruction(interaction.ProgramID, cpswap.ProgramID, w, args)

		metas := ix.Accounts()
		require.Len(t, metas, 15)
		assert.Equal(t, cpswap.ProgramID, metas[0].PublicKey)
		assert.Equal(t, solana.MemoProgramID, metas[14].PublicKey)

		data, err := ix.Data()
		require.NoError(t, err)
		req, err := interaction.DecodeInstruction(data)
		require.NoError(t, err)
		assert.Equal(t, types.OperationRemoveLiquidity, req.Operation)
		assert.Equal(t, args, req.LiquidityArgs)
	})

	t.Run("add and remove liquidity", func(t *testing.T) {
		w := withdrawAccounts()
		ix := interaction.NewAddAndRemoveLiquidityInstruction(interaction.ProgramID, cpswap.ProgramID, w, args)
		require.Len(t, ix.Accounts(), 15)

		data, err := ix.Data()
		require.NoError(t, err)
		req, err := interaction.DecodeInstruction(data)
		require.NoError(t, err)
		assert.Equal(t, types.OperationAddAndRemoveLiquidity, req.Operation)
		assert.Equal(t, args, req.LiquidityArgs)
	})
}

func TestInitializeInstruction(t *testing.T) {
	accounts := &cpswap.InitializeInstructionAccounts{
		Creator:                newKey(),
		AmmConfig:              newKey(),
		Authority:              newKey(),
		PoolState:              newKey(),
		Token0Mint:             newKey(),
		Token1Mint:             newKey(),
		LpMint:                 newKey(),
		CreatorToken0:          newKey(),
		CreatorToken1:          newKey(),
		CreatorLpToken:         newKey(),
		Token0Vault:            newKey(),
		Token1Vault:            newKey(),
		CreatePoolFee:          newKey(),
		ObservationState:       newKey(),
		TokenProgram:           solana.TokenProgramID,
		Token0Program:          solana.TokenProgramID,
		Token1Program:          solana.Token2022ProgramID,
		AssociatedTokenProgram: solana.SPLAssociatedTokenAccountProgramID,
		SystemProgram:          solana.SystemProgramID,
		Rent:                   solana.SysVarRentPubkey,
	}
	args := types.InitializeArgs{InitAmount0: 10_000_000_000, InitAmount1: 20_000_000_000}

	ix := interaction.NewInitializeInstruction(interaction.ProgramID, cpswap.ProgramID, accounts, args)

	metas := ix.Accounts()
	require.Len(t, metas, 21)
	assert.Equal(t, cpswap.ProgramID, metas[0].PublicKey)
	assert.Equal(t, accounts.Creator, metas[1].PublicKey)
	assert.True(t, metas[1].IsSigner)
	assert.Equal(t, solana.SysVarRentPubkey, metas[20].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	req, err := interaction.DecodeInstruction(data)
	require.NoError(t, err)
	assert.Equal(t, types.OperationInitialize, req.Operation)
	assert.Equal(t, args, req.InitializeArgs)
}

func TestDecodeInstruction(t *testing.T) {
	_, err := interaction.DecodeInstruction([]byte{1, 2, 3})
	assert.ErrorIs(t, err, interaction.ErrInvalidInstructionData)

	_, err = interaction.DecodeInstruction(make([]byte, 32))
	assert.ErrorIs(t, err, interaction.ErrInvalidInstructionData)
}
