package cpswap

import (
	"github.com/gagliardetto/solana-go"
)

type DepositInstructionArgs struct {
	LpTokenAmount       uint64
	MaximumToken0Amount uint64
	MaximumToken1Amount uint64
}

type DepositInstructionAccounts struct {
	Owner            solana.PublicKey
	Authority        solana.PublicKey
	PoolState        solana.PublicKey
	OwnerLpToken     solana.PublicKey
	Token0Account    solana.PublicKey
	Token1Account    solana.PublicKey
	Token0Vault      solana.PublicKey
	Token1Vault      solana.PublicKey
	TokenProgram     solana.PublicKey
	TokenProgram2022 solana.PublicKey
	Vault0Mint       solana.PublicKey
	Vault1Mint       solana.PublicKey
	LpMint           solana.PublicKey
}

func NewDepositInstruction(
	programID solana.PublicKey,
	accounts *DepositInstructionAccounts,
	args *DepositInstructionArgs,
) *solana.GenericInstruction {
	data := encodeArgs(
		DepositDiscriminator,
		args.LpTokenAmount,
		args.MaximumToken0Amount,
		args.MaximumToken1Amount,
	)

	return solana.NewInstruction(
		programID,
		solana.AccountMetaSlice{
			solana.Meta(accounts.Owner).SIGNER(),
			solana.Meta(accounts.Authority),
			solana.Meta(accounts.PoolState).WRITE(),
			solana.Meta(accounts.OwnerLpToken).WRITE(),
			solana.Meta(accounts.Token0Account).WRITE(),
			solana.Meta(accounts.Token1Account).WRITE(),
			solana.Meta(accounts.Token0Vault).WRITE(),
			solana.Meta(accounts.Token1Vault).WRITE(),
			solana.Meta(accounts.TokenProgram),
			solana.Meta(accounts.TokenProgram2022),
			solana.Meta(accounts.Vault0Mint),
			solana.Meta(accounts.Vault1Mint),
			solana.Meta(accounts.LpMint).WRITE(),
		},
		data,
	)
}

func DecodeDepositInstructionArgs(data []byte) (*DepositInstructionArgs, error) {
	values, err := decodeArgs(data, DepositDiscriminator, 3)
	if err != nil {
		return nil, err
	}
	return &DepositInstructionArgs{
		LpTokenAmount:       values[0],
		MaximumToken0Amount: values[1],
		MaximumToken1Amount: values[2],
	}, nil
}
