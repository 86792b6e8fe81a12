package cpswap

import (
	"github.com/gagliardetto/solana-go"
)

type WithdrawInstructionArgs struct {
	LpTokenAmount       uint64
	MinimumToken0Amount uint64
	MinimumToken1Amount uint64
}

type WithdrawInstructionAccounts struct {
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
	MemoProgram      solana.PublicKey
}

func NewWithdrawInstruction(
	programID solana.PublicKey,
	accounts *WithdrawInstructionAccounts,
	args *WithdrawInstructionArgs,
) *solana.GenericInstruction {
	data := encodeArgs(
		WithdrawDiscriminator,
		args.LpTokenAmount,
		args.MinimumToken0Amount,
		args.MinimumToken1Amount,
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
			solana.Meta(accounts.MemoProgram),
		},
		data,
	)
}

func DecodeWithdrawInstructionArgs(data []byte) (*WithdrawInstructionArgs, error) {
	values, err := decodeArgs(data, WithdrawDiscriminator, 3)
	if err != nil {
		return nil, err
	}
	return &WithdrawInstructionArgs{
		LpTokenAmount:       values[0],
		MinimumToken0Amount: values[1],
		MinimumToken1Amount: values[2],
	}, nil
}
