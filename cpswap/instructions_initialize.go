package cpswap

import (
	"github.com/gagliardetto/solana-go"
)

type InitializeInstructionArgs struct {
	InitAmount0 uint64
	InitAmount1 uint64
	OpenTime    uint64
}

type InitializeInstructionAccounts struct {
	Creator                solana.PublicKey
	AmmConfig              solana.PublicKey
	Authority              solana.PublicKey
	PoolState              solana.PublicKey
	Token0Mint             solana.PublicKey
	Token1Mint             solana.PublicKey
	LpMint                 solana.PublicKey
	CreatorToken0          solana.PublicKey
	CreatorToken1          solana.PublicKey
	CreatorLpToken         solana.PublicKey
	Token0Vault            solana.PublicKey
	Token1Vault            solana.PublicKey
	CreatePoolFee          solana.PublicKey
	ObservationState       solana.PublicKey
	TokenProgram           solana.PublicKey
	Token0Program          solana.PublicKey
	Token1Program          solana.PublicKey
	AssociatedTokenProgram solana.PublicKey
	SystemProgram          solana.PublicKey
	Rent                   solana.PublicKey
}

func NewInitializeInstruction(
	programID solana.PublicKey,
	accounts *InitializeInstructionAccounts,
	args *InitializeInstructionArgs,
) *solana.GenericInstruction {
	data := encodeArgs(
		InitializeDiscriminator,
		args.InitAmount0,
		args.InitAmount1,
		args.OpenTime,
	)

	return solana.NewInstruction(
		programID,
		solana.AccountMetaSlice{
			solana.Meta(accounts.Creator).WRITE().SIGNER(),
			solana.Meta(accounts.AmmConfig),
			solana.Meta(accounts.Authority),
			solana.Meta(accounts.PoolState).WRITE(),
			solana.Meta(accounts.Token0Mint),
			solana.Meta(accounts.Token1Mint),
			solana.Meta(accounts.LpMint).WRITE(),
			solana.Meta(accounts.CreatorToken0).WRITE(),
			solana.Meta(accounts.CreatorToken1).WRITE(),
			solana.Meta(accounts.CreatorLpToken).WRITE(),
			solana.Meta(accounts.Token0Vault).WRITE(),
			solana.Meta(accounts.Token1Vault).WRITE(),
			solana.Meta(accounts.CreatePoolFee).WRITE(),
			solana.Meta(accounts.ObservationState).WRITE(),
			solana.Meta(accounts.TokenProgram),
			solana.Meta(accounts.Token0Program),
			solana.Meta(accounts.Token1Program),
			solana.Meta(accounts.AssociatedTokenProgram),
			solana.Meta(accounts.SystemProgram),
			solana.Meta(accounts.Rent),
		},
		data,
	)
}

func DecodeInitializeInstructionArgs(data []byte) (*InitializeInstructionArgs, error) {
	values, err := decodeArgs(data, InitializeDiscriminator, 3)
	if err != nil {
		return nil, err
	}
	return &InitializeInstructionArgs{
		InitAmount0: values[0],
		InitAmount1: values[1],
		OpenTime:    values[2],
	}, nil
}
