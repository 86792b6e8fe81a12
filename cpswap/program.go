package cpswap

import (
	"errors"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	// ProgramID is the mainnet deployment of Raydium cp-swap.
	ProgramID = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")

	// DevnetProgramID is the devnet deployment of Raydium cp-swap.
	DevnetProgramID = solana.MustPublicKeyFromBase58("CPMDWBwJDtYax9qW7AyRuVC19Cc4L4Vcy4n2BHAbHkCW")
)

var (
	PoolStateAccountDiscriminator = ag_binary.SighashTypeID(ag_binary.SIGHASH_ACCOUNT_NAMESPACE, "PoolState")

	InitializeDiscriminator = ag_binary.SighashTypeID(ag_binary.SIGHASH_GLOBAL_NAMESPACE, "initialize")
	DepositDiscriminator    = ag_binary.SighashTypeID(ag_binary.SIGHASH_GLOBAL_NAMESPACE, "deposit")
	WithdrawDiscriminator   = ag_binary.SighashTypeID(ag_binary.SIGHASH_GLOBAL_NAMESPACE, "withdraw")
)
