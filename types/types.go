package types

import (
	"github.com/gagliardetto/solana-go"

	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
)

// TokenAccount is a decoded SPL token account.
type TokenAccount struct {
	Address solana.PublicKey
	// Mint the account holds.
	Mint solana.PublicKey
	// Owner is the token authority of the account, not the owning program.
	Owner  solana.PublicKey
	Amount uint64
	// Program owning the account (Token or Token2022).
	Program solana.PublicKey
}

// MintAccount is a decoded SPL mint.
type MintAccount struct {
	Address  solana.PublicKey
	Program  solana.PublicKey
	Decimals uint8
	Supply   uint64
}

// LiquidityAccounts is the account set shared by add, remove and add-and-remove liquidity.
type LiquidityAccounts struct {
	CpSwapProgram solana.PublicKey
	Owner         solana.PublicKey
	// OwnerIsSigner reports whether the owner signed the transaction.
	OwnerIsSigner bool
	Authority     solana.PublicKey
	PoolState     solana.PublicKey
	// Pool is the decoded record stored at PoolState.
	Pool             *cpswap.PoolStateAccount
	OwnerLpToken     TokenAccount
	Token0Account    TokenAccount
	Token1Account    TokenAccount
	Token0Vault      TokenAccount
	Token1Vault      TokenAccount
	TokenProgram     solana.PublicKey
	TokenProgram2022 solana.PublicKey
	Vault0Mint       MintAccount
	Vault1Mint       MintAccount
	LpMint           MintAccount
	// MemoProgram is only required when a withdraw is issued.
	MemoProgram solana.PublicKey
}

// LiquidityArgs are the caller bounds forwarded unchanged to the engine.
// For a withdraw the two token amounts act as minimum outputs.
type LiquidityArgs struct {
	LpTokenAmount       uint64
	MaximumToken0Amount uint64
	MaximumToken1Amount uint64
}

// InitializeAccounts is the account set of a pool bootstrap.
type InitializeAccounts struct {
	CpSwapProgram          solana.PublicKey
	Creator                solana.PublicKey
	CreatorIsSigner        bool
	AmmConfig              solana.PublicKey
	Authority              solana.PublicKey
	PoolState              solana.PublicKey
	Token0Mint             MintAccount
	Token1Mint             MintAccount
	LpMint                 solana.PublicKey
	CreatorToken0          TokenAccount
	CreatorToken1          TokenAccount
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

type InitializeArgs struct {
	InitAmount0 uint64
	InitAmount1 uint64
	OpenTime    uint64
}

// Request is one call into the interaction layer. Exactly one of the
// account sets is read, depending on Operation.
type Request struct {
	Operation          Operation
	InitializeAccounts *InitializeAccounts
	InitializeArgs     InitializeArgs
	LiquidityAccounts  *LiquidityAccounts
	LiquidityArgs      LiquidityArgs
}

type DerivePoolKeysParams struct {
	CpSwapProgram solana.PublicKey
	AmmConfig     solana.PublicKey
	// Mint address of token 0
	Token0Mint solana.PublicKey
	// Mint address of token 1
	Token1Mint solana.PublicKey
	// Program ID for token 0 (Token or Token2022)
	Token0Program solana.PublicKey
	// Program ID for token 1 (Token or Token2022)
	Token1Program solana.PublicKey
	// Owner of the token accounts
	Owner solana.PublicKey
}

// PoolKeys holds every address an operation needs, derived without RPC access.
type PoolKeys struct {
	CpSwapProgram    solana.PublicKey
	AmmConfig        solana.PublicKey
	Authority        solana.PublicKey
	AuthorityBump    uint8
	PoolState        solana.PublicKey
	LpMint           solana.PublicKey
	Token0Mint       solana.PublicKey
	Token1Mint       solana.PublicKey
	Token0Program    solana.PublicKey
	Token1Program    solana.PublicKey
	Token0Vault      solana.PublicKey
	Token1Vault      solana.PublicKey
	ObservationState solana.PublicKey
	Owner            solana.PublicKey
	OwnerToken0      solana.PublicKey
	OwnerToken1      solana.PublicKey
	OwnerLpToken     solana.PublicKey
}
