package liquidityinteraction

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/RequescoS/raydium-liquidity-interaction/constants"
	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

// DeriveAuthority derives the vault and lp mint authority of the cp-swap program.
// The result depends only on the program identity and is never cached.
func DeriveAuthority(cpSwapProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(constants.AuthSeed),
		},
		cpSwapProgram,
	)
}

// VerifyAuthority recomputes the authority and compares it with the supplied account.
func VerifyAuthority(cpSwapProgram, supplied solana.PublicKey) *Violation {
	expected, _, err := DeriveAuthority(cpSwapProgram)
	if err != nil {
		return &Violation{
			Constraint: ConstraintAuthority,
			Account:    "authority",
			Expected:   solana.PublicKey{},
			Actual:     supplied,
			Detail:     fmt.Sprintf("derivation failed: %s", err.Error()),
		}
	}
	if !expected.Equals(supplied) {
		return &Violation{
			Constraint: ConstraintAuthority,
			Account:    "authority",
			Expected:   expected,
			Actual:     supplied,
		}
	}
	return nil
}

func DerivePoolAddress(cpSwapProgram, ammConfig, token0Mint, token1Mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(constants.PoolSeed),
			ammConfig.Bytes(),
			token0Mint.Bytes(),
			token1Mint.Bytes(),
		},
		cpSwapProgram,
	)
}

func DerivePoolVaultAddress(cpSwapProgram, pool, vaultTokenMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(constants.PoolVaultSeed),
			pool.Bytes(),
			vaultTokenMint.Bytes(),
		},
		cpSwapProgram,
	)
}

func DerivePoolLpMintAddress(cpSwapProgram, pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(constants.PoolLpMintSeed),
			pool.Bytes(),
		},
		cpSwapProgram,
	)
}

func DeriveObservationAddress(cpSwapProgram, pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(constants.ObservationSeed),
			pool.Bytes(),
		},
		cpSwapProgram,
	)
}

// DeriveAssociatedTokenAddress supports both Token and Token2022 mints.
func DeriveAssociatedTokenAddress(wallet, mint, tokenProgram solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindProgramAddress(
		[][]byte{
			wallet.Bytes(),
			tokenProgram.Bytes(),
			mint.Bytes(),
		},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	return ata, err
}

// DerivePoolKeys resolves every address of a pool and of the owner's token accounts.
func DerivePoolKeys(param types.DerivePoolKeysParams) (*types.PoolKeys, error) {
	programID := param.CpSwapProgram
	if programID.IsZero() {
		programID = CpSwapProgramId
	}

	authority, bump, err := DeriveAuthority(programID)
	if err != nil {
		return nil, fmt.Errorf("err deriving authority: %w", err)
	}
	pool, _, err := DerivePoolAddress(programID, param.AmmConfig, param.Token0Mint, param.Token1Mint)
	if err != nil {
		return nil, fmt.Errorf("err deriving pool: %w", err)
	}
	lpMint, _, err := DerivePoolLpMintAddress(programID, pool)
	if err != nil {
		return nil, fmt.Errorf("err deriving lp mint: %w", err)
	}
	vault0, _, err := DerivePoolVaultAddress(programID, pool, param.Token0Mint)
	if err != nil {
		return nil, fmt.Errorf("err deriving token 0 vault: %w", err)
	}
	vault1, _, err := DerivePoolVaultAddress(programID, pool, param.Token1Mint)
	if err != nil {
		return nil, fmt.Errorf("err deriving token 1 vault: %w", err)
	}
	observation, _, err := DeriveObservationAddress(programID, pool)
	if err != nil {
		return nil, fmt.Errorf("err deriving observation: %w", err)
	}

	keys := &types.PoolKeys{
		CpSwapProgram:    programID,
		AmmConfig:        param.AmmConfig,
		Authority:        authority,
		AuthorityBump:    bump,
		PoolState:        pool,
		LpMint:           lpMint,
		Token0Mint:       param.Token0Mint,
		Token1Mint:       param.Token1Mint,
		Token0Program:    param.Token0Program,
		Token1Program:    param.Token1Program,
		Token0Vault:      vault0,
		Token1Vault:      vault1,
		ObservationState: observation,
		Owner:            param.Owner,
	}

	if param.Owner.IsZero() {
		return keys, nil
	}

	if err := deriveOwnerAccounts(keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func deriveOwnerAccounts(keys *types.PoolKeys) (err error) {
	if keys.OwnerToken0, err = DeriveAssociatedTokenAddress(keys.Owner, keys.Token0Mint, keys.Token0Program); err != nil {
		return fmt.Errorf("err deriving owner token 0 account: %w", err)
	}
	if keys.OwnerToken1, err = DeriveAssociatedTokenAddress(keys.Owner, keys.Token1Mint, keys.Token1Program); err != nil {
		return fmt.Errorf("err deriving owner token 1 account: %w", err)
	}
	// lp mints are always created under the legacy token program
	if keys.OwnerLpToken, err = DeriveAssociatedTokenAddress(keys.Owner, keys.LpMint, solana.TokenProgramID); err != nil {
		return fmt.Errorf("err deriving owner lp token account: %w", err)
	}
	return nil
}

// PoolKeysFromState resolves the keys of an existing pool from its record. Pools
// created at a non canonical address are only reachable this way.
func PoolKeysFromState(cpSwapProgram, poolAddress solana.PublicKey, pool *cpswap.PoolStateAccount, owner solana.PublicKey) (*types.PoolKeys, error) {
	if cpSwapProgram.IsZero() {
		cpSwapProgram = CpSwapProgramId
	}

	authority, bump, err := DeriveAuthority(cpSwapProgram)
	if err != nil {
		return nil, fmt.Errorf("err deriving authority: %w", err)
	}

	keys := &types.PoolKeys{
		CpSwapProgram:    cpSwapProgram,
		AmmConfig:        pool.AmmConfig,
		Authority:        authority,
		AuthorityBump:    bump,
		PoolState:        poolAddress,
		LpMint:           pool.LpMint,
		Token0Mint:       pool.Token0Mint,
		Token1Mint:       pool.Token1Mint,
		Token0Program:    pool.Token0Program,
		Token1Program:    pool.Token1Program,
		Token0Vault:      pool.Token0Vault,
		Token1Vault:      pool.Token1Vault,
		ObservationState: pool.ObservationKey,
		Owner:            owner,
	}
	if owner.IsZero() {
		return keys, nil
	}

	if err := deriveOwnerAccounts(keys); err != nil {
		return nil, err
	}
	return keys, nil
}
