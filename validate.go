package liquidityinteraction

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

// violations accumulates failed predicates so that a caller sees all of them at once.
type violations []Violation

func (vs *violations) equal(c Constraint, account string, expected, actual solana.PublicKey) {
	if !expected.Equals(actual) {
		*vs = append(*vs, Violation{
			Constraint: c,
			Account:    account,
			Expected:   expected,
			Actual:     actual,
		})
	}
}

func (vs *violations) fail(c Constraint, account string, format string, a ...any) {
	*vs = append(*vs, Violation{
		Constraint: c,
		Account:    account,
		Detail:     fmt.Sprintf(format, a...),
	})
}

func (vs *violations) add(v *Violation) {
	if v != nil {
		*vs = append(*vs, *v)
	}
}

// derived checks an address against a program derived address, reporting derivation errors as violations.
func (vs *violations) derived(account string, actual solana.PublicKey, derive func() (solana.PublicKey, uint8, error)) {
	expected, _, err := derive()
	if err != nil {
		vs.fail(ConstraintDerivedAddress, account, "derivation failed: %s", err.Error())
		return
	}
	vs.equal(ConstraintDerivedAddress, account, expected, actual)
}

// ValidateLiquidityAccounts checks the account set of a deposit and/or withdraw against
// the pool record and the authority derivation. It has no side effects and reports every
// violated relationship; an empty result means the set is valid.
func ValidateLiquidityAccounts(
	cpSwapProgram solana.PublicKey,
	accounts *types.LiquidityAccounts,
	withdraw bool,
) []Violation {
	var vs violations

	if accounts == nil {
		vs.fail(ConstraintPoolRecord, "accounts", "no account set supplied")
		return vs
	}

	vs.equal(ConstraintProgram, "cp_swap_program", cpSwapProgram, accounts.CpSwapProgram)
	if !accounts.OwnerIsSigner {
		vs.fail(ConstraintSigner, "owner", "%s did not sign", accounts.Owner)
	}
	vs.add(VerifyAuthority(cpSwapProgram, accounts.Authority))

	if pool := accounts.Pool; pool == nil {
		vs.fail(ConstraintPoolRecord, "pool_state", "pool record %s not loaded", accounts.PoolState)
	} else {
		vs.equal(ConstraintVaultAddress, "token_0_vault", pool.Token0Vault, accounts.Token0Vault.Address)
		vs.equal(ConstraintVaultAddress, "token_1_vault", pool.Token1Vault, accounts.Token1Vault.Address)
		vs.equal(ConstraintLpMint, "lp_mint", pool.LpMint, accounts.LpMint.Address)
	}

	vs.equal(ConstraintVaultMint, "vault_0_mint", accounts.Token0Vault.Mint, accounts.Vault0Mint.Address)
	vs.equal(ConstraintVaultMint, "vault_1_mint", accounts.Token1Vault.Mint, accounts.Vault1Mint.Address)

	vs.equal(ConstraintTokenMint, "token_0_account", accounts.Token0Vault.Mint, accounts.Token0Account.Mint)
	vs.equal(ConstraintTokenMint, "token_1_account", accounts.Token1Vault.Mint, accounts.Token1Account.Mint)

	vs.equal(ConstraintTokenOwner, "owner_lp_token", accounts.Owner, accounts.OwnerLpToken.Owner)
	vs.equal(ConstraintTokenOwner, "token_0_account", accounts.Owner, accounts.Token0Account.Owner)
	vs.equal(ConstraintTokenOwner, "token_1_account", accounts.Owner, accounts.Token1Account.Owner)

	vs.equal(ConstraintProgram, "token_program", solana.TokenProgramID, accounts.TokenProgram)
	vs.equal(ConstraintProgram, "token_program_2022", solana.Token2022ProgramID, accounts.TokenProgram2022)
	if withdraw {
		vs.equal(ConstraintProgram, "memo_program", solana.MemoProgramID, accounts.MemoProgram)
	}

	return vs
}

// ValidateInitializeAccounts checks a pool bootstrap. No pool record exists yet, so every
// pool owned address is checked against its derivation instead.
func ValidateInitializeAccounts(
	cpSwapProgram solana.PublicKey,
	accounts *types.InitializeAccounts,
) []Violation {
	var vs violations

	if accounts == nil {
		vs.fail(ConstraintPoolRecord, "accounts", "no account set supplied")
		return vs
	}

	vs.equal(ConstraintProgram, "cp_swap_program", cpSwapProgram, accounts.CpSwapProgram)
	if !accounts.CreatorIsSigner {
		vs.fail(ConstraintSigner, "creator", "%s did not sign", accounts.Creator)
	}
	vs.add(VerifyAuthority(cpSwapProgram, accounts.Authority))

	token0Mint, token1Mint := accounts.Token0Mint.Address, accounts.Token1Mint.Address
	vs.derived("pool_state", accounts.PoolState, func() (solana.PublicKey, uint8, error) {
		return DerivePoolAddress(cpSwapProgram, accounts.AmmConfig, token0Mint, token1Mint)
	})
	vs.derived("lp_mint", accounts.LpMint, func() (solana.PublicKey, uint8, error) {
		return DerivePoolLpMintAddress(cpSwapProgram, accounts.PoolState)
	})
	vs.derived("token_0_vault", accounts.Token0Vault, func() (solana.PublicKey, uint8, error) {
		return DerivePoolVaultAddress(cpSwapProgram, accounts.PoolState, token0Mint)
	})
	vs.derived("token_1_vault", accounts.Token1Vault, func() (solana.PublicKey, uint8, error) {
		return DerivePoolVaultAddress(cpSwapProgram, accounts.PoolState, token1Mint)
	})
	vs.derived("observation_state", accounts.ObservationState, func() (solana.PublicKey, uint8, error) {
		return DeriveObservationAddress(cpSwapProgram, accounts.PoolState)
	})

	vs.equal(ConstraintTokenMint, "creator_token_0", token0Mint, accounts.CreatorToken0.Mint)
	vs.equal(ConstraintTokenMint, "creator_token_1", token1Mint, accounts.CreatorToken1.Mint)
	vs.equal(ConstraintTokenOwner, "creator_token_0", accounts.Creator, accounts.CreatorToken0.Owner)
	vs.equal(ConstraintTokenOwner, "creator_token_1", accounts.Creator, accounts.CreatorToken1.Owner)

	if lpToken, err := DeriveAssociatedTokenAddress(accounts.Creator, accounts.LpMint, solana.TokenProgramID); err != nil {
		vs.fail(ConstraintDerivedAddress, "creator_lp_token", "derivation failed: %s", err.Error())
	} else {
		vs.equal(ConstraintDerivedAddress, "creator_lp_token", lpToken, accounts.CreatorLpToken)
	}

	vs.equal(ConstraintTokenProgram, "token_0_program", accounts.Token0Mint.Program, accounts.Token0Program)
	vs.equal(ConstraintTokenProgram, "token_1_program", accounts.Token1Mint.Program, accounts.Token1Program)

	vs.equal(ConstraintProgram, "token_program", solana.TokenProgramID, accounts.TokenProgram)
	vs.equal(ConstraintProgram, "associated_token_program", solana.SPLAssociatedTokenAccountProgramID, accounts.AssociatedTokenProgram)
	vs.equal(ConstraintProgram, "system_program", solana.SystemProgramID, accounts.SystemProgram)
	vs.equal(ConstraintProgram, "rent", solana.SysVarRentPubkey, accounts.Rent)

	return vs
}
