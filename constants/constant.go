package constants

const (
	// AuthSeed is the seed of the vault and LP mint authority derived by the cp-swap program.
	AuthSeed        = "vault_and_lp_mint_auth_seed"
	PoolSeed        = "pool"
	PoolVaultSeed   = "pool_vault"
	PoolLpMintSeed  = "pool_lp_mint"
	ObservationSeed = "observation"
)

const (
	// ComputeUnitLimit is the budget requested ahead of every liquidity instruction.
	ComputeUnitLimit = 400_000

	// MaxTransactionSize is the wire limit of a legacy transaction.
	MaxTransactionSize = 1232

	AccountDiscriminatorSize = 8
)
