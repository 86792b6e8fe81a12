package testUtils

const (
	Decimals = 6

	// InitAmount0 and InitAmount1 bootstrap the fixture pool.
	InitAmount0 = 10_000_000_000
	InitAmount1 = 20_000_000_000

	OwnerToken0Balance = 1_000_000
	OwnerToken1Balance = 1_000_000
	OwnerLpBalance     = 10_000
	Vault0Balance      = 5_000_000
	Vault1Balance      = 5_000_000
	LpSupply           = 100_000
)
