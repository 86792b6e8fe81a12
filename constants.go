package liquidityinteraction

import "github.com/gagliardetto/solana-go"

var (
	// Raydium cp-swap program ID.
	//  CpSwapProgramId = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")
	CpSwapProgramId = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")

	// InteractionProgramId is the on-chain façade wrapping the cp-swap program.
	InteractionProgramId = solana.MustPublicKeyFromBase58("FWehx5BDacMCXKmS9JpxW5UFGnvF1QhtpgqUFKeMTUPk")

	// CreatePoolFeeReceiver receives the pool creation fee on mainnet.
	CreatePoolFeeReceiver = solana.MustPublicKeyFromBase58("DNXgeM9EiiaAbaWvwjHj9fQQLAX5ZsfHyvmYUNRAdNC8")
)
