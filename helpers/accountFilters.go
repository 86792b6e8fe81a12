package helpers

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
)

// byte offsets inside the cp-swap pool record
const (
	poolAmmConfigOffset  = 8
	poolToken0MintOffset = 8 + 32*5
	poolToken1MintOffset = 8 + 32*6
)

var (
	PoolStateSizeFilter = rpc.RPCFilter{
		DataSize: cpswap.PoolStateAccountSize,
	}

	PoolByAmmConfigFilter = func(ammConfig solana.PublicKey) rpc.RPCFilter {
		return rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Bytes:  ammConfig.Bytes(),
				Offset: poolAmmConfigOffset,
			},
		}
	}

	PoolByToken0MintFilter = func(mint solana.PublicKey) rpc.RPCFilter {
		return rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Bytes:  mint.Bytes(),
				Offset: poolToken0MintOffset,
			},
		}
	}

	PoolByToken1MintFilter = func(mint solana.PublicKey) rpc.RPCFilter {
		return rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Bytes:  mint.Bytes(),
				Offset: poolToken1MintOffset,
			},
		}
	}
)
