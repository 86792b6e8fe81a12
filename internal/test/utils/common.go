package testUtils

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	liquidityinteraction "github.com/RequescoS/raydium-liquidity-interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
	"github.com/RequescoS/raydium-liquidity-interaction/helpers"
	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

// NewKeypair returns the same keypair for the same label.
func NewKeypair(label string) solana.PrivateKey {
	seed := sha256.Sum256([]byte(label))
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:]))
}

func NewPubkey(label string) solana.PublicKey {
	return NewKeypair(label).PublicKey()
}

// Fixture is a consistent cp-swap pool: every address is the real derivation
// and every account agrees with the pool record.
type Fixture struct {
	Owner     solana.PrivateKey
	AmmConfig solana.PublicKey
	Keys      *types.PoolKeys
	Pool      *cpswap.PoolStateAccount
}

func NewFixture() *Fixture {
	return NewFixtureWithPrograms(solana.TokenProgramID, solana.TokenProgramID)
}

// NewFixtureWithPrograms builds a pool whose mints belong to the given token programs.
func NewFixtureWithPrograms(token0Program, token1Program solana.PublicKey) *Fixture {
	owner := NewKeypair("owner")
	ammConfig := NewPubkey("amm-config")
	token0Mint, token1Mint := helpers.SortMints(NewPubkey("mint-a"), NewPubkey("mint-b"))

	keys, err := liquidityinteraction.DerivePoolKeys(types.DerivePoolKeysParams{
		CpSwapProgram: liquidityinteraction.CpSwapProgramId,
		AmmConfig:     ammConfig,
		Token0Mint:    token0Mint,
		Token1Mint:    token1Mint,
		Token0Program: token0Program,
		Token1Program: token1Program,
		Owner:         owner.PublicKey(),
	})
	if err != nil {
		panic(fmt.Errorf("err deriving fixture keys: %w", err))
	}

	return &Fixture{
		Owner:     owner,
		AmmConfig: ammConfig,
		Keys:      keys,
		Pool: &cpswap.PoolStateAccount{
			AmmConfig:      ammConfig,
			PoolCreator:    owner.PublicKey(),
			Token0Vault:    keys.Token0Vault,
			Token1Vault:    keys.Token1Vault,
			LpMint:         keys.LpMint,
			Token0Mint:     token0Mint,
			Token1Mint:     token1Mint,
			Token0Program:  token0Program,
			Token1Program:  token1Program,
			ObservationKey: keys.ObservationState,
			AuthBump:       keys.AuthorityBump,
			LpMintDecimals: Decimals,
			Mint0Decimals:  Decimals,
			Mint1Decimals:  Decimals,
			LpSupply:       LpSupply,
		},
	}
}

// LiquidityAccounts is a valid account set for add, remove and add-and-remove liquidity.
func (f *Fixture) LiquidityAccounts() *types.LiquidityAccounts {
	k := f.Keys
	owner := f.Owner.PublicKey()
	pool := *f.Pool

	return &types.LiquidityAccounts{
		CpSwapProgram: k.CpSwapProgram,
		Owner:         owner,
		OwnerIsSigner: true,
		Authority:     k.Authority,
		PoolState:     k.PoolState,
		Pool:          &pool,
		OwnerLpToken: types.TokenAccount{
			Address: k.OwnerLpToken, Mint: k.LpMint, Owner: owner, Amount: OwnerLpBalance, Program: solana.TokenProgramID,
		},
		Token0Account: types.TokenAccount{
			Address: k.OwnerToken0, Mint: k.Token0Mint, Owner: owner, Amount: OwnerToken0Balance, Program: k.Token0Program,
		},
		Token1Account: types.TokenAccount{
			Address: k.OwnerToken1, Mint: k.Token1Mint, Owner: owner, Amount: OwnerToken1Balance, Program: k.Token1Program,
		},
		Token0Vault: types.TokenAccount{
			Address: k.Token0Vault, Mint: k.Token0Mint, Owner: k.Authority, Amount: Vault0Balance, Program: k.Token0Program,
		},
		Token1Vault: types.TokenAccount{
			Address: k.Token1Vault, Mint: k.Token1Mint, Owner: k.Authority, Amount: Vault1Balance, Program: k.Token1Program,
		},
		TokenProgram:     solana.TokenProgramID,
		TokenProgram2022: solana.Token2022ProgramID,
		Vault0Mint:       types.MintAccount{Address: k.Token0Mint, Program: k.Token0Program, Decimals: Decimals},
		Vault1Mint:       types.MintAccount{Address: k.Token1Mint, Program: k.Token1Program, Decimals: Decimals},
		LpMint:           types.MintAccount{Address: k.LpMint, Program: solana.TokenProgramID, Decimals: Decimals, Supply: LpSupply},
		MemoProgram:      solana.MemoProgramID,
	}
}

// InitializeAccounts is a valid account set for bootstrapping the fixture pool.
func (f *Fixture) InitializeAccounts() *types.InitializeAccounts {
	k := f.Keys
	creator := f.Owner.PublicKey()

	return &types.InitializeAccounts{
		CpSwapProgram:   k.CpSwapProgram,
		Creator:         creator,
		CreatorIsSigner: true,
		AmmConfig:       k.AmmConfig,
		Authority:       k.Authority,
		PoolState:       k.PoolState,
		Token0Mint:      types.MintAccount{Address: k.Token0Mint, Program: k.Token0Program, Decimals: Decimals},
		Token1Mint:      types.MintAccount{Address: k.Token1Mint, Program: k.Token1Program, Decimals: Decimals},
		LpMint:          k.LpMint,
		CreatorToken0: types.TokenAccount{
			Address: k.OwnerToken0, Mint: k.Token0Mint, Owner: creator, Amount: OwnerToken0Balance, Program: k.Token0Program,
		},
		CreatorToken1: types.TokenAccount{
			Address: k.OwnerToken1, Mint: k.Token1Mint, Owner: creator, Amount: OwnerToken1Balance, Program: k.Token1Program,
		},
		CreatorLpToken:         k.OwnerLpToken,
		Token0Vault:            k.Token0Vault,
		Token1Vault:            k.Token1Vault,
		CreatePoolFee:          liquidityinteraction.CreatePoolFeeReceiver,
		ObservationState:       k.ObservationState,
		TokenProgram:           solana.TokenProgramID,
		Token0Program:          k.Token0Program,
		Token1Program:          k.Token1Program,
		AssociatedTokenProgram: solana.SPLAssociatedTokenAccountProgramID,
		SystemProgram:          solana.SystemProgramID,
		Rent:                   solana.SysVarRentPubkey,
	}
}

// RPCAccounts renders the fixture as the accounts an RPC node would return.
func (f *Fixture) RPCAccounts() map[solana.PublicKey]*rpc.Account {
	accounts := f.LiquidityAccounts()
	out := map[solana.PublicKey]*rpc.Account{
		accounts.PoolState: {
			Owner: accounts.CpSwapProgram,
			Data:  rpc.DataBytesOrJSONFromBytes(f.Pool.Marshal()),
		},
	}

	for _, ta := range []types.TokenAccount{
		accounts.OwnerLpToken,
		accounts.Token0Account,
		accounts.Token1Account,
		accounts.Token0Vault,
		accounts.Token1Vault,
	} {
		out[ta.Address] = &rpc.Account{
			Owner: ta.Program,
			Data:  rpc.DataBytesOrJSONFromBytes(EncodeTokenAccount(ta)),
		}
	}

	for _, m := range []types.MintAccount{
		accounts.Vault0Mint,
		accounts.Vault1Mint,
		accounts.LpMint,
	} {
		out[m.Address] = &rpc.Account{
			Owner: m.Program,
			Data:  rpc.DataBytesOrJSONFromBytes(EncodeMint(m)),
		}
	}

	return out
}

func EncodeTokenAccount(ta types.TokenAccount) []byte {
	buf := new(bytes.Buffer)
	account := token.Account{
		Mint:   ta.Mint,
		Owner:  ta.Owner,
		Amount: ta.Amount,
		State:  token.Initialized,
	}
	if err := account.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func EncodeMint(m types.MintAccount) []byte {
	buf := new(bytes.Buffer)
	mint := token.Mint{
		Supply:        m.Supply,
		Decimals:      m.Decimals,
		IsInitialized: true,
	}
	if err := mint.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
