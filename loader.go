package liquidityinteraction

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/multierr"

	"github.com/RequescoS/raydium-liquidity-interaction/anchor"
	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
	"github.com/RequescoS/raydium-liquidity-interaction/helpers"
	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

// RPCClient is the subset of *rpc.Client the loader reads accounts with.
type RPCClient interface {
	anchor.Client
	GetMultipleAccounts(ctx context.Context, accounts ...solana.PublicKey) (*rpc.GetMultipleAccountsResult, error)
}

// Loader builds the account snapshots the validator checks from chain state.
type Loader struct {
	conn RPCClient
}

func NewLoader(conn RPCClient) *Loader {
	return &Loader{conn: conn}
}

// FetchPoolState fetches the cp-swap pool record.
func (l *Loader) FetchPoolState(ctx context.Context, pool solana.PublicKey) (*cpswap.PoolStateAccount, error) {
	poolState, err := anchor.NewPgAccounts(
		l.conn,
		func() *cpswap.PoolStateAccount { return &cpswap.PoolStateAccount{} },
	).Fetch(
		ctx,
		pool,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if poolState == nil {
		return nil, fmt.Errorf("pool account: %s not found", pool.String())
	}

	return poolState, nil
}

// FindPools lists the pools of an amm config, optionally narrowed to a mint pair.
func (l *Loader) FindPools(
	ctx context.Context,
	cpSwapProgram, ammConfig, token0Mint, token1Mint solana.PublicKey,
) ([]anchor.ProgramAccount[*cpswap.PoolStateAccount], error) {
	filters := []rpc.RPCFilter{
		helpers.PoolStateSizeFilter,
		helpers.PoolByAmmConfigFilter(ammConfig),
	}
	if !token0Mint.IsZero() {
		filters = append(filters, helpers.PoolByToken0MintFilter(token0Mint))
	}
	if !token1Mint.IsZero() {
		filters = append(filters, helpers.PoolByToken1MintFilter(token1Mint))
	}

	return anchor.NewPgAccounts(
		l.conn,
		func() *cpswap.PoolStateAccount { return &cpswap.PoolStateAccount{} },
	).All(
		ctx,
		cpSwapProgram,
		cpswap.PoolStateAccountDiscriminator,
		filters,
		nil,
	)
}

// LoadLiquidityAccounts reads the accounts named by keys in a single request and
// returns them as supplied; nothing is checked beyond decoding.
func (l *Loader) LoadLiquidityAccounts(
	ctx context.Context,
	keys *types.PoolKeys,
	ownerIsSigner bool,
) (*types.LiquidityAccounts, error) {
	addresses := []solana.PublicKey{
		keys.PoolState,
		keys.Token0Vault,
		keys.Token1Vault,
		keys.LpMint,
		keys.Token0Mint,
		keys.Token1Mint,
		keys.OwnerToken0,
		keys.OwnerToken1,
		keys.OwnerLpToken,
	}

	out, err := l.conn.GetMultipleAccounts(ctx, addresses...)
	if err != nil {
		return nil, fmt.Errorf("err fetching liquidity accounts: %w", err)
	}
	if len(out.Value) != len(addresses) {
		return nil, fmt.Errorf("expected %d accounts, got %d", len(addresses), len(out.Value))
	}

	accounts := &types.LiquidityAccounts{
		CpSwapProgram:    keys.CpSwapProgram,
		Owner:            keys.Owner,
		OwnerIsSigner:    ownerIsSigner,
		Authority:        keys.Authority,
		PoolState:        keys.PoolState,
		TokenProgram:     solana.TokenProgramID,
		TokenProgram2022: solana.Token2022ProgramID,
		MemoProgram:      solana.MemoProgramID,
	}

	var errs error

	if pool := out.Value[0]; pool == nil || pool.Data == nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: pool %s", helpers.ErrAccountNotFound, keys.PoolState))
	} else {
		accounts.Pool = &cpswap.PoolStateAccount{}
		if err := accounts.Pool.Unmarshal(pool.Data.GetBinary()); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("err decoding pool %s: %w", keys.PoolState, err))
		}
	}

	tokenAccounts := []*types.TokenAccount{
		&accounts.Token0Vault,
		&accounts.Token1Vault,
	}
	for i, dst := range tokenAccounts {
		var err error
		*dst, err = helpers.DecodeTokenAccount(addresses[1+i], out.Value[1+i])
		errs = multierr.Append(errs, err)
	}

	mints := []*types.MintAccount{
		&accounts.LpMint,
		&accounts.Vault0Mint,
		&accounts.Vault1Mint,
	}
	for i, dst := range mints {
		var err error
		*dst, err = helpers.DecodeMintAccount(addresses[3+i], out.Value[3+i])
		errs = multierr.Append(errs, err)
	}

	ownerAccounts := []*types.TokenAccount{
		&accounts.Token0Account,
		&accounts.Token1Account,
		&accounts.OwnerLpToken,
	}
	for i, dst := range ownerAccounts {
		var err error
		*dst, err = helpers.DecodeTokenAccount(addresses[6+i], out.Value[6+i])
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		return nil, errs
	}
	return accounts, nil
}

// LoadInitializeAccounts reads the mints and creator token accounts of a pool
// bootstrap; every other address comes from keys.
func (l *Loader) LoadInitializeAccounts(
	ctx context.Context,
	keys *types.PoolKeys,
	createPoolFee solana.PublicKey,
	creatorIsSigner bool,
) (*types.InitializeAccounts, error) {
	addresses := []solana.PublicKey{
		keys.Token0Mint,
		keys.Token1Mint,
		keys.OwnerToken0,
		keys.OwnerToken1,
	}

	out, err := l.conn.GetMultipleAccounts(ctx, addresses...)
	if err != nil {
		return nil, fmt.Errorf("err fetching initialize accounts: %w", err)
	}
	if len(out.Value) != len(addresses) {
		return nil, fmt.Errorf("expected %d accounts, got %d", len(addresses), len(out.Value))
	}

	accounts := &types.InitializeAccounts{
		CpSwapProgram:          keys.CpSwapProgram,
		Creator:                keys.Owner,
		CreatorIsSigner:        creatorIsSigner,
		AmmConfig:              keys.AmmConfig,
		Authority:              keys.Authority,
		PoolState:              keys.PoolState,
		LpMint:                 keys.LpMint,
		CreatorLpToken:         keys.OwnerLpToken,
		Token0Vault:            keys.Token0Vault,
		Token1Vault:            keys.Token1Vault,
		CreatePoolFee:          createPoolFee,
		ObservationState:       keys.ObservationState,
		TokenProgram:           solana.TokenProgramID,
		Token0Program:          keys.Token0Program,
		Token1Program:          keys.Token1Program,
		AssociatedTokenProgram: solana.SPLAssociatedTokenAccountProgramID,
		SystemProgram:          solana.SystemProgramID,
		Rent:                   solana.SysVarRentPubkey,
	}

	var errs error
	var mintErr, tokenErr error

	accounts.Token0Mint, mintErr = helpers.DecodeMintAccount(addresses[0], out.Value[0])
	errs = multierr.Append(errs, mintErr)
	accounts.Token1Mint, mintErr = helpers.DecodeMintAccount(addresses[1], out.Value[1])
	errs = multierr.Append(errs, mintErr)
	accounts.CreatorToken0, tokenErr = helpers.DecodeTokenAccount(addresses[2], out.Value[2])
	errs = multierr.Append(errs, tokenErr)
	accounts.CreatorToken1, tokenErr = helpers.DecodeTokenAccount(addresses[3], out.Value[3])
	errs = multierr.Append(errs, tokenErr)

	if errs != nil {
		return nil, errs
	}
	return accounts, nil
}
