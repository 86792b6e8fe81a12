package liquidityinteraction_test

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liquidityinteraction "github.com/RequescoS/raydium-liquidity-interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/helpers"
	testUtils "github.com/RequescoS/raydium-liquidity-interaction/internal/test/utils"
)

type fakeRPC struct {
	accounts map[solana.PublicKey]*rpc.Account
	requests int
	filters  []rpc.RPCFilter
}

func (f *fakeRPC) GetMultipleAccounts(_ context.Context, keys ...solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	f.requests++
	out := &rpc.GetMultipleAccountsResult{Value: make([]*rpc.Account, len(keys))}
	for i, key := range keys {
		out.Value[i] = f.accounts[key]
	}
	return out, nil
}

func (f *fakeRPC) GetAccountInfoWithOpts(_ context.Context, key solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	account, ok := f.accounts[key]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetAccountInfoResult{Value: account}, nil
}

func (f *fakeRPC) GetProgramAccountsWithOpts(_ context.Context, program solana.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error) {
	f.filters = opts.Filters
	var out rpc.GetProgramAccountsResult
	for key, account := range f.accounts {
		if account.Owner.Equals(program) {
			out = append(out, &rpc.KeyedAccount{Pubkey: key, Account: account})
		}
	}
	return out, nil
}

func TestLoadLiquidityAccounts(t *testing.T) {
	fixture := testUtils.NewFixtureWithPrograms(solana.TokenProgramID, solana.Token2022ProgramID)
	conn := &fakeRPC{accounts: fixture.RPCAccounts()}
	loader := liquidityinteraction.NewLoader(conn)

	accounts, err := loader.LoadLiquidityAccounts(context.Background(), fixture.Keys, true)
	require.NoError(t, err)
	assert.Equal(t, 1, conn.requests)

	want := fixture.LiquidityAccounts()
	assert.Equal(t, want.Pool, accounts.Pool)
	assert.Equal(t, want.Token0Vault, accounts.Token0Vault)
	assert.Equal(t, want.Token1Vault, accounts.Token1Vault)
	assert.Equal(t, want.OwnerLpToken, accounts.OwnerLpToken)
	assert.Equal(t, want.LpMint, accounts.LpMint)
	assert.Equal(t, solana.Token2022ProgramID, accounts.Vault1Mint.Program)

	assert.Empty(t, liquidityinteraction.ValidateLiquidityAccounts(liquidityinteraction.CpSwapProgramId, accounts, true))
}

func TestLoadLiquidityAccountsErrors(t *testing.T) {
	fixture := testUtils.NewFixture()
	rpcAccounts := fixture.RPCAccounts()
	delete(rpcAccounts, fixture.Keys.OwnerToken0)
	delete(rpcAccounts, fixture.Keys.OwnerToken1)
	rpcAccounts[fixture.Keys.Token0Vault].Owner = solana.SystemProgramID

	loader := liquidityinteraction.NewLoader(&fakeRPC{accounts: rpcAccounts})
	_, err := loader.LoadLiquidityAccounts(context.Background(), fixture.Keys, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, helpers.ErrAccountNotFound)
	assert.ErrorIs(t, err, helpers.ErrNotTokenProgram)
}

func TestLoadInitializeAccounts(t *testing.T) {
	fixture := testUtils.NewFixture()
	loader := liquidityinteraction.NewLoader(&fakeRPC{accounts: fixture.RPCAccounts()})

	accounts, err := loader.LoadInitializeAccounts(context.Background(), fixture.Keys, liquidityinteraction.CreatePoolFeeReceiver, true)
	require.NoError(t, err)
	assert.Equal(t, fixture.InitializeAccounts(), accounts)
}

func TestFetchPoolState(t *testing.T) {
	fixture := testUtils.NewFixture()
	conn := &fakeRPC{accounts: fixture.RPCAccounts()}
	loader := liquidityinteraction.NewLoader(conn)

	pool, err := loader.FetchPoolState(context.Background(), fixture.Keys.PoolState)
	require.NoError(t, err)
	assert.Equal(t, fixture.Pool, pool)

	_, err = loader.FetchPoolState(context.Background(), testUtils.NewPubkey("missing"))
	assert.Error(t, err)

	pools, err := loader.FindPools(context.Background(), liquidityinteraction.CpSwapProgramId, fixture.AmmConfig, fixture.Keys.Token0Mint, solana.PublicKey{})
	require.NoError(t, err)
	require.Len(t, pools, 1)
	assert.Equal(t, fixture.Keys.PoolState, pools[0].PublicKey)
	assert.Len(t, conn.filters, 4)
}
