package anchor

import (
	"context"
	"errors"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// PgAccountI is a decodable anchor account.
type PgAccountI interface {
	UnmarshalWithDecoder(dec *ag_binary.Decoder) error
}

// Client is the subset of *rpc.Client used to read program accounts.
type Client interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetProgramAccountsWithOpts(ctx context.Context, publicKey solana.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error)
}

type ProgramAccount[T PgAccountI] struct {
	PublicKey solana.PublicKey
	Account   T
}

type PgAccounts[T PgAccountI] struct {
	conn    Client
	account func() T
}

func NewPgAccounts[T PgAccountI](conn Client, account func() T) *PgAccounts[T] {
	return &PgAccounts[T]{
		conn:    conn,
		account: account,
	}
}

// Fetch reads and decodes one account. A missing account is not an error: the
// zero T is returned instead.
func (pg *PgAccounts[T]) Fetch(ctx context.Context, address solana.PublicKey, opts *rpc.GetAccountInfoOpts) (T, error) {
	var zero T

	if opts == nil {
		opts = &rpc.GetAccountInfoOpts{
			Encoding: solana.EncodingBase64,
		}
	}

	out, err := pg.conn.GetAccountInfoWithOpts(ctx, address, opts)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return zero, nil
		}
		return zero, err
	}
	if out == nil || out.Value == nil || out.Value.Data == nil {
		return zero, nil
	}

	account := pg.account()
	if err := account.UnmarshalWithDecoder(ag_binary.NewBorshDecoder(out.Value.Data.GetBinary())); err != nil {
		return zero, fmt.Errorf("err decoding account %s: %w", address, err)
	}
	return account, nil
}

// All lists every account of programID carrying the discriminator and
// matching the filters.
func (pg *PgAccounts[T]) All(
	ctx context.Context,
	programID solana.PublicKey,
	discriminator ag_binary.TypeID,
	filters []rpc.RPCFilter,
	opts *rpc.GetProgramAccountsOpts,
) ([]ProgramAccount[T], error) {
	if opts == nil {
		opts = &rpc.GetProgramAccountsOpts{
			Encoding: solana.EncodingBase64,
		}
	}

	opts.Filters = append([]rpc.RPCFilter{{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: 0,
			Bytes:  discriminator[:],
		},
	}}, filters...)

	out, err := pg.conn.GetProgramAccountsWithOpts(ctx, programID, opts)
	if err != nil {
		return nil, err
	}

	accounts := make([]ProgramAccount[T], 0, len(out))
	for _, keyed := range out {
		if keyed == nil || keyed.Account == nil || keyed.Account.Data == nil {
			continue
		}
		account := pg.account()
		if err := account.UnmarshalWithDecoder(ag_binary.NewBorshDecoder(keyed.Account.Data.GetBinary())); err != nil {
			return nil, fmt.Errorf("err decoding account %s: %w", keyed.Pubkey, err)
		}
		accounts = append(accounts, ProgramAccount[T]{
			PublicKey: keyed.Pubkey,
			Account:   account,
		})
	}
	return accounts, nil
}
