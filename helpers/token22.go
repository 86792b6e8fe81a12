package helpers

import (
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

// DecodeTokenAccount decodes an SPL token account owned by either token program.
// Token-2022 extensions trail the base layout and are ignored.
func DecodeTokenAccount(address solana.PublicKey, account *rpc.Account) (types.TokenAccount, error) {
	data, err := tokenProgramData(address, account)
	if err != nil {
		return types.TokenAccount{}, err
	}

	var decoded token.Account
	if err := decoded.UnmarshalWithDecoder(ag_binary.NewBinDecoder(data)); err != nil {
		return types.TokenAccount{}, fmt.Errorf("err decoding token account %s: %w", address, err)
	}

	return types.TokenAccount{
		Address: address,
		Mint:    decoded.Mint,
		Owner:   decoded.Owner,
		Amount:  decoded.Amount,
		Program: account.Owner,
	}, nil
}

// DecodeMintAccount decodes an SPL mint owned by either token program.
func DecodeMintAccount(address solana.PublicKey, account *rpc.Account) (types.MintAccount, error) {
	data, err := tokenProgramData(address, account)
	if err != nil {
		return types.MintAccount{}, err
	}

	var decoded token.Mint
	if err := decoded.UnmarshalWithDecoder(ag_binary.NewBinDecoder(data)); err != nil {
		return types.MintAccount{}, fmt.Errorf("err decoding mint %s: %w", address, err)
	}

	return types.MintAccount{
		Address:  address,
		Program:  account.Owner,
		Decimals: decoded.Decimals,
		Supply:   decoded.Supply,
	}, nil
}

func tokenProgramData(address solana.PublicKey, account *rpc.Account) ([]byte, error) {
	if account == nil || account.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	if !IsTokenProgram(account.Owner) {
		return nil, fmt.Errorf("%w: %s is owned by %s", ErrNotTokenProgram, address, account.Owner)
	}
	return account.Data.GetBinary(), nil
}
