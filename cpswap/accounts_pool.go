package cpswap

import (
	"encoding/binary"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

const (
	PoolStateAccountSize = (8 + // discriminator
		32 + // amm_config
		32 + // pool_creator
		32 + // token_0_vault
		32 + // token_1_vault
		32 + // lp_mint
		32 + // token_0_mint
		32 + // token_1_mint
		32 + // token_0_program
		32 + // token_1_program
		32 + // observation_key
		1 + // auth_bump
		1 + // status
		1 + // lp_mint_decimals
		1 + // mint_0_decimals
		1 + // mint_1_decimals
		8 + // lp_supply
		8 + // protocol_fees_token_0
		8 + // protocol_fees_token_1
		8 + // fund_fees_token_0
		8 + // fund_fees_token_1
		8 + // open_time
		8 + // recent_epoch
		8*31) // padding
)

// PoolStateAccount is the pool record owned by the cp-swap program.
// Only the vault and lp mint addresses are read by the validator.
type PoolStateAccount struct {
	AmmConfig          solana.PublicKey
	PoolCreator        solana.PublicKey
	Token0Vault        solana.PublicKey
	Token1Vault        solana.PublicKey
	LpMint             solana.PublicKey
	Token0Mint         solana.PublicKey
	Token1Mint         solana.PublicKey
	Token0Program      solana.PublicKey
	Token1Program      solana.PublicKey
	ObservationKey     solana.PublicKey
	AuthBump           uint8
	Status             uint8
	LpMintDecimals     uint8
	Mint0Decimals      uint8
	Mint1Decimals      uint8
	LpSupply           uint64
	ProtocolFeesToken0 uint64
	ProtocolFeesToken1 uint64
	FundFeesToken0     uint64
	FundFeesToken1     uint64
	OpenTime           uint64
	RecentEpoch        uint64
}

func (obj *PoolStateAccount) Unmarshal(data []byte) error {
	if len(data) < PoolStateAccountSize {
		return ErrInvalidAccountData
	}
	return obj.UnmarshalWithDecoder(ag_binary.NewBorshDecoder(data))
}

func (obj *PoolStateAccount) UnmarshalWithDecoder(dec *ag_binary.Decoder) error {
	discriminator, err := dec.ReadTypeID()
	if err != nil {
		return err
	}
	if !discriminator.Equal(PoolStateAccountDiscriminator[:]) {
		return ErrInvalidAccountData
	}

	for _, key := range []*solana.PublicKey{
		&obj.AmmConfig,
		&obj.PoolCreator,
		&obj.Token0Vault,
		&obj.Token1Vault,
		&obj.LpMint,
		&obj.Token0Mint,
		&obj.Token1Mint,
		&obj.Token0Program,
		&obj.Token1Program,
		&obj.ObservationKey,
	} {
		if err := readKey(dec, key); err != nil {
			return err
		}
	}

	for _, v := range []*uint8{
		&obj.AuthBump,
		&obj.Status,
		&obj.LpMintDecimals,
		&obj.Mint0Decimals,
		&obj.Mint1Decimals,
	} {
		if *v, err = dec.ReadUint8(); err != nil {
			return err
		}
	}

	for _, v := range []*uint64{
		&obj.LpSupply,
		&obj.ProtocolFeesToken0,
		&obj.ProtocolFeesToken1,
		&obj.FundFeesToken0,
		&obj.FundFeesToken1,
		&obj.OpenTime,
		&obj.RecentEpoch,
	} {
		if *v, err = dec.ReadUint64(binary.LittleEndian); err != nil {
			return err
		}
	}

	return nil
}

// Marshal encodes the account with its discriminator and zeroed padding.
func (obj *PoolStateAccount) Marshal() []byte {
	data := make([]byte, PoolStateAccountSize)
	var offset int

	copy(data[offset:], PoolStateAccountDiscriminator[:])
	offset += 8

	for _, key := range []solana.PublicKey{
		obj.AmmConfig,
		obj.PoolCreator,
		obj.Token0Vault,
		obj.Token1Vault,
		obj.LpMint,
		obj.Token0Mint,
		obj.Token1Mint,
		obj.Token0Program,
		obj.Token1Program,
		obj.ObservationKey,
	} {
		copy(data[offset:], key[:])
		offset += solana.PublicKeyLength
	}

	for _, v := range []uint8{
		obj.AuthBump,
		obj.Status,
		obj.LpMintDecimals,
		obj.Mint0Decimals,
		obj.Mint1Decimals,
	} {
		data[offset] = v
		offset++
	}

	for _, v := range []uint64{
		obj.LpSupply,
		obj.ProtocolFeesToken0,
		obj.ProtocolFeesToken1,
		obj.FundFeesToken0,
		obj.FundFeesToken1,
		obj.OpenTime,
		obj.RecentEpoch,
	} {
		binary.LittleEndian.PutUint64(data[offset:], v)
		offset += 8
	}

	return data
}

func (obj *PoolStateAccount) String() string {
	return fmt.Sprintf(
		"PoolState{amm_config=%s,token_0_vault=%s,token_1_vault=%s,lp_mint=%s,token_0_mint=%s,token_1_mint=%s,status=%d,lp_supply=%d,open_time=%d}",
		base58.Encode(obj.AmmConfig[:]),
		base58.Encode(obj.Token0Vault[:]),
		base58.Encode(obj.Token1Vault[:]),
		base58.Encode(obj.LpMint[:]),
		base58.Encode(obj.Token0Mint[:]),
		base58.Encode(obj.Token1Mint[:]),
		obj.Status,
		obj.LpSupply,
		obj.OpenTime,
	)
}
