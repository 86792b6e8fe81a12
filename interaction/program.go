// Package interaction builds the instructions of the on-chain liquidity
// interaction program, which wraps cp-swap behind its own account checks.
package interaction

import (
	"bytes"
	"encoding/binary"
	"errors"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var ErrInvalidInstructionData = errors.New("unexpected instruction data")

var ProgramID = solana.MustPublicKeyFromBase58("FWehx5BDacMCXKmS9JpxW5UFGnvF1QhtpgqUFKeMTUPk")

var (
	InitializeDiscriminator            = ag_binary.SighashTypeID(ag_binary.SIGHASH_GLOBAL_NAMESPACE, "initialize")
	AddLiquidityDiscriminator          = ag_binary.SighashTypeID(ag_binary.SIGHASH_GLOBAL_NAMESPACE, "add_liquidity")
	RemoveLiquidityDiscriminator       = ag_binary.SighashTypeID(ag_binary.SIGHASH_GLOBAL_NAMESPACE, "remove_liquidity")
	AddAndRemoveLiquidityDiscriminator = ag_binary.SighashTypeID(ag_binary.SIGHASH_GLOBAL_NAMESPACE, "add_and_remove_liquidity")
)

// every instruction of the program takes three u64 arguments
const argsSize = 8 + 3*8

func encode(discriminator ag_binary.TypeID, values [3]uint64) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(argsSize)

	enc := ag_binary.NewBorshEncoder(buf)
	_ = enc.WriteBytes(discriminator[:], false)
	for _, v := range values {
		_ = enc.WriteUint64(v, binary.LittleEndian)
	}
	return buf.Bytes()
}

func decode(data []byte) (ag_binary.TypeID, [3]uint64, error) {
	var values [3]uint64
	if len(data) != argsSize {
		return ag_binary.TypeID{}, values, ErrInvalidInstructionData
	}

	dec := ag_binary.NewBorshDecoder(data)
	discriminator, err := dec.ReadTypeID()
	if err != nil {
		return ag_binary.TypeID{}, values, err
	}
	for i := range values {
		if values[i], err = dec.ReadUint64(binary.LittleEndian); err != nil {
			return ag_binary.TypeID{}, values, err
		}
	}
	return discriminator, values, nil
}

// prepend puts the cp-swap program account ahead of the engine accounts, the
// way every instruction of the program lists them.
func prepend(cpSwapProgram solana.PublicKey, accounts solana.AccountMetaSlice) solana.AccountMetaSlice {
	out := make(solana.AccountMetaSlice, 0, len(accounts)+1)
	out = append(out, solana.Meta(cpSwapProgram))
	return append(out, accounts...)
}
