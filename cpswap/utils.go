package cpswap

import (
	"bytes"
	"encoding/binary"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// encodeArgs writes the discriminator followed by each value as a little endian u64.
func encodeArgs(discriminator ag_binary.TypeID, values ...uint64) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(8 + 8*len(values))

	enc := ag_binary.NewBorshEncoder(buf)
	// writes to a bytes.Buffer never fail
	_ = enc.WriteBytes(discriminator[:], false)
	for _, v := range values {
		_ = enc.WriteUint64(v, binary.LittleEndian)
	}
	return buf.Bytes()
}

// decodeArgs is the inverse of encodeArgs.
func decodeArgs(data []byte, discriminator ag_binary.TypeID, n int) ([]uint64, error) {
	if len(data) != 8+8*n {
		return nil, ErrInvalidInstructionData
	}

	dec := ag_binary.NewBorshDecoder(data)
	typeID, err := dec.ReadTypeID()
	if err != nil {
		return nil, err
	}
	if !typeID.Equal(discriminator[:]) {
		return nil, ErrInvalidInstructionData
	}

	out := make([]uint64, n)
	for i := range out {
		if out[i], err = dec.ReadUint64(binary.LittleEndian); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readKey(dec *ag_binary.Decoder, dst *solana.PublicKey) error {
	b, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	*dst = solana.PublicKeyFromBytes(b)
	return nil
}
