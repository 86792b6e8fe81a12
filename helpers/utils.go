package helpers

import (
	"bytes"
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNotTokenProgram = errors.New("account not owned by a token program")
)

// IsTokenProgram reports whether programID is the SPL Token or Token-2022 program.
func IsTokenProgram(programID solana.PublicKey) bool {
	return programID.Equals(solana.TokenProgramID) || programID.Equals(solana.Token2022ProgramID)
}

// SortMints orders two mints the way cp-swap expects token 0 and token 1.
func SortMints(a, b solana.PublicKey) (solana.PublicKey, solana.PublicKey) {
	if bytes.Compare(b.Bytes(), a.Bytes()) < 0 {
		return b, a
	}
	return a, b
}
