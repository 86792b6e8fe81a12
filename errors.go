package liquidityinteraction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

var (
	// ErrConstraintViolation matches any request rejected before an engine invocation.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrExternalEngineFailure matches any failure reported by the engine or the unit of execution.
	ErrExternalEngineFailure = errors.New("external engine failure")
)

// Constraint names one relationship between the supplied accounts.
type Constraint string

const (
	ConstraintSigner         Constraint = "signer"
	ConstraintAuthority      Constraint = "authority"
	ConstraintProgram        Constraint = "program"
	ConstraintPoolRecord     Constraint = "pool_record"
	ConstraintVaultAddress   Constraint = "vault_address"
	ConstraintVaultMint      Constraint = "vault_mint"
	ConstraintLpMint         Constraint = "lp_mint"
	ConstraintTokenMint      Constraint = "token_mint"
	ConstraintTokenOwner     Constraint = "token_owner"
	ConstraintTokenProgram   Constraint = "token_program"
	ConstraintDerivedAddress Constraint = "derived_address"
)

// Violation is one failed relationship.
type Violation struct {
	Constraint Constraint
	// Account is the name of the offending account in the instruction.
	Account  string
	Expected solana.PublicKey
	Actual   solana.PublicKey
	Detail   string
}

func (v Violation) String() string {
	if v.Detail != "" {
		return fmt.Sprintf("%s(%s): %s", v.Constraint, v.Account, v.Detail)
	}
	return fmt.Sprintf("%s(%s): expected %s, got %s", v.Constraint, v.Account, v.Expected, v.Actual)
}

// ConstraintViolation carries every relationship that failed for one request.
type ConstraintViolation struct {
	Operation  types.Operation
	Violations []Violation
}

func (e *ConstraintViolation) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s: %s: %s", e.Operation, ErrConstraintViolation, strings.Join(parts, "; "))
}

func (e *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraintViolation
}

// Has reports whether the given relationship is among the violations.
func (e *ConstraintViolation) Has(c Constraint) bool {
	for _, v := range e.Violations {
		if v.Constraint == c {
			return true
		}
	}
	return false
}

// ExternalEngineFailure wraps, without interpreting, an error raised while invoking the engine.
type ExternalEngineFailure struct {
	Operation types.Operation
	// Stage is the failing entry point, or "commit" when the unit of execution failed.
	Stage string
	Err   error
}

func (e *ExternalEngineFailure) Error() string {
	return fmt.Sprintf("%s: %s during %s: %s", e.Operation, ErrExternalEngineFailure, e.Stage, e.Err)
}

func (e *ExternalEngineFailure) Unwrap() error {
	return e.Err
}

func (e *ExternalEngineFailure) Is(target error) bool {
	return target == ErrExternalEngineFailure
}

func newConstraintViolation(op types.Operation, violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ConstraintViolation{
		Operation:  op,
		Violations: violations,
	}
}
