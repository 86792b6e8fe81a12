package executor

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	confirm "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	liquidityinteraction "github.com/RequescoS/raydium-liquidity-interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/constants"
)

var (
	ErrEmptyUnit           = errors.New("no instruction issued")
	ErrTransactionTooLarge = errors.New("transaction exceeds the size limit")
	ErrSimulationFailed    = errors.New("simulation failed")
)

// RPCClient is the subset of *rpc.Client a transaction executor needs.
type RPCClient interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SimulateTransaction(ctx context.Context, transaction *solana.Transaction) (*rpc.SimulateTransactionResponse, error)
}

// SendFunc submits a signed transaction and waits for its confirmation.
type SendFunc func(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)

// SendAndConfirm submits over rpc and confirms over the websocket subscription.
func SendAndConfirm(conn *rpc.Client, wsClient *ws.Client) SendFunc {
	return func(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
		return confirm.SendAndConfirmTransaction(ctx, conn, wsClient, tx)
	}
}

// TxExecutor runs every atomic unit as one Solana transaction: all the
// instructions issued by the unit land together or not at all.
type TxExecutor struct {
	conn          RPCClient
	send          SendFunc
	cpSwapProgram solana.PublicKey
	payer         solana.PrivateKey
	signers       map[solana.PublicKey]*solana.PrivateKey

	computeUnitLimit uint32
	simulate         bool
	log              *zap.Logger

	lastSignature solana.Signature
	lastLogs      []string
}

type Option func(*TxExecutor)

func WithComputeUnitLimit(units uint32) Option {
	return func(e *TxExecutor) {
		e.computeUnitLimit = units
	}
}

// WithSimulation makes Atomically simulate the transaction instead of sending it.
func WithSimulation(simulate bool) Option {
	return func(e *TxExecutor) {
		e.simulate = simulate
	}
}

func WithSigners(signers ...solana.PrivateKey) Option {
	return func(e *TxExecutor) {
		for _, signer := range signers {
			s := signer
			e.signers[s.PublicKey()] = &s
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *TxExecutor) {
		e.log = log
	}
}

func NewTxExecutor(
	conn RPCClient,
	send SendFunc,
	cpSwapProgram solana.PublicKey,
	payer solana.PrivateKey,
	opts ...Option,
) *TxExecutor {
	e := &TxExecutor{
		conn:             conn,
		send:             send,
		cpSwapProgram:    cpSwapProgram,
		payer:            payer,
		signers:          map[solana.PublicKey]*solana.PrivateKey{payer.PublicKey(): &payer},
		computeUnitLimit: constants.ComputeUnitLimit,
		log:              zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Atomically collects the invocations issued by fn into a single transaction.
// Nothing is submitted when fn fails.
func (e *TxExecutor) Atomically(ctx context.Context, fn func(liquidityinteraction.Engine) error) error {
	batch := NewBatch(e.cpSwapProgram)
	if err := fn(batch); err != nil {
		return err
	}
	return e.Submit(ctx, batch.Instructions()...)
}

// Submit sends, or simulates, the instructions as one transaction behind the
// compute budget instruction.
func (e *TxExecutor) Submit(ctx context.Context, ixns ...solana.Instruction) error {
	if len(ixns) == 0 {
		return ErrEmptyUnit
	}

	tx, err := e.buildTransaction(ctx, ixns)
	if err != nil {
		return err
	}

	log := e.log.With(
		zap.Int("instructions", len(tx.Message.Instructions)),
		zap.Bool("simulate", e.simulate),
	)

	if e.simulate {
		out, err := e.conn.SimulateTransaction(ctx, tx)
		if err != nil {
			return errors.Wrap(err, "error simulating transaction")
		}
		if out == nil || out.Value == nil {
			return errors.Wrap(ErrSimulationFailed, "empty simulation result")
		}
		e.lastLogs = out.Value.Logs
		if out.Value.Err != nil {
			log.Warn("simulation failed", zap.Any("err", out.Value.Err), zap.Strings("logs", out.Value.Logs))
			return errors.Wrapf(ErrSimulationFailed, "%v", out.Value.Err)
		}
		log.Info("simulation succeeded", zap.Strings("logs", out.Value.Logs))
		return nil
	}

	sig, err := e.send(ctx, tx)
	if err != nil {
		return errors.Wrap(err, "error sending transaction")
	}
	e.lastSignature = sig
	log.Info("transaction confirmed", zap.Stringer("signature", sig))
	return nil
}

func (e *TxExecutor) buildTransaction(ctx context.Context, ixns []solana.Instruction) (*solana.Transaction, error) {
	all := make([]solana.Instruction, 0, len(ixns)+1)
	if e.computeUnitLimit > 0 {
		all = append(all, computebudget.NewSetComputeUnitLimitInstruction(e.computeUnitLimit).Build())
	}
	all = append(all, ixns...)

	blockHash, err := e.conn.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving blockhash")
	}

	tx, err := solana.NewTransaction(
		all,
		blockHash.Value.Blockhash,
		solana.TransactionPayer(e.payer.PublicKey()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error building transaction")
	}

	if _, err := tx.Sign(func(pubkey solana.PublicKey) *solana.PrivateKey {
		return e.signers[pubkey]
	}); err != nil {
		return nil, errors.Wrap(err, "unable to sign transaction")
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "error encoding transaction")
	}
	if size := len(raw); size > constants.MaxTransactionSize {
		return nil, errors.Wrap(ErrTransactionTooLarge, fmt.Sprintf("%d bytes", size))
	}

	return tx, nil
}

// LastSignature is the signature of the last confirmed transaction.
func (e *TxExecutor) LastSignature() solana.Signature {
	return e.lastSignature
}

// LastLogs are the program logs of the last simulation.
func (e *TxExecutor) LastLogs() []string {
	return e.lastLogs
}
