package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	liquidityinteraction "github.com/RequescoS/raydium-liquidity-interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/executor"
	"github.com/RequescoS/raydium-liquidity-interaction/helpers"
	"github.com/RequescoS/raydium-liquidity-interaction/interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/internal/config"
	"github.com/RequescoS/raydium-liquidity-interaction/types"
)

// session is what every subcommand shares: configuration, logger and rpc.
type session struct {
	cfg    config.Config
	log    *zap.Logger
	conn   *rpc.Client
	loader *liquidityinteraction.Loader
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}

	conn := rpc.New(cfg.RPCURL)
	return &session{
		cfg:    cfg,
		log:    logger,
		conn:   conn,
		loader: liquidityinteraction.NewLoader(conn),
	}, nil
}

// newExecutor loads the keypair and, unless simulating, opens the websocket
// used to confirm transactions. The returned func releases it.
func (s *session) newExecutor(ctx context.Context) (*executor.TxExecutor, solana.PrivateKey, func(), error) {
	if s.cfg.Keypair == "" {
		return nil, nil, nil, fmt.Errorf("keypair is required")
	}
	payer, err := solana.PrivateKeyFromSolanaKeygenFile(s.cfg.Keypair)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load keypair: %w", err)
	}

	release := func() {}
	var send executor.SendFunc
	if !s.cfg.Simulate {
		wsClient, err := ws.Connect(ctx, s.cfg.WSURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect ws: %w", err)
		}
		release = wsClient.Close
		send = executor.SendAndConfirm(s.conn, wsClient)
	}

	exec := executor.NewTxExecutor(
		s.conn,
		send,
		s.cfg.CpSwapProgram,
		payer,
		executor.WithComputeUnitLimit(s.cfg.ComputeUnitLimit),
		executor.WithSimulation(s.cfg.Simulate),
		executor.WithLogger(s.log),
	)
	return exec, payer, release, nil
}

func (s *session) interaction(exec liquidityinteraction.Executor) *liquidityinteraction.LiquidityInteraction {
	return liquidityinteraction.NewLiquidityInteraction(
		exec,
		liquidityinteraction.WithCpSwapProgram(s.cfg.CpSwapProgram),
		liquidityinteraction.WithLogger(s.log),
	)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runAuthority(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	authority, bump, err := liquidityinteraction.DeriveAuthority(s.cfg.CpSwapProgram)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", authority, bump)
	return nil
}

func runPool(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	ctx, stop := signalContext()
	defer stop()

	if pool, err := optionalKey(cmd, "pool"); err != nil {
		return err
	} else if !pool.IsZero() {
		state, err := s.loader.FetchPoolState(ctx, pool)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), state.String())
		return nil
	}

	ammConfig, err := requiredKey(cmd, "amm-config")
	if err != nil {
		return err
	}
	mint0, err := optionalKey(cmd, "mint-0")
	if err != nil {
		return err
	}
	mint1, err := optionalKey(cmd, "mint-1")
	if err != nil {
		return err
	}

	pools, err := s.loader.FindPools(ctx, s.cfg.CpSwapProgram, ammConfig, mint0, mint1)
	if err != nil {
		return err
	}
	for _, pool := range pools {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", pool.PublicKey, pool.Account.String())
	}
	return nil
}

func runInitialize(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	ctx, stop := signalContext()
	defer stop()

	ammConfig, err := requiredKey(cmd, "amm-config")
	if err != nil {
		return err
	}
	mintA, err := requiredKey(cmd, "mint-a")
	if err != nil {
		return err
	}
	mintB, err := requiredKey(cmd, "mint-b")
	if err != nil {
		return err
	}
	token0Mint, token1Mint := helpers.SortMints(mintA, mintB)

	// the owning programs of the mints decide the creator's token account addresses
	out, err := s.conn.GetMultipleAccounts(ctx, token0Mint, token1Mint)
	if err != nil {
		return fmt.Errorf("fetch mints: %w", err)
	}
	mint0, err := helpers.DecodeMintAccount(token0Mint, out.Value[0])
	if err != nil {
		return err
	}
	mint1, err := helpers.DecodeMintAccount(token1Mint, out.Value[1])
	if err != nil {
		return err
	}

	exec, payer, release, err := s.newExecutor(ctx)
	if err != nil {
		return err
	}
	defer release()

	keys, err := liquidityinteraction.DerivePoolKeys(types.DerivePoolKeysParams{
		CpSwapProgram: s.cfg.CpSwapProgram,
		AmmConfig:     ammConfig,
		Token0Mint:    token0Mint,
		Token1Mint:    token1Mint,
		Token0Program: mint0.Program,
		Token1Program: mint1.Program,
		Owner:         payer.PublicKey(),
	})
	if err != nil {
		return err
	}

	accounts, err := s.loader.LoadInitializeAccounts(ctx, keys, s.cfg.CreatePoolFee, true)
	if err != nil {
		return err
	}

	args := types.InitializeArgs{}
	args.InitAmount0, _ = cmd.Flags().GetUint64("init-amount-0")
	args.InitAmount1, _ = cmd.Flags().GetUint64("init-amount-1")
	args.OpenTime, _ = cmd.Flags().GetUint64("open-time")

	s.log.Info("initialize",
		zap.Stringer("pool", keys.PoolState),
		zap.Stringer("token_0_mint", token0Mint),
		zap.Stringer("token_1_mint", token1Mint),
	)

	if s.cfg.ViaProgram {
		if vs := liquidityinteraction.ValidateInitializeAccounts(s.cfg.CpSwapProgram, accounts); len(vs) > 0 {
			return &liquidityinteraction.ConstraintViolation{Operation: types.OperationInitialize, Violations: vs}
		}
		return exec.Submit(ctx, interaction.NewInitializeInstruction(
			s.cfg.InteractionProgram,
			s.cfg.CpSwapProgram,
			liquidityinteraction.ToInitializeAccounts(accounts),
			args,
		))
	}

	return s.interaction(exec).Initialize(ctx, accounts, args)
}

func runLiquidity(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	ctx, stop := signalContext()
	defer stop()

	op, err := operation(cmd.Name())
	if err != nil {
		return err
	}

	poolAddress, err := requiredKey(cmd, "pool")
	if err != nil {
		return err
	}
	pool, err := s.loader.FetchPoolState(ctx, poolAddress)
	if err != nil {
		return err
	}

	exec, owner, release, err := s.newExecutor(ctx)
	if err != nil {
		return err
	}
	defer release()

	keys, err := liquidityinteraction.PoolKeysFromState(s.cfg.CpSwapProgram, poolAddress, pool, owner.PublicKey())
	if err != nil {
		return err
	}

	// deposits need an existing lp token account; it is created in its own transaction
	if create, _ := cmd.Flags().GetBool("create-lp-account"); create {
		createIx := associatedtokenaccount.NewCreateInstruction(owner.PublicKey(), owner.PublicKey(), keys.LpMint).Build()
		if err := exec.Submit(ctx, createIx); err != nil {
			return fmt.Errorf("create lp token account: %w", err)
		}
	}

	accounts, err := s.loader.LoadLiquidityAccounts(ctx, keys, true)
	if err != nil {
		return err
	}

	args := types.LiquidityArgs{}
	args.LpTokenAmount, _ = cmd.Flags().GetUint64("lp-token-amount")
	args.MaximumToken0Amount, _ = cmd.Flags().GetUint64("maximum-token-0-amount")
	args.MaximumToken1Amount, _ = cmd.Flags().GetUint64("maximum-token-1-amount")

	if s.cfg.ViaProgram {
		return s.submitViaProgram(ctx, exec, op, accounts, args)
	}

	return s.interaction(exec).Execute(ctx, types.Request{
		Operation:         op,
		LiquidityAccounts: accounts,
		LiquidityArgs:     args,
	})
}

// submitViaProgram checks the accounts locally and sends the interaction
// program's own instruction, which repeats the checks on chain.
func (s *session) submitViaProgram(
	ctx context.Context,
	exec *executor.TxExecutor,
	op types.Operation,
	accounts *types.LiquidityAccounts,
	args types.LiquidityArgs,
) error {
	withdraw := op != types.OperationAddLiquidity
	if vs := liquidityinteraction.ValidateLiquidityAccounts(s.cfg.CpSwapProgram, accounts, withdraw); len(vs) > 0 {
		return &liquidityinteraction.ConstraintViolation{Operation: op, Violations: vs}
	}

	var ix solana.Instruction
	switch op {
	case types.OperationAddLiquidity:
		ix = interaction.NewAddLiquidityInstruction(s.cfg.InteractionProgram, s.cfg.CpSwapProgram, liquidityinteraction.ToDepositAccounts(accounts), args)
	case types.OperationRemoveLiquidity:
		ix = interaction.NewRemoveLiquidityInstruction(s.cfg.InteractionProgram, s.cfg.CpSwapProgram, liquidityinteraction.ToWithdrawAccounts(accounts), args)
	default:
		ix = interaction.NewAddAndRemoveLiquidityInstruction(s.cfg.InteractionProgram, s.cfg.CpSwapProgram, liquidityinteraction.ToWithdrawAccounts(accounts), args)
	}
	return exec.Submit(ctx, ix)
}

func operation(name string) (types.Operation, error) {
	switch name {
	case "add-liquidity":
		return types.OperationAddLiquidity, nil
	case "remove-liquidity":
		return types.OperationRemoveLiquidity, nil
	case "add-and-remove-liquidity":
		return types.OperationAddAndRemoveLiquidity, nil
	default:
		return 0, fmt.Errorf("unknown command %q", name)
	}
}

func requiredKey(cmd *cobra.Command, name string) (solana.PublicKey, error) {
	pk, err := optionalKey(cmd, name)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if pk.IsZero() {
		return solana.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	return pk, nil
}

func optionalKey(cmd *cobra.Command, name string) (solana.PublicKey, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		return solana.PublicKey{}, nil
	}
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return pk, nil
}
