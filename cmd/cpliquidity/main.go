package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "cpliquidity",
		Short:        "Validated liquidity operations on Raydium cp-swap pools",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", "", "Solana RPC URL")
	root.PersistentFlags().String("ws", "", "Solana websocket URL, derived from --rpc when empty")
	root.PersistentFlags().String("cp-swap-program", "", "cp-swap program id")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	authorityCmd := &cobra.Command{
		Use:   "authority",
		Short: "Print the vault and lp mint authority of the cp-swap program",
		RunE:  runAuthority,
	}
	root.AddCommand(authorityCmd)

	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Show a pool record, or list the pools of an amm config",
		RunE:  runPool,
	}
	poolCmd.Flags().String("pool", "", "pool state address")
	poolCmd.Flags().String("amm-config", "", "amm config address, lists its pools")
	poolCmd.Flags().String("mint-0", "", "narrow the listing to a token 0 mint")
	poolCmd.Flags().String("mint-1", "", "narrow the listing to a token 1 mint")
	root.AddCommand(poolCmd)

	initializeCmd := &cobra.Command{
		Use:   "initialize",
		Short: "Create a pool and seed it with initial liquidity",
		RunE:  runInitialize,
	}
	txFlags(initializeCmd)
	initializeCmd.Flags().String("amm-config", "", "amm config address")
	initializeCmd.Flags().String("mint-a", "", "first mint, sorted into token 0 or token 1")
	initializeCmd.Flags().String("mint-b", "", "second mint, sorted into token 0 or token 1")
	initializeCmd.Flags().String("create-pool-fee", "", "pool creation fee receiver")
	initializeCmd.Flags().Uint64("init-amount-0", 0, "initial token 0 amount")
	initializeCmd.Flags().Uint64("init-amount-1", 0, "initial token 1 amount")
	initializeCmd.Flags().Uint64("open-time", 0, "unix time the pool opens for trading")
	root.AddCommand(initializeCmd)

	for _, op := range []struct {
		use, short string
	}{
		{"add-liquidity", "Deposit into a pool for an exact lp token amount"},
		{"remove-liquidity", "Burn lp tokens and withdraw from a pool"},
		{"add-and-remove-liquidity", "Withdraw then deposit in a single transaction"},
	} {
		cmd := &cobra.Command{
			Use:   op.use,
			Short: op.short,
			RunE:  runLiquidity,
		}
		txFlags(cmd)
		cmd.Flags().String("pool", "", "pool state address")
		cmd.Flags().Uint64("lp-token-amount", 0, "lp token amount")
		cmd.Flags().Uint64("maximum-token-0-amount", 0, "token 0 bound")
		cmd.Flags().Uint64("maximum-token-1-amount", 0, "token 1 bound")
		cmd.Flags().Bool("create-lp-account", false, "create the owner's lp token account first")
		root.AddCommand(cmd)
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func txFlags(cmd *cobra.Command) {
	cmd.Flags().String("keypair", "", "payer and owner keypair file")
	cmd.Flags().Uint32("compute-unit-limit", 400_000, "compute unit limit of the transaction")
	cmd.Flags().Bool("simulate", false, "simulate instead of sending")
	cmd.Flags().Bool("via-program", false, "route through the on-chain interaction program")
	cmd.Flags().String("interaction-program", "", "interaction program id")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
