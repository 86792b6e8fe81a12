package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liquidityinteraction "github.com/RequescoS/raydium-liquidity-interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/cpswap"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, liquidityinteraction.CpSwapProgramId, cfg.CpSwapProgram)
	assert.Equal(t, liquidityinteraction.InteractionProgramId, cfg.InteractionProgram)
	assert.Equal(t, liquidityinteraction.CreatePoolFeeReceiver, cfg.CreatePoolFee)
	assert.Equal(t, uint32(400_000), cfg.ComputeUnitLimit)
	assert.Equal(t, "wss://api.mainnet-beta.solana.com", cfg.WSURL)
	assert.False(t, cfg.Simulate)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "cpliquidity.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("rpc: http://127.0.0.1:8899\nsimulate: true\nlog-level: debug\n"), 0o600))

	t.Setenv("CPLIQ_CP_SWAP_PROGRAM", cpswap.DevnetProgramID.String())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.Uint32("compute-unit-limit", 400_000, "")
	require.NoError(t, flags.Parse([]string{"--compute-unit-limit=250000"}))

	cfg, err := Load(cfgFile, flags)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8899", cfg.RPCURL)
	assert.Equal(t, "ws://127.0.0.1:8900", cfg.WSURL)
	assert.True(t, cfg.Simulate)
	assert.Equal(t, "debug", cfg.LogLevel, "config file wins over an unchanged flag default")
	assert.Equal(t, uint32(250_000), cfg.ComputeUnitLimit)
	assert.Equal(t, cpswap.DevnetProgramID, cfg.CpSwapProgram)
}

func TestLoadInvalidKey(t *testing.T) {
	t.Setenv("CPLIQ_CREATE_POOL_FEE", "not-a-key")

	_, err := Load("", nil)
	assert.ErrorContains(t, err, "create-pool-fee")
}

func TestWSURL(t *testing.T) {
	assert.Equal(t, "wss://rpc.example.com", wsURL("https://rpc.example.com"))
	assert.Equal(t, "ws://localhost:8900", wsURL("http://localhost:8899"))
}
