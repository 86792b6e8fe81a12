package config

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	liquidityinteraction "github.com/RequescoS/raydium-liquidity-interaction"
	"github.com/RequescoS/raydium-liquidity-interaction/constants"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL             string
	WSURL              string
	CpSwapProgram      solana.PublicKey
	InteractionProgram solana.PublicKey
	CreatePoolFee      solana.PublicKey
	Keypair            string
	ComputeUnitLimit   uint32
	Simulate           bool
	ViaProgram         bool
	LogLevel           string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CPLIQ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc", rpc.MainNetBeta_RPC)
	v.SetDefault("cp-swap-program", liquidityinteraction.CpSwapProgramId.String())
	v.SetDefault("interaction-program", liquidityinteraction.InteractionProgramId.String())
	v.SetDefault("create-pool-fee", liquidityinteraction.CreatePoolFeeReceiver.String())
	v.SetDefault("compute-unit-limit", uint32(constants.ComputeUnitLimit))
	v.SetDefault("simulate", false)
	v.SetDefault("via-program", false)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("cpliquidity")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:           v.GetString("rpc"),
		WSURL:            v.GetString("ws"),
		Keypair:          v.GetString("keypair"),
		ComputeUnitLimit: v.GetUint32("compute-unit-limit"),
		Simulate:         v.GetBool("simulate"),
		ViaProgram:       v.GetBool("via-program"),
		LogLevel:         v.GetString("log-level"),
	}

	var err error
	if cfg.CpSwapProgram, err = publicKey(v, "cp-swap-program"); err != nil {
		return Config{}, err
	}
	if cfg.InteractionProgram, err = publicKey(v, "interaction-program"); err != nil {
		return Config{}, err
	}
	if cfg.CreatePoolFee, err = publicKey(v, "create-pool-fee"); err != nil {
		return Config{}, err
	}

	if cfg.WSURL == "" {
		cfg.WSURL = wsURL(cfg.RPCURL)
	}

	return cfg, nil
}

func publicKey(v *viper.Viper, key string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return pk, nil
}

// wsURL derives the pubsub endpoint the way public and local nodes expose it.
func wsURL(rpcURL string) string {
	rpcURL = strings.Replace(rpcURL, ":8899", ":8900", 1)
	switch {
	case strings.HasPrefix(rpcURL, "https://"):
		return "wss://" + strings.TrimPrefix(rpcURL, "https://")
	case strings.HasPrefix(rpcURL, "http://"):
		return "ws://" + strings.TrimPrefix(rpcURL, "http://")
	default:
		return rpcURL
	}
}
