package config

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/proxy"
	"github.com/gtdvccc/orcacpi/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ORCACPI"

// Config holds configuration values loaded from flags, env, config file or
// a .env file.
type Config struct {
	RPCURL               string
	WSURL                string
	PrivateKey           string
	WhirlpoolProgram     solana.PublicKey
	ProxyProgram         solana.PublicKey
	Simulate             bool
	TickArrayDiagnostics bool
	LogLevel             string
}

// legacyEnv are the variable names the swap examples used before the
// ORCACPI_ prefix existed.
var legacyEnv = map[string]string{
	"rpc":         "SOLANA_RPC_URL",
	"ws":          "SOLANA_WS_RPC_URL",
	"private-key": "SOLANA_PRIVATE_KEY",
}

// Load merges flags, environment variables, config file, .env file and
// defaults into Config, in that order of precedence.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	return load(cfgFile, utils.FindEnvFile(""), flags)
}

func load(cfgFile, envFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		envKey := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetDefault("whirlpool-program", orca.ORCA_WHIRLPOOL_PROGRAM_ID.String())
	v.SetDefault("proxy-program", proxy.ProgramID.String())
	v.SetDefault("simulate", true)
	v.SetDefault("tick-array-diagnostics", true)
	v.SetDefault("log-level", "info")

	if envFile != "" {
		if err := applyEnvFile(v, envFile); err != nil {
			return Config{}, err
		}
	}

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
		v.SetConfigName("orcacpi")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	whirlpoolProgram, err := solana.PublicKeyFromBase58(v.GetString("whirlpool-program"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid whirlpool-program: %w", err)
	}
	proxyProgram, err := solana.PublicKeyFromBase58(v.GetString("proxy-program"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid proxy-program: %w", err)
	}

	cfg := Config{
		RPCURL:               v.GetString("rpc"),
		WSURL:                v.GetString("ws"),
		PrivateKey:           v.GetString("private-key"),
		WhirlpoolProgram:     whirlpoolProgram,
		ProxyProgram:         proxyProgram,
		Simulate:             v.GetBool("simulate"),
		TickArrayDiagnostics: v.GetBool("tick-array-diagnostics"),
		LogLevel:             v.GetString("log-level"),
	}

	return cfg, nil
}

// applyEnvFile turns the entries of a .env file into defaults. Both
// ORCACPI_-prefixed names and the legacy names are understood; real
// environment variables still win.
func applyEnvFile(v *viper.Viper, path string) error {
	ev := viper.New()
	ev.SetConfigFile(path)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	prefix := strings.ToLower(envPrefix) + "_"
	for _, name := range ev.AllKeys() {
		if key, ok := strings.CutPrefix(name, prefix); ok {
			v.SetDefault(strings.ReplaceAll(key, "_", "-"), ev.Get(name))
		}
	}
	for key, legacy := range legacyEnv {
		name := strings.ToLower(legacy)
		if ev.IsSet(name) && !ev.IsSet(prefix+strings.ReplaceAll(key, "-", "_")) {
			v.SetDefault(key, ev.Get(name))
		}
	}
	return nil
}

// Signer parses the configured private key.
func (c Config) Signer() (solana.PrivateKey, error) {
	if c.PrivateKey == "" {
		return nil, fmt.Errorf("private-key is required")
	}
	key, err := solana.PrivateKeyFromBase58(c.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private-key: %w", err)
	}
	return key, nil
}
