package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configurable parameters for marketwallet.
type Config struct {
	// RPCURL is the Ethereum JSON-RPC endpoint used for ENS lookups.
	// Empty disables identity resolution.
	RPCURL string

	// DataDir holds the durable key-value store (the listed-items file).
	DataDir string

	// ListenAddr is the HTTP facade bind address.
	ListenAddr string

	// ScanDelay is the fixed delay before the scan modal shows its result.
	ScanDelay time.Duration

	// ContextTimeout bounds each outbound RPC call.
	ContextTimeout time.Duration

	// DefaultDisplayName is used when the user declines to pick one.
	DefaultDisplayName string

	// Mnemonic seeds the built-in HD wallet provider.
	Mnemonic string

	// AccountCount is how many accounts the HD provider derives.
	AccountCount int
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		RPCURL:     "",
		DataDir:    defaultDataDir(),
		ListenAddr: ":8087",

		ScanDelay:      900 * time.Millisecond,
		ContextTimeout: 15 * time.Second,

		DefaultDisplayName: "User",

		Mnemonic:     "",
		AccountCount: 1,
	}
}

// FromEnv returns a Config populated from environment variables,
// falling back to defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("ETH_RPC_URL"); v != "" {
		cfg.RPCURL = v
	}
	if v := os.Getenv("MARKETWALLET_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("MARKETWALLET_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("SCAN_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ScanDelay = d
		}
	}
	if v := os.Getenv("CONTEXT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ContextTimeout = d
		}
	}
	if v := os.Getenv("DEFAULT_DISPLAY_NAME"); v != "" {
		cfg.DefaultDisplayName = v
	}
	if v := os.Getenv("WALLET_MNEMONIC"); v != "" {
		cfg.Mnemonic = v
	}
	if v := os.Getenv("WALLET_ACCOUNT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AccountCount = n
		}
	}

	return cfg
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".marketwallet"
	}
	return filepath.Join(home, ".marketwallet")
}
