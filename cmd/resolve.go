package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khushi-labs/marketwallet/internal/config"
	"github.com/khushi-labs/marketwallet/internal/ens"
)

var resolveRPCURL string

var resolveCmd = &cobra.Command{
	Use:   "resolve <address>",
	Short: "Reverse-resolve the ENS name for a wallet address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if resolveRPCURL != "" {
			cfg.RPCURL = resolveRPCURL
		}
		if cfg.RPCURL == "" {
			return fmt.Errorf("no RPC endpoint configured (set ETH_RPC_URL or --rpc-url)")
		}

		client, err := ens.Dial(cfg.RPCURL, cfg.ContextTimeout)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer client.Close()

		name := client.ResolveName(context.Background(), args[0])
		if name == "" {
			fmt.Println("no name found")
			return nil
		}
		fmt.Println(name)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveRPCURL, "rpc-url", "", "Ethereum JSON-RPC endpoint (overrides ETH_RPC_URL)")
}
