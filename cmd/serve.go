package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/khushi-labs/marketwallet/internal/api"
	"github.com/khushi-labs/marketwallet/internal/config"
	"github.com/khushi-labs/marketwallet/internal/ens"
	"github.com/khushi-labs/marketwallet/internal/storage"
	"github.com/khushi-labs/marketwallet/internal/ui"
	"github.com/khushi-labs/marketwallet/internal/wallet"
)

var (
	serveListenAddr string
	serveDataDir    string
	serveRPCURL     string
	serveMnemonic   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP facade",
	Long: `Serve exposes every page-callable entry point as a JSON API under
/api/v1. Connect prompts (display name, disconnect confirmation) happen on
this terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if serveListenAddr != "" {
			cfg.ListenAddr = serveListenAddr
		}
		if serveDataDir != "" {
			cfg.DataDir = serveDataDir
		}
		if serveRPCURL != "" {
			cfg.RPCURL = serveRPCURL
		}
		if serveMnemonic != "" {
			cfg.Mnemonic = serveMnemonic
		}

		durable, err := storage.NewFileKV(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open data dir: %w", err)
		}

		var resolver ens.Resolver = ens.Nop{}
		if cfg.RPCURL != "" {
			client, err := ens.Dial(cfg.RPCURL, cfg.ContextTimeout)
			if err != nil {
				return fmt.Errorf("connect rpc: %w", err)
			}
			defer client.Close()
			resolver = client
		}

		var provider wallet.Provider
		if cfg.Mnemonic != "" {
			provider, err = wallet.NewHDProvider(cfg.Mnemonic, cfg.AccountCount)
			if err != nil {
				return fmt.Errorf("wallet provider: %w", err)
			}
		}

		srv := api.NewServer(cfg, api.Deps{
			Provider:  provider,
			Resolver:  resolver,
			SessionKV: storage.NewMemoryKV(),
			DurableKV: durable,
			Prompter:  ui.NewConsolePrompter(os.Stdin, os.Stdout),
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "bind address (overrides MARKETWALLET_LISTEN_ADDR)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "data directory (overrides MARKETWALLET_DATA_DIR)")
	serveCmd.Flags().StringVar(&serveRPCURL, "rpc-url", "", "Ethereum JSON-RPC endpoint for ENS lookups (overrides ETH_RPC_URL)")
	serveCmd.Flags().StringVar(&serveMnemonic, "mnemonic", "", "mnemonic for the built-in HD wallet provider (overrides WALLET_MNEMONIC)")
}
