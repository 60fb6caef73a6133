package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marketwallet",
	Short: "Marketwallet - wallet session, marketplace listings, and ENS tooling",
	Long: `Marketwallet hosts the client core of a marketplace dapp: wallet
connect/disconnect with ENS display names, a locally persisted listed-items
collection, and the simulated scan and buy flows, exposed over a JSON API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(itemsCmd)
}
