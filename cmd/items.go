package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khushi-labs/marketwallet/internal/config"
	"github.com/khushi-labs/marketwallet/internal/market"
	"github.com/khushi-labs/marketwallet/internal/storage"
	"github.com/khushi-labs/marketwallet/pkg/models"
)

var itemsDataDir string

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage the local listed-items collection",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all listed items",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openItemStore()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(store.List())
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <item-json>",
	Short: "Append an item (a JSON object; an id is generated when absent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var item models.Item
		if err := json.Unmarshal([]byte(args[0]), &item); err != nil {
			return fmt.Errorf("invalid item: %w", err)
		}
		store, err := openItemStore()
		if err != nil {
			return err
		}
		stored, err := store.Add(item)
		if err != nil {
			return err
		}
		fmt.Println(stored.ID())
		return nil
	},
}

var itemsUpdateCmd = &cobra.Command{
	Use:   "update <id> <fields-json>",
	Short: "Merge fields over the item with the given id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var fields map[string]any
		if err := json.Unmarshal([]byte(args[1]), &fields); err != nil {
			return fmt.Errorf("invalid fields: %w", err)
		}
		store, err := openItemStore()
		if err != nil {
			return err
		}
		return store.UpdateByID(args[0], fields)
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove the item with the given id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openItemStore()
		if err != nil {
			return err
		}
		return store.DeleteByID(args[0])
	},
}

func openItemStore() (*market.Store, error) {
	cfg := config.FromEnv()
	if itemsDataDir != "" {
		cfg.DataDir = itemsDataDir
	}
	kv, err := storage.NewFileKV(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}
	return market.NewStore(kv), nil
}

func init() {
	itemsCmd.PersistentFlags().StringVar(&itemsDataDir, "data-dir", "", "data directory (overrides MARKETWALLET_DATA_DIR)")
	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsAddCmd)
	itemsCmd.AddCommand(itemsUpdateCmd)
	itemsCmd.AddCommand(itemsDeleteCmd)
}
