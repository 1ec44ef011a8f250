package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdmedical/crm-import/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "crm-import",
	Short: "Medical product spreadsheet to CRM importer",
	Long:  "Reads the product workbook, merges sales priority annotations, and upserts products, categories, organizations, contacts, and interest links into the CRM backend.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
