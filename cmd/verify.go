package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pdmedical/crm-import/internal/importer"
	"github.com/pdmedical/crm-import/internal/store"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Print post-import counts and groupings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Store.DatabaseURL == "" {
			return eris.New("store database URL is required (CRMIMPORT_STORE_DATABASE_URL)")
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "verify: open store")
		}
		defer st.Close()

		report, err := importer.Verify(ctx, st)
		if err != nil {
			return eris.Wrap(err, "verify")
		}

		printReport(os.Stdout, report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
