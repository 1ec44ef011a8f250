package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdmedical/crm-import/internal/importer"
	"github.com/pdmedical/crm-import/internal/sheet"
	"github.com/pdmedical/crm-import/internal/store"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import products, contacts, and interests from the workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Store.DatabaseURL == "" {
			return eris.New("store database URL is required (CRMIMPORT_STORE_DATABASE_URL)")
		}

		log := zap.L().With(zap.String("command", "import"))

		f, err := sheet.Open(importFile)
		if err != nil {
			return eris.Wrap(err, "import: open workbook")
		}

		products, err := sheet.ExtractProducts(f, cfg.Import.ProductsSheet, cfg.Import.DataStartRow)
		if err != nil {
			return eris.Wrap(err, "import: read products sheet")
		}
		if len(products) == 0 {
			return eris.New("import: no products found in workbook")
		}
		log.Info("extracted products", zap.Int("count", len(products)))

		sales, err := sheet.ExtractSales(f, cfg.Import.SalesSheet, cfg.Import.DataStartRow)
		if err != nil {
			// The import proceeds without sales annotations.
			if errors.Is(err, sheet.ErrSheetNotFound) {
				log.Warn("sales sheet missing, continuing without priorities",
					zap.String("sheet", cfg.Import.SalesSheet))
			} else {
				log.Warn("could not read sales sheet", zap.Error(err))
			}
			sales = nil
		} else {
			log.Info("extracted sales records", zap.Int("count", len(sales)))
		}

		merged, matched := importer.Merge(products, sales)
		log.Info("merged product and sales data",
			zap.Int("products", len(merged)),
			zap.Int("matched", matched),
		)

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "import: open store")
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "import: migrate")
		}

		im := importer.New(st, cfg.Import.FallbackDomain)
		summary := im.Run(ctx, merged)
		printSummary(os.Stdout, summary)

		report, err := importer.Verify(ctx, st)
		if err != nil {
			log.Warn("verification failed", zap.Error(err))
		} else {
			printReport(os.Stdout, report)
		}

		if summary.Failed > 0 {
			log.Warn("import completed with errors", zap.Int("failed", summary.Failed))
		} else {
			log.Info("import completed",
				zap.Int("imported", summary.Imported),
				zap.Int("skipped", summary.Skipped),
			)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to XLSX workbook (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
