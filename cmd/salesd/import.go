package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/salesdash/internal/config"
	"github.com/alfredjeanlab/salesdash/internal/events"
	"github.com/alfredjeanlab/salesdash/internal/importer"
	"github.com/alfredjeanlab/salesdash/internal/store/sqlstore"
	"github.com/alfredjeanlab/salesdash/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx|s3://bucket/key>",
	Short: "Load sales rows from a CSV or XLSX file",
	Long: `Load sales rows into the database.

The table is truncated first unless --keep is given. Rows are inserted in
batches, one transaction per batch; a failing batch stops the import and
leaves earlier batches committed.`,
	GroupID:           "data",
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		keep, _ := cmd.Flags().GetBool("keep")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := sqlstore.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		var publisher events.Publisher = &events.NoopPublisher{}
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				logger.Warn("events disabled", "err", err)
			} else {
				publisher = pub
			}
		}
		defer publisher.Close()

		if limit > 0 {
			fmt.Fprintln(os.Stderr, ui.RenderWarn(fmt.Sprintf("Importing at most %d rows", limit)))
		}

		im := importer.New(store, publisher, logger)
		sum, err := im.ImportLocation(ctx, args[0], importer.S3Config{
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		}, importer.Options{
			BatchSize: batchSize,
			Limit:     limit,
			Keep:      keep,
		})
		if err != nil {
			if sum != nil && sum.Inserted > 0 {
				fmt.Fprintf(os.Stderr, "%d rows were committed before the failure\n", sum.Inserted)
			}
			return fmt.Errorf("import failed: %w", err)
		}

		if jsonOutput {
			return printJSON(sum)
		}
		fmt.Printf("Imported %s rows (%d skipped) in %s [%s]\n",
			ui.RenderAmount(fmt.Sprintf("%d", sum.Inserted)), sum.Skipped,
			sum.Duration.Round(time.Millisecond), ui.RenderMuted(sum.BatchID))
		return nil
	},
}

func init() {
	importCmd.Flags().Int("limit", 0, "maximum number of data rows to read (0 = all)")
	importCmd.Flags().Int("batch-size", importer.DefaultBatchSize, "rows per transaction")
	importCmd.Flags().Bool("keep", false, "append to existing rows instead of truncating")
}
