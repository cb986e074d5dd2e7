// Package importer bulk loads sales rows from CSV or XLSX files into the
// store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/salesdash/internal/events"
	"github.com/alfredjeanlab/salesdash/internal/idgen"
	"github.com/alfredjeanlab/salesdash/internal/model"
	"github.com/alfredjeanlab/salesdash/internal/store"
)

// DefaultBatchSize is the number of rows inserted per transaction.
const DefaultBatchSize = 50

// Options controls one import run.
type Options struct {
	BatchSize int  // rows per transaction; DefaultBatchSize when <= 0
	Limit     int  // maximum data rows to read; 0 means all
	Keep      bool // append instead of truncating the table first
}

// Summary reports the outcome of an import.
type Summary struct {
	BatchID  string        `json:"batch_id"`
	Source   string        `json:"source"`
	Inserted int           `json:"inserted"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration_ns"`
}

// Importer loads rows into a store and announces progress on a publisher.
type Importer struct {
	store     store.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// New returns an Importer. A nil publisher disables events.
func New(s store.Store, p events.Publisher, logger *slog.Logger) *Importer {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{store: s, publisher: p, logger: logger}
}

// ImportLocation opens location (a path or s3://bucket/key), picks the
// format from its extension and imports it.
func (im *Importer) ImportLocation(ctx context.Context, location string, s3cfg S3Config, opts Options) (*Summary, error) {
	format, err := FormatFor(location)
	if err != nil {
		return nil, err
	}
	rc, err := OpenSource(ctx, location, s3cfg)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return im.Import(ctx, location, rc, format, opts)
}

// Import reads every row from r and inserts them in batches. Each batch is
// committed in its own transaction; a failing batch is rolled back and stops
// the import, leaving earlier batches in place.
func (im *Importer) Import(ctx context.Context, source string, r io.Reader, format Format, opts Options) (*Summary, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	batchID, err := idgen.ImportBatchID()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	sum := &Summary{BatchID: batchID, Source: source}
	log := im.logger.With("batch_id", sum.BatchID, "source", source)

	im.publish(ctx, log, events.TopicImportStarted, events.ImportStarted{
		BatchID:   sum.BatchID,
		Source:    source,
		Truncate:  !opts.Keep,
		StartedAt: start.UTC(),
	})

	if err := im.run(ctx, log, r, format, opts, batchSize, sum); err != nil {
		im.publish(ctx, log, events.TopicImportFailed, events.ImportFailed{
			BatchID:  sum.BatchID,
			Source:   source,
			Inserted: sum.Inserted,
			Error:    err.Error(),
		})
		log.Error("import failed", "inserted", sum.Inserted, "error", err)
		return sum, err
	}

	sum.Duration = time.Since(start)
	im.publish(ctx, log, events.TopicImportCompleted, events.ImportCompleted{
		BatchID:    sum.BatchID,
		Source:     source,
		Inserted:   sum.Inserted,
		Skipped:    sum.Skipped,
		Duration:   sum.Duration,
		FinishedAt: time.Now().UTC(),
	})
	log.Info("import completed", "inserted", sum.Inserted, "skipped", sum.Skipped, "duration", sum.Duration)
	return sum, nil
}

func (im *Importer) run(ctx context.Context, log *slog.Logger, r io.Reader, format Format, opts Options, batchSize int, sum *Summary) error {
	rows, err := newRowReader(r, format)
	if err != nil {
		return err
	}
	defer rows.Close()

	header, err := rows.Next()
	if errors.Is(err, io.EOF) {
		log.Warn("no data to import")
		return nil
	}
	if err != nil {
		return err
	}
	m, err := newMapper(header)
	if err != nil {
		return err
	}

	if !opts.Keep {
		if err := im.store.TruncateSales(ctx); err != nil {
			return fmt.Errorf("truncate sales: %w", err)
		}
	}

	batch := make([]*model.SaleRecord, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := im.store.RunInTransaction(ctx, func(tx store.Store) error {
			return tx.InsertSales(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert batch after %d rows: %w", sum.Inserted, err)
		}
		sum.Inserted += len(batch)
		log.Debug("batch committed", "inserted", sum.Inserted)
		batch = batch[:0]
		return nil
	}

	// Row numbers are 1-based and count the header.
	for row, read := 2, 0; opts.Limit <= 0 || read < opts.Limit; row++ {
		cells, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		read++

		if isBlank(cells) {
			sum.Skipped++
			continue
		}
		rec, err := m.record(cells)
		if err != nil {
			sum.Skipped++
			log.Warn("skipping row", "row", row, "reason", err)
			continue
		}

		batch = append(batch, rec)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// publish emits an event. Failures are logged and never fail the import.
func (im *Importer) publish(ctx context.Context, log *slog.Logger, topic string, event any) {
	if err := im.publisher.Publish(ctx, topic, event); err != nil {
		log.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
