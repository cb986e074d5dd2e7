package store

import (
	"context"

	"github.com/alfredjeanlab/salesdash/internal/model"
)

// Store defines the persistence interface for sales rows.
type Store interface {
	// Reads
	ListSales(ctx context.Context, filter *model.SalesFilter) ([]*model.SaleRecord, int, error) // returns page rows, filtered total, error
	DistinctValues(ctx context.Context, field model.OptionField) ([]string, error)
	CountSales(ctx context.Context) (int, error)

	// Bulk load
	InsertSales(ctx context.Context, records []*model.SaleRecord) error
	TruncateSales(ctx context.Context) error

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
