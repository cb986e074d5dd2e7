package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alfredjeanlab/salesdash/internal/model"
	"github.com/alfredjeanlab/salesdash/internal/query"
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queryListSales runs the page query and then the count query built from the
// same predicate. Either both succeed or the call fails.
func queryListSales(ctx context.Context, db executor, filter *model.SalesFilter) ([]*model.SaleRecord, int, error) {
	c := query.Compose(filter)

	rows, err := db.QueryContext(ctx, c.Rows.SQL, c.Rows.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := []*model.SaleRecord{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sales: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan sales: %w", err)
	}
	rows.Close()

	var total int
	if err := db.QueryRowContext(ctx, c.Count.SQL, c.Count.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	return sales, total, nil
}

func queryDistinctValues(ctx context.Context, db executor, field model.OptionField) ([]string, error) {
	st, err := query.Distinct(field)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", field, err)
		}
		if v.Valid {
			values = append(values, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", field, err)
	}
	return values, nil
}

func queryCountSales(ctx context.Context, db executor) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sales").Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

func queryInsertSales(ctx context.Context, db executor, records []*model.SaleRecord) error {
	for i, r := range records {
		if _, err := db.ExecContext(ctx, query.InsertSale, query.InsertArgs(r)...); err != nil {
			return fmt.Errorf("insert sale %d: %w", i, err)
		}
	}
	return nil
}

func queryTruncateSales(ctx context.Context, db executor, d dialect) error {
	stmt := "TRUNCATE TABLE sales CASCADE"
	if d == dialectSQLite {
		stmt = "DELETE FROM sales"
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("truncate sales: %w", err)
	}
	return nil
}
