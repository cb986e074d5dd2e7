package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/alfredjeanlab/salesdash/internal/model"
	"github.com/alfredjeanlab/salesdash/internal/ui"
)

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printSalesTable(page *model.Page) {
	writeSalesTable(os.Stdout, page, ui.TerminalWidth(120))
}

// writeSalesTable renders one page of rows followed by the page summary.
// Long names are cut to fit the terminal width.
func writeSalesTable(out io.Writer, page *model.Page, width int) {
	if len(page.Data) == 0 {
		fmt.Fprintln(out, "No sales found.")
		return
	}

	nameWidth := 20
	if width < 100 {
		nameWidth = 14
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, ui.RenderHeader("DATE\tCUSTOMER\tPHONE\tREGION\tCATEGORY\tQTY\tFINAL\tPAYMENT"))
	for _, r := range page.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(r.Date),
			ui.Truncate(orDash(r.CustomerName), nameWidth),
			orDash(r.PhoneNumber),
			orDash(r.CustomerRegion),
			ui.Truncate(orDash(r.ProductCategory), nameWidth),
			intOrDash(r.Quantity),
			decimalOrDash(r.FinalAmount),
			orDash(r.PaymentMethod),
		)
	}
	w.Flush()

	sum := model.Summarize(page.Data, page.Total)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Units sold: %d  Amount: %s  Discount: %s  Records: %d\n",
		sum.TotalUnits,
		ui.RenderAmount(sum.TotalAmount.StringFixed(2)),
		ui.RenderAmount(sum.TotalDiscount.StringFixed(2)),
		sum.Records,
	)
	fmt.Fprintln(out, ui.RenderMuted(fmt.Sprintf("Page %d of %d (%d per page)", page.Page, page.TotalPages, page.Limit)))
}

func writeOptions(out io.Writer, opts *model.FilterOptions) {
	for _, row := range []struct {
		label  string
		values []string
	}{
		{"Regions", opts.Regions},
		{"Genders", opts.Genders},
		{"Categories", opts.Categories},
		{"Payment methods", opts.PaymentMethods},
		{"Tags", opts.Tags},
	} {
		values := ui.RenderMuted("(none)")
		if len(row.values) > 0 {
			values = strings.Join(row.values, ", ")
		}
		fmt.Fprintf(out, "%s %s\n", ui.RenderHeader(row.label+":"), values)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

func decimalOrDash(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(2)
}
