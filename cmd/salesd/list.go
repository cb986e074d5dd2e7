package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/salesdash/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sales matching the given filters",
	Example: `  salesd list --region North --region East --sort-by quantity
  salesd list --search asha --date-from 2023-01-01 --date-to 2023-03-31
  salesd list --tag organic,eco --page 2 --limit 25 --json`,
	GroupID: "sales",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := listRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		page, err := salesClient.ListSales(context.Background(), req)
		if err != nil {
			return fmt.Errorf("listing sales: %w", err)
		}

		if jsonOutput {
			return printJSON(page)
		}
		printSalesTable(page)
		return nil
	},
}

func listRequestFromFlags(cmd *cobra.Command) (*client.ListSalesRequest, error) {
	f := cmd.Flags()
	req := &client.ListSalesRequest{}
	req.Search, _ = f.GetString("search")
	req.Regions, _ = f.GetStringSlice("region")
	req.Genders, _ = f.GetStringSlice("gender")
	req.Categories, _ = f.GetStringSlice("category")
	req.Tags, _ = f.GetStringSlice("tag")
	req.PaymentMethod, _ = f.GetStringSlice("payment-method")
	req.DateFrom, _ = f.GetString("date-from")
	req.DateTo, _ = f.GetString("date-to")
	req.SortBy, _ = f.GetString("sort-by")
	req.SortOrder, _ = f.GetString("sort-order")
	req.Page, _ = f.GetInt("page")
	req.Limit, _ = f.GetInt("limit")

	// Ages are only sent when given, so the server can tell 0 from unset.
	if f.Changed("age-min") {
		n, err := f.GetInt("age-min")
		if err != nil {
			return nil, err
		}
		req.AgeMin = &n
	}
	if f.Changed("age-max") {
		n, err := f.GetInt("age-max")
		if err != nil {
			return nil, err
		}
		req.AgeMax = &n
	}
	return req, nil
}

func init() {
	f := listCmd.Flags()
	f.String("search", "", "match customer name or phone number (case-insensitive)")
	f.StringSlice("region", nil, "filter by customer region (repeatable)")
	f.StringSlice("gender", nil, "filter by gender (repeatable)")
	f.StringSlice("category", nil, "filter by product category (repeatable)")
	f.StringSlice("tag", nil, "filter by tag substring (repeatable)")
	f.StringSlice("payment-method", nil, "filter by payment method (repeatable)")
	f.Int("age-min", 0, "minimum customer age")
	f.Int("age-max", 0, "maximum customer age")
	f.String("date-from", "", "earliest sale date (YYYY-MM-DD)")
	f.String("date-to", "", "latest sale date (YYYY-MM-DD)")
	f.String("sort-by", "", "sort by date, quantity or customerName")
	f.String("sort-order", "", "asc or desc (default depends on --sort-by)")
	f.Int("page", 0, "page number (default 1)")
	f.Int("limit", 0, "rows per page (default 10)")
}
