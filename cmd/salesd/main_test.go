package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/salesdash/internal/events"
	"github.com/alfredjeanlab/salesdash/internal/model"
	"github.com/alfredjeanlab/salesdash/internal/ui"
)

func intPtr(n int) *int { return &n }

func TestListRequestFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	cmd.Flags().String("search", "", "")
	cmd.Flags().StringSlice("region", nil, "")
	cmd.Flags().StringSlice("gender", nil, "")
	cmd.Flags().StringSlice("category", nil, "")
	cmd.Flags().StringSlice("tag", nil, "")
	cmd.Flags().StringSlice("payment-method", nil, "")
	cmd.Flags().Int("age-min", 0, "")
	cmd.Flags().Int("age-max", 0, "")
	cmd.Flags().String("date-from", "", "")
	cmd.Flags().String("date-to", "", "")
	cmd.Flags().String("sort-by", "", "")
	cmd.Flags().String("sort-order", "", "")
	cmd.Flags().Int("page", 0, "")
	cmd.Flags().Int("limit", 0, "")

	err := cmd.Flags().Parse([]string{
		"--search", "asha",
		"--region", "North", "--region", "East",
		"--tag", "organic,eco",
		"--age-min", "0",
		"--sort-by", "quantity",
		"--page", "2",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	req, err := listRequestFromFlags(cmd)
	if err != nil {
		t.Fatalf("listRequestFromFlags: %v", err)
	}
	if req.Search != "asha" {
		t.Errorf("Search = %q", req.Search)
	}
	if strings.Join(req.Regions, ",") != "North,East" {
		t.Errorf("Regions = %v", req.Regions)
	}
	if strings.Join(req.Tags, ",") != "organic,eco" {
		t.Errorf("Tags = %v", req.Tags)
	}
	if req.AgeMin == nil || *req.AgeMin != 0 {
		t.Errorf("AgeMin = %v, want explicit 0", req.AgeMin)
	}
	if req.AgeMax != nil {
		t.Errorf("AgeMax = %v, want unset", *req.AgeMax)
	}
	if req.SortBy != "quantity" || req.Page != 2 || req.Limit != 0 {
		t.Errorf("SortBy=%q Page=%d Limit=%d", req.SortBy, req.Page, req.Limit)
	}
}

func TestWriteSalesTable(t *testing.T) {
	ui.ForceNoColor()

	page := model.NewPage([]*model.SaleRecord{
		{
			CustomerName:    "Asha Verma",
			PhoneNumber:     "9876543210",
			CustomerRegion:  "North",
			ProductCategory: "Beauty",
			Quantity:        intPtr(2),
			PricePerUnit:    decimal.NewNullDecimal(decimal.NewFromInt(100)),
			FinalAmount:     decimal.NewNullDecimal(decimal.NewFromInt(180)),
			Date:            "2023-03-01",
			PaymentMethod:   "UPI",
		},
		{CustomerName: "Ravi"},
	}, 12, 1, 10)

	var buf bytes.Buffer
	writeSalesTable(&buf, page, 120)
	out := buf.String()

	for _, want := range []string{
		"DATE", "CUSTOMER", "Asha Verma", "2023-03-01", "180.00", "UPI",
		"Units sold: 2", "Amount: 180.00", "Discount: 20.00", "Records: 12",
		"Page 1 of 2 (10 per page)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Missing values render as a dash.
	if !strings.Contains(out, "Ravi") || !strings.Contains(out, "-") {
		t.Errorf("expected dashes for empty fields:\n%s", out)
	}
}

func TestWriteSalesTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	writeSalesTable(&buf, model.NewPage(nil, 0, 1, 10), 120)
	if got := strings.TrimSpace(buf.String()); got != "No sales found." {
		t.Errorf("got %q", got)
	}
}

func TestWriteOptions(t *testing.T) {
	ui.ForceNoColor()

	var buf bytes.Buffer
	writeOptions(&buf, &model.FilterOptions{
		Regions: []string{"East", "North"},
		Tags:    []string{"eco"},
	})
	out := buf.String()
	if !strings.Contains(out, "Regions: East, North") {
		t.Errorf("regions line missing:\n%s", out)
	}
	if !strings.Contains(out, "Genders: (none)") {
		t.Errorf("empty list should say (none):\n%s", out)
	}
}

func TestBuildLogger(t *testing.T) {
	tests := []struct {
		level, format string
		wantDebug     bool
		wantJSON      bool
	}{
		{"debug", "text", true, false},
		{"info", "json", false, true},
		{"bogus", "text", false, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := buildLogger(&buf, tt.level, tt.format)
		logger.Debug("dbg")
		logger.Info("hello", "k", "v")
		out := buf.String()

		if got := strings.Contains(out, "dbg"); got != tt.wantDebug {
			t.Errorf("level %q: debug logged = %v, want %v", tt.level, got, tt.wantDebug)
		}
		if got := strings.HasPrefix(out, "{") || strings.Contains(out, "\n{"); got != tt.wantJSON {
			t.Errorf("format %q: json = %v, want %v\n%s", tt.format, got, tt.wantJSON, out)
		}
	}
}

func TestColorizeHelpOutput_KeepsText(t *testing.T) {
	in := "Usage:\n  salesd <command>\n\nSales:\n  list  List sales\n\nFlags:\n      --page int   page number (default 1)\n"
	out := colorizeHelpOutput(in)
	for _, want := range []string{"Usage:", "Sales:", "list", "--page", "page number"} {
		if !strings.Contains(out, want) {
			t.Errorf("colorized help lost %q:\n%s", want, out)
		}
	}
}

type fakeSubscriber struct {
	msgs     []events.Message
	topic    string
	canceled bool
}

func (f *fakeSubscriber) Subscribe(topic string) (<-chan events.Message, func(), error) {
	f.topic = topic
	ch := make(chan events.Message, len(f.msgs))
	for _, m := range f.msgs {
		ch <- m
	}
	close(ch)
	return ch, func() { f.canceled = true }, nil
}

func (f *fakeSubscriber) Close() error { return nil }

func TestFollowEvents(t *testing.T) {
	ui.ForceNoColor()

	sub := &fakeSubscriber{msgs: []events.Message{
		{Topic: events.TopicImportStarted, Data: []byte(`{"batch_id":"imp-1"}`)},
		{Topic: events.TopicImportCompleted, Data: []byte(`{"batch_id":"imp-1","inserted":3}`)},
	}}

	var buf bytes.Buffer
	if err := followEvents(context.Background(), sub, events.TopicAll, &buf); err != nil {
		t.Fatalf("followEvents: %v", err)
	}
	if sub.topic != events.TopicAll {
		t.Errorf("subscribed to %q", sub.topic)
	}
	if !sub.canceled {
		t.Error("subscription was not canceled")
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], events.TopicImportStarted+" ") {
		t.Errorf("line 0 = %q", lines[0])
	}
}
