package importer

import (
	"errors"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	for in, want := range map[string]string{
		"Customer Name":        "customer_name",
		"  Price   per\tUnit ":  "price_per_unit",
		"TRANSACTION ID":       "transaction_id",
		"tags":                 "tags",
		"Discount Percentage ": "discount_percentage",
	} {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapper_SkipsIgnoredAndUnknownHeaders(t *testing.T) {
	m, err := newMapper([]string{"Transaction ID", "Pri", "Mystery", "Customer Name", "Customer Name"})
	if err != nil {
		t.Fatalf("newMapper: %v", err)
	}
	if len(m.index) != 1 || m.index["customer_name"] != 3 {
		t.Errorf("index = %v, want only customer_name at 3", m.index)
	}
	if m.width != 5 {
		t.Errorf("width = %d, want 5", m.width)
	}
}

func TestMapper_Record(t *testing.T) {
	m, err := newMapper([]string{"Customer Name", "Age", "Quantity", "Price per Unit", "Date", "Tags", "Brand"})
	if err != nil {
		t.Fatalf("newMapper: %v", err)
	}

	r, err := m.record([]string{` "Asha" `, "", "3.0", "1,250.75", "15/03/2023x", "eco", ""})
	if err == nil {
		t.Fatalf("expected date error, got %+v", r)
	}

	r, err = m.record([]string{` "Asha" `, "", "3.0", "1,250.75", "03/15/2023", "eco", ""})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if r.CustomerName != "Asha" {
		t.Errorf("CustomerName = %q", r.CustomerName)
	}
	if r.Age != nil {
		t.Errorf("Age = %v, want NULL for empty cell", *r.Age)
	}
	if r.Quantity == nil || *r.Quantity != 3 {
		t.Errorf("Quantity = %v, want 3", r.Quantity)
	}
	if !r.PricePerUnit.Valid || r.PricePerUnit.Decimal.String() != "1250.75" {
		t.Errorf("PricePerUnit = %v", r.PricePerUnit)
	}
	if r.TotalAmount.Valid {
		t.Errorf("TotalAmount = %v, want NULL for absent column", r.TotalAmount)
	}
	if r.Date != "2023-03-15" || r.Brand != "" {
		t.Errorf("date/brand = %q %q", r.Date, r.Brand)
	}
}

func TestMapper_ShortRow(t *testing.T) {
	m, err := newMapper([]string{"Customer Name", "Age", "Brand"})
	if err != nil {
		t.Fatalf("newMapper: %v", err)
	}
	if _, err := m.record([]string{"Asha", "30"}); !errors.Is(err, errShortRow) {
		t.Fatalf("expected errShortRow, got %v", err)
	}
}

func TestMapper_NoKnownColumns(t *testing.T) {
	if _, err := newMapper([]string{"foo", "Transaction ID"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseDate(t *testing.T) {
	for in, want := range map[string]string{
		"":                     "",
		"2023-03-15":           "2023-03-15",
		"2023-03-15T10:00:00Z": "2023-03-15",
		"2023-03-15 08:30:00":  "2023-03-15",
		"2023/03/15":           "2023-03-15",
	} {
		got, err := parseDate(in)
		if err != nil || got != want {
			t.Errorf("parseDate(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := parseDate("yesterday"); err == nil {
		t.Error("parseDate(yesterday): expected error")
	}
}
