package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/alfredjeanlab/salesdash/internal/model"
)

// headerColumns maps a normalized header to its storage column. An empty
// column means the header is recognised and ignored.
var headerColumns = map[string]string{
	"transaction_id":      "",
	"pri":                 "",
	"date":                "date",
	"customer_id":         "customer_id",
	"customer_name":       "customer_name",
	"phone_number":        "phone_number",
	"gender":              "gender",
	"age":                 "age",
	"customer_region":     "customer_region",
	"customer_type":       "customer_type",
	"product_id":          "product_id",
	"product_name":        "product_name",
	"brand":               "brand",
	"product_category":    "product_category",
	"tags":                "tags",
	"quantity":            "quantity",
	"price_per_unit":      "price_per_unit",
	"discount_percentage": "discount_percentage",
	"total_amount":        "total_amount",
	"final_amount":        "final_amount",
	"payment_method":      "payment_method",
	"order_status":        "order_status",
	"delivery_type":       "delivery_type",
	"store_id":            "store_id",
	"store_location":      "store_location",
	"salesperson_id":      "salesperson_id",
	"employee_name":       "employee_name",
}

// dateLayouts are tried in order after model.ParseDate.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// errShortRow marks a row with fewer cells than the header.
var errShortRow = errors.New("insufficient columns")

// NormalizeHeader lower-cases h and replaces each run of whitespace with
// one underscore.
func NormalizeHeader(h string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(h)), unicode.IsSpace)
	return strings.Join(fields, "_")
}

// mapper turns data rows into sale records using the header row's layout.
type mapper struct {
	index map[string]int // storage column -> cell index
	width int
}

func newMapper(header []string) (*mapper, error) {
	m := &mapper{index: make(map[string]int), width: len(header)}
	for i, h := range header {
		col, known := headerColumns[NormalizeHeader(h)]
		if !known || col == "" {
			continue
		}
		if _, dup := m.index[col]; !dup {
			m.index[col] = i
		}
	}
	if len(m.index) == 0 {
		return nil, fmt.Errorf("header row has no recognised columns: %q", header)
	}
	return m, nil
}

// value returns the trimmed cell for col, or "" when the column is absent.
func (m *mapper) value(cells []string, col string) string {
	i, ok := m.index[col]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(cells[i]), `"`))
}

func (m *mapper) record(cells []string) (*model.SaleRecord, error) {
	if len(cells) < m.width {
		return nil, fmt.Errorf("%w (%d vs %d)", errShortRow, len(cells), m.width)
	}

	r := &model.SaleRecord{
		CustomerID:      m.value(cells, "customer_id"),
		CustomerName:    m.value(cells, "customer_name"),
		PhoneNumber:     m.value(cells, "phone_number"),
		Gender:          m.value(cells, "gender"),
		CustomerRegion:  m.value(cells, "customer_region"),
		CustomerType:    m.value(cells, "customer_type"),
		ProductID:       m.value(cells, "product_id"),
		ProductName:     m.value(cells, "product_name"),
		Brand:           m.value(cells, "brand"),
		ProductCategory: m.value(cells, "product_category"),
		Tags:            m.value(cells, "tags"),
		PaymentMethod:   m.value(cells, "payment_method"),
		OrderStatus:     m.value(cells, "order_status"),
		DeliveryType:    m.value(cells, "delivery_type"),
		StoreID:         m.value(cells, "store_id"),
		StoreLocation:   m.value(cells, "store_location"),
		SalespersonID:   m.value(cells, "salesperson_id"),
		EmployeeName:    m.value(cells, "employee_name"),
	}

	var err error
	if r.Age, err = parseInt(m.value(cells, "age")); err != nil {
		return nil, fmt.Errorf("age: %w", err)
	}
	if r.Quantity, err = parseInt(m.value(cells, "quantity")); err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}
	for _, d := range []struct {
		col string
		dst *decimal.NullDecimal
	}{
		{"price_per_unit", &r.PricePerUnit},
		{"discount_percentage", &r.DiscountPercentage},
		{"total_amount", &r.TotalAmount},
		{"final_amount", &r.FinalAmount},
	} {
		if *d.dst, err = parseDecimal(m.value(cells, d.col)); err != nil {
			return nil, fmt.Errorf("%s: %w", d.col, err)
		}
	}
	if r.Date, err = parseDate(m.value(cells, "date")); err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	return r, nil
}

// parseInt reads an integer cell. Fractional values are truncated.
func parseInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	n := int(d.IntPart())
	return &n, nil
}

func parseDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid decimal %q", s)
	}
	return decimal.NewNullDecimal(d), nil
}

// parseDate returns the cell as YYYY-MM-DD.
func parseDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if t, err := model.ParseDate(s); err == nil {
		return t.Format(model.DateLayout), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", s)
}
