package model

import "github.com/shopspring/decimal"

// SaleRecord is one transactional row of the sales table. JSON names are the
// camelCase aliases of the storage columns and must stay stable for clients.
type SaleRecord struct {
	CustomerID         string              `json:"customerId"`
	CustomerName       string              `json:"customerName"`
	PhoneNumber        string              `json:"phoneNumber"`
	Gender             string              `json:"gender"`
	Age                *int                `json:"age"`
	CustomerRegion     string              `json:"customerRegion"`
	CustomerType       string              `json:"customerType"`
	ProductID          string              `json:"productId"`
	ProductName        string              `json:"productName"`
	Brand              string              `json:"brand"`
	ProductCategory    string              `json:"productCategory"`
	Tags               string              `json:"tags"` // comma-joined
	Quantity           *int                `json:"quantity"`
	PricePerUnit       decimal.NullDecimal `json:"pricePerUnit"`
	DiscountPercentage decimal.NullDecimal `json:"discountPercentage"`
	TotalAmount        decimal.NullDecimal `json:"totalAmount"`
	FinalAmount        decimal.NullDecimal `json:"finalAmount"`
	Date               string              `json:"date"` // YYYY-MM-DD, empty when unknown
	PaymentMethod      string              `json:"paymentMethod"`
	OrderStatus        string              `json:"orderStatus"`
	DeliveryType       string              `json:"deliveryType"`
	StoreID            string              `json:"storeId"`
	StoreLocation      string              `json:"storeLocation"`
	SalespersonID      string              `json:"salespersonId"`
	EmployeeName       string              `json:"employeeName"`
}

// PageSummary mirrors the dashboard summary cards for one page of rows.
type PageSummary struct {
	TotalUnits    int             `json:"totalUnits"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	Records       int             `json:"records"`
}

// Summarize totals the rows of a page. total is the envelope's total count
// and is reported as the record count when positive.
func Summarize(rows []*SaleRecord, total int) PageSummary {
	s := PageSummary{
		TotalAmount:   decimal.Zero,
		TotalDiscount: decimal.Zero,
		Records:       total,
	}
	if total <= 0 {
		s.Records = len(rows)
	}
	for _, r := range rows {
		qty := 0
		if r.Quantity != nil {
			qty = *r.Quantity
		}
		s.TotalUnits += qty

		final := decimal.Zero
		if r.FinalAmount.Valid {
			final = r.FinalAmount.Decimal
		}
		s.TotalAmount = s.TotalAmount.Add(final)

		gross := decimal.Zero
		if r.PricePerUnit.Valid {
			gross = r.PricePerUnit.Decimal.Mul(decimal.NewFromInt(int64(qty)))
		}
		if d := gross.Sub(final); d.IsPositive() {
			s.TotalDiscount = s.TotalDiscount.Add(d)
		}
	}
	return s
}
