package query

import "github.com/alfredjeanlab/salesdash/internal/model"

// InsertSale inserts one sales row. Argument order follows InsertArgs.
const InsertSale = `INSERT INTO sales (
	customer_id, customer_name, phone_number, gender, age,
	customer_region, customer_type, product_id, product_name, brand,
	product_category, tags, quantity, price_per_unit, discount_percentage,
	total_amount, final_amount, date, payment_method, order_status,
	delivery_type, store_id, store_location, salesperson_id, employee_name
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
	$16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`

// InsertArgs returns the arguments for InsertSale. Empty strings are stored
// as NULL.
func InsertArgs(r *model.SaleRecord) []any {
	return []any{
		nullString(r.CustomerID), nullString(r.CustomerName), nullString(r.PhoneNumber),
		nullString(r.Gender), nullInt(r.Age),
		nullString(r.CustomerRegion), nullString(r.CustomerType), nullString(r.ProductID),
		nullString(r.ProductName), nullString(r.Brand),
		nullString(r.ProductCategory), nullString(r.Tags), nullInt(r.Quantity),
		r.PricePerUnit, r.DiscountPercentage,
		r.TotalAmount, r.FinalAmount, nullString(r.Date), nullString(r.PaymentMethod),
		nullString(r.OrderStatus),
		nullString(r.DeliveryType), nullString(r.StoreID), nullString(r.StoreLocation),
		nullString(r.SalespersonID), nullString(r.EmployeeName),
	}
}

// nullString returns nil for empty strings so they are stored as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}
