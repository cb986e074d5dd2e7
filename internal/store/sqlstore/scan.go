package sqlstore

import (
	"database/sql"

	"github.com/alfredjeanlab/salesdash/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanSale scans a single row into a model.SaleRecord.
// The row must contain columns in the order defined by query.SaleColumns.
func scanSale(row scannable) (*model.SaleRecord, error) {
	var s model.SaleRecord
	var (
		customerID      sql.NullString
		customerName    sql.NullString
		phoneNumber     sql.NullString
		gender          sql.NullString
		age             sql.NullInt64
		customerRegion  sql.NullString
		customerType    sql.NullString
		productID       sql.NullString
		productName     sql.NullString
		brand           sql.NullString
		productCategory sql.NullString
		tags            sql.NullString
		quantity        sql.NullInt64
		date            sql.NullString
		paymentMethod   sql.NullString
		orderStatus     sql.NullString
		deliveryType    sql.NullString
		storeID         sql.NullString
		storeLocation   sql.NullString
		salespersonID   sql.NullString
		employeeName    sql.NullString
	)

	err := row.Scan(
		&customerID,
		&customerName,
		&phoneNumber,
		&gender,
		&age,
		&customerRegion,
		&customerType,
		&productID,
		&productName,
		&brand,
		&productCategory,
		&tags,
		&quantity,
		&s.PricePerUnit,
		&s.DiscountPercentage,
		&s.TotalAmount,
		&s.FinalAmount,
		&date,
		&paymentMethod,
		&orderStatus,
		&deliveryType,
		&storeID,
		&storeLocation,
		&salespersonID,
		&employeeName,
	)
	if err != nil {
		return nil, err
	}

	s.CustomerID = customerID.String
	s.CustomerName = customerName.String
	s.PhoneNumber = phoneNumber.String
	s.Gender = gender.String
	s.Age = nullIntPtr(age)
	s.CustomerRegion = customerRegion.String
	s.CustomerType = customerType.String
	s.ProductID = productID.String
	s.ProductName = productName.String
	s.Brand = brand.String
	s.ProductCategory = productCategory.String
	s.Tags = tags.String
	s.Quantity = nullIntPtr(quantity)
	s.Date = date.String
	s.PaymentMethod = paymentMethod.String
	s.OrderStatus = orderStatus.String
	s.DeliveryType = deliveryType.String
	s.StoreID = storeID.String
	s.StoreLocation = storeLocation.String
	s.SalespersonID = salespersonID.String
	s.EmployeeName = employeeName.String

	return &s, nil
}

func nullIntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
