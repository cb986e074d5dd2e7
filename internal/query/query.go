// Package query composes the parameterized SQL used to browse the sales table.
//
// Every statement uses $n placeholders and a parallel argument slice. User
// input never reaches the SQL text; the only dynamic identifiers are sort and
// option columns, and both are resolved through fixed allow-lists.
package query

import (
	"fmt"
	"strings"

	"github.com/alfredjeanlab/salesdash/internal/model"
)

// SaleColumns is the select list for sales rows. The order matches the
// scan order in the store and the aliases match the JSON field names.
const SaleColumns = `customer_id AS "customerId", customer_name AS "customerName",
	phone_number AS "phoneNumber", gender, age, customer_region AS "customerRegion",
	customer_type AS "customerType", product_id AS "productId",
	product_name AS "productName", brand, product_category AS "productCategory", tags,
	quantity, price_per_unit AS "pricePerUnit", discount_percentage AS "discountPercentage",
	total_amount AS "totalAmount", final_amount AS "finalAmount",
	CAST(date AS TEXT) AS "date", payment_method AS "paymentMethod",
	order_status AS "orderStatus", delivery_type AS "deliveryType", store_id AS "storeId",
	store_location AS "storeLocation", salesperson_id AS "salespersonId",
	employee_name AS "employeeName"`

// Statement is one SQL text with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Composed holds the page query and the count query for one filter. Both
// share the same predicate.
type Composed struct {
	Rows  Statement
	Count Statement
}

// builder accumulates AND-ed predicate fragments and hands out placeholders
// in argument order.
type builder struct {
	clauses []string
	args    []any
}

func (b *builder) nextArg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *builder) where(clause string) {
	b.clauses = append(b.clauses, clause)
}

// in adds "column IN (...)" for a non-empty list.
func (b *builder) in(column string, values []string) {
	if len(values) == 0 {
		return
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.nextArg(v)
	}
	b.where(column + " IN (" + strings.Join(placeholders, ", ") + ")")
}

func (b *builder) predicate() string {
	var sb strings.Builder
	sb.WriteString("WHERE 1=1")
	for _, c := range b.clauses {
		sb.WriteString(" AND ")
		sb.WriteString(c)
	}
	return sb.String()
}

// Predicate builds the WHERE clause and its arguments for f.
func Predicate(f *model.SalesFilter) (string, []any) {
	var b builder

	if f.Search != "" {
		p := b.nextArg("%" + f.Search + "%")
		b.where(fmt.Sprintf("(LOWER(customer_name) LIKE LOWER(%s) OR LOWER(phone_number) LIKE LOWER(%s))", p, p))
	}

	b.in("customer_region", f.Region)
	b.in("gender", f.Gender)

	if f.AgeMin != nil {
		b.where("age >= " + b.nextArg(*f.AgeMin))
	}
	if f.AgeMax != nil {
		b.where("age <= " + b.nextArg(*f.AgeMax))
	}

	b.in("product_category", f.Category)

	if len(f.Tags) > 0 {
		ors := make([]string, len(f.Tags))
		for i, tag := range f.Tags {
			ors[i] = "tags LIKE " + b.nextArg("%"+tag+"%")
		}
		b.where("(" + strings.Join(ors, " OR ") + ")")
	}

	b.in("payment_method", f.PaymentMethod)

	if f.DateFrom != nil {
		b.where("date >= " + b.nextArg(f.DateFrom.Format(model.DateLayout)))
	}
	if f.DateTo != nil {
		b.where("date <= " + b.nextArg(f.DateTo.Format(model.DateLayout)))
	}

	return b.predicate(), b.args
}

// Compose builds the page and count statements for a normalized filter.
func Compose(f *model.SalesFilter) Composed {
	where, args := Predicate(f)
	filtered := "SELECT " + SaleColumns + " FROM sales " + where

	countArgs := make([]any, len(args))
	copy(countArgs, args)

	rowArgs := append(args, f.Limit, f.Offset())
	n := len(args)
	rows := fmt.Sprintf("%s ORDER BY %s LIMIT $%d OFFSET $%d",
		filtered, SortClause(f.SortBy, f.SortOrder), n+1, n+2)

	return Composed{
		Rows: Statement{SQL: rows, Args: rowArgs},
		Count: Statement{
			SQL:  "SELECT COUNT(*) AS total FROM (" + filtered + ") AS filtered_sales",
			Args: countArgs,
		},
	}
}

var sortColumns = map[model.SortField]string{
	model.SortByDate:         "date",
	model.SortByQuantity:     "quantity",
	model.SortByCustomerName: "customer_name",
}

// SortClause maps a sort key through the allow-list. Rows with equal keys
// are ordered by id so pages do not overlap.
func SortClause(by model.SortField, order model.SortOrder) string {
	col, ok := sortColumns[by]
	if !ok {
		return "date DESC, id ASC"
	}
	dir := "ASC"
	if order == model.SortDesc {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC"
}

var optionColumns = map[model.OptionField]string{
	model.OptionRegions:        "customer_region",
	model.OptionGenders:        "gender",
	model.OptionCategories:     "product_category",
	model.OptionPaymentMethods: "payment_method",
	model.OptionTags:           "tags",
}

// Distinct builds the distinct-value statement backing one filter dropdown.
func Distinct(field model.OptionField) (Statement, error) {
	col, ok := optionColumns[field]
	if !ok {
		return Statement{}, fmt.Errorf("unknown option field %q", field)
	}
	cond := col + " IS NOT NULL"
	if field == model.OptionTags {
		cond += " AND " + col + " != ''"
	}
	return Statement{
		SQL: fmt.Sprintf("SELECT DISTINCT %s AS value FROM sales WHERE %s ORDER BY %s", col, cond, col),
	}, nil
}
