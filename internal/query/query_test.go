package query

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/salesdash/internal/model"
)

func intPtr(n int) *int { return &n }

func datePtr(s string) *time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestPredicate_NoFilters(t *testing.T) {
	where, args := Predicate(model.DefaultSalesFilter())
	if where != "WHERE 1=1" {
		t.Errorf("where = %q, want %q", where, "WHERE 1=1")
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestPredicate_AllFilters(t *testing.T) {
	f := model.DefaultSalesFilter()
	f.Search = "neha"
	f.Region = []string{"North", "South"}
	f.Gender = []string{"Female"}
	f.AgeMin = intPtr(20)
	f.AgeMax = intPtr(40)
	f.Category = []string{"Beauty"}
	f.Tags = []string{"organic", "gift"}
	f.PaymentMethod = []string{"UPI"}
	f.DateFrom = datePtr("2023-01-01")
	f.DateTo = datePtr("2023-12-31")

	where, args := Predicate(f)
	want := "WHERE 1=1" +
		" AND (LOWER(customer_name) LIKE LOWER($1) OR LOWER(phone_number) LIKE LOWER($1))" +
		" AND customer_region IN ($2, $3)" +
		" AND gender IN ($4)" +
		" AND age >= $5" +
		" AND age <= $6" +
		" AND product_category IN ($7)" +
		" AND (tags LIKE $8 OR tags LIKE $9)" +
		" AND payment_method IN ($10)" +
		" AND date >= $11" +
		" AND date <= $12"
	if where != want {
		t.Errorf("where =\n%s\nwant\n%s", where, want)
	}
	wantArgs := []any{
		"%neha%", "North", "South", "Female", 20, 40, "Beauty",
		"%organic%", "%gift%", "UPI", "2023-01-01", "2023-12-31",
	}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestPredicate_SearchUsesOnePlaceholder(t *testing.T) {
	f := model.DefaultSalesFilter()
	f.Search = "98"
	where, args := Predicate(f)
	if strings.Count(where, "$1") != 2 || strings.Contains(where, "$2") {
		t.Errorf("search should reuse $1 on both sides: %s", where)
	}
	if len(args) != 1 || args[0] != "%98%" {
		t.Errorf("args = %v", args)
	}
}

func TestPredicate_EmptyListsAddNothing(t *testing.T) {
	f := model.DefaultSalesFilter()
	f.Region = []string{}
	f.Tags = []string{}
	where, args := Predicate(f)
	if where != "WHERE 1=1" || len(args) != 0 {
		t.Errorf("where = %q args = %v", where, args)
	}
}

func TestPredicate_UserInputStaysOutOfSQL(t *testing.T) {
	f := model.DefaultSalesFilter()
	f.Search = "'; DROP TABLE sales; --"
	f.Region = []string{"North' OR '1'='1"}
	f.Tags = []string{"x%' OR 1=1 --"}
	where, _ := Predicate(f)
	for _, bad := range []string{"DROP", "'1'='1", "1=1 --"} {
		if strings.Contains(where, bad) {
			t.Errorf("predicate contains user input %q: %s", bad, where)
		}
	}
}

func TestCompose_Pagination(t *testing.T) {
	f := model.DefaultSalesFilter()
	f.Gender = []string{"Male"}
	f.Page = 3
	f.Limit = 25

	c := Compose(f)
	if !strings.HasSuffix(c.Rows.SQL, "ORDER BY date DESC, id ASC LIMIT $2 OFFSET $3") {
		t.Errorf("rows SQL suffix wrong: %s", c.Rows.SQL)
	}
	if !reflect.DeepEqual(c.Rows.Args, []any{"Male", 25, 50}) {
		t.Errorf("rows args = %v", c.Rows.Args)
	}
	if !reflect.DeepEqual(c.Count.Args, []any{"Male"}) {
		t.Errorf("count args = %v", c.Count.Args)
	}
}

func TestCompose_CountExcludesSortAndPaging(t *testing.T) {
	f := model.DefaultSalesFilter()
	f.SortBy = model.SortByCustomerName
	f.SortOrder = model.SortAsc
	c := Compose(f)

	want := "SELECT COUNT(*) AS total FROM (SELECT " + SaleColumns + " FROM sales WHERE 1=1) AS filtered_sales"
	if c.Count.SQL != want {
		t.Errorf("count SQL =\n%s\nwant\n%s", c.Count.SQL, want)
	}
	for _, leak := range []string{"ORDER BY", "LIMIT", "OFFSET"} {
		if strings.Contains(c.Count.SQL, leak) {
			t.Errorf("count SQL contains %s", leak)
		}
	}
	if !strings.Contains(c.Rows.SQL, "ORDER BY customer_name ASC, id ASC") {
		t.Errorf("rows SQL = %s", c.Rows.SQL)
	}
}

func TestCompose_RowsAndCountShareArgs(t *testing.T) {
	f := model.DefaultSalesFilter()
	f.Search = "a"
	f.Tags = []string{"b"}
	c := Compose(f)
	c.Rows.Args[0] = "mutated"
	if c.Count.Args[0] != "%a%" {
		t.Errorf("count args alias rows args: %v", c.Count.Args)
	}
}

func TestSortClause(t *testing.T) {
	for _, tc := range []struct {
		by    model.SortField
		order model.SortOrder
		want  string
	}{
		{model.SortByDate, model.SortDesc, "date DESC, id ASC"},
		{model.SortByDate, model.SortAsc, "date ASC, id ASC"},
		{model.SortByQuantity, model.SortDesc, "quantity DESC, id ASC"},
		{model.SortByCustomerName, model.SortAsc, "customer_name ASC, id ASC"},
		{model.SortField("price; DROP TABLE sales"), model.SortAsc, "date DESC, id ASC"},
	} {
		if got := SortClause(tc.by, tc.order); got != tc.want {
			t.Errorf("SortClause(%q, %q) = %q, want %q", tc.by, tc.order, got, tc.want)
		}
	}
}

func TestDistinct(t *testing.T) {
	st, err := Distinct(model.OptionRegions)
	if err != nil {
		t.Fatalf("Distinct: %v", err)
	}
	want := "SELECT DISTINCT customer_region AS value FROM sales WHERE customer_region IS NOT NULL ORDER BY customer_region"
	if st.SQL != want {
		t.Errorf("SQL = %q, want %q", st.SQL, want)
	}

	st, err = Distinct(model.OptionTags)
	if err != nil {
		t.Fatalf("Distinct: %v", err)
	}
	if !strings.Contains(st.SQL, "tags IS NOT NULL AND tags != ''") {
		t.Errorf("tags SQL = %q", st.SQL)
	}

	if _, err := Distinct(model.OptionField("brand")); err == nil {
		t.Error("expected error for unknown option field")
	}
}

func TestInsertArgs(t *testing.T) {
	rec := &model.SaleRecord{CustomerID: "C1", Age: intPtr(31), Date: "2023-02-01"}
	args := InsertArgs(rec)
	if len(args) != 25 {
		t.Fatalf("len(args) = %d, want 25", len(args))
	}
	if args[0] != "C1" || args[1] != nil || args[4] != int64(31) || args[12] != nil || args[17] != "2023-02-01" {
		t.Errorf("args = %v", args)
	}
	if strings.Count(InsertSale, "$") != 25 {
		t.Errorf("InsertSale placeholder count = %d", strings.Count(InsertSale, "$"))
	}
}
