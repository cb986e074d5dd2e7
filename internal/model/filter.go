package model

import "time"

// SortField is a logical sort key accepted from clients.
type SortField string

const (
	SortByDate         SortField = "date"
	SortByQuantity     SortField = "quantity"
	SortByCustomerName SortField = "customerName"
)

// IsValid reports whether f is one of the allowed sort keys.
func (f SortField) IsValid() bool {
	switch f {
	case SortByDate, SortByQuantity, SortByCustomerName:
		return true
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultSortOrder returns the order used when a client names a sort key
// without a direction: newest and largest first, names A-Z.
func DefaultSortOrder(f SortField) SortOrder {
	if f == SortByCustomerName {
		return SortAsc
	}
	return SortDesc
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SalesFilter is the validated, canonical form of one sales listing request.
// Nil pointers and empty slices mean "not filtered".
type SalesFilter struct {
	Search        string
	Region        []string
	Gender        []string
	Category      []string
	PaymentMethod []string
	Tags          []string // substring match, OR-combined
	AgeMin        *int
	AgeMax        *int
	DateFrom      *time.Time
	DateTo        *time.Time
	SortBy        SortField
	SortOrder     SortOrder
	Page          int
	Limit         int
}

// Offset returns the number of rows skipped before the current page.
func (f *SalesFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// DefaultSalesFilter returns an unfiltered first page sorted newest first.
func DefaultSalesFilter() *SalesFilter {
	return &SalesFilter{
		SortBy:    SortByDate,
		SortOrder: DefaultSortOrder(SortByDate),
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}
