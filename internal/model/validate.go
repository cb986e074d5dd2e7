package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of messages.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Messages returns the human-readable messages in the order they were found.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return msgs
}

func (e *ValidationError) add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date. Full RFC 3339 timestamps are accepted and
// reduced to their date part.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("invalid date " + strconv.Quote(s))
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// NormalizeFilter validates raw request parameters and converts them to a
// SalesFilter. Every rule is checked before anything is returned; on failure
// the result is a *ValidationError carrying all messages.
func NormalizeFilter(params RawParams) (*SalesFilter, error) {
	var ve ValidationError
	f := DefaultSalesFilter()

	if search, ok := params.first("search"); ok {
		f.Search = search
	}
	f.Region = params.list("region")
	f.Gender = params.list("gender")
	f.Category = params.list("category")
	f.Tags = params.list("tags")
	f.PaymentMethod = params.list("paymentMethod")

	f.AgeMin, f.AgeMax = normalizeAgeRange(params, &ve)
	f.DateFrom, f.DateTo = normalizeDateRange(params, &ve)

	sortBy, hasSortBy := params.first("sortBy")
	if hasSortBy {
		if SortField(sortBy).IsValid() {
			f.SortBy = SortField(sortBy)
		} else {
			ve.add("sortBy", "Invalid sortBy parameter. Must be: date, quantity, or customerName")
		}
	}
	f.SortOrder = DefaultSortOrder(f.SortBy)
	if order, ok := params.first("sortOrder"); ok {
		switch o := SortOrder(strings.ToLower(order)); o {
		case SortAsc, SortDesc:
			f.SortOrder = o
		default:
			ve.add("sortOrder", "Invalid sortOrder parameter. Must be: asc or desc")
		}
	}

	if v, ok := params.first("page"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			ve.add("page", "Page must be a positive integer")
		} else {
			f.Page = n
		}
	}
	if v, ok := params.first("limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			ve.add("limit", "Limit must be a positive integer")
		} else {
			f.Limit = n
		}
	}
	// The row offset (page-1)*limit must fit in an int.
	if f.Page-1 > math.MaxInt/f.Limit {
		ve.add("page", "Page must be a positive integer")
	}

	if ve.HasErrors() {
		return nil, &ve
	}
	return f, nil
}

func normalizeAgeRange(params RawParams, ve *ValidationError) (*int, *int) {
	minRaw, hasMin := params.first("ageMin")
	maxRaw, hasMax := params.first("ageMax")

	if hasMin && hasMax {
		lo, errLo := strconv.Atoi(minRaw)
		hi, errHi := strconv.Atoi(maxRaw)
		switch {
		case errLo != nil || errHi != nil:
			ve.add("ageMin", "Age range must be valid numbers")
		case lo > hi:
			ve.add("ageMin", "Minimum age cannot be greater than maximum age")
		case lo < 0 || hi < 0:
			ve.add("ageMin", "Age cannot be negative")
		default:
			return &lo, &hi
		}
		return nil, nil
	}

	single := func(field, raw string) *int {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ve.add(field, field+" must be a valid number")
			return nil
		}
		if n < 0 {
			ve.add(field, "Age cannot be negative")
			return nil
		}
		return &n
	}
	if hasMin {
		return single("ageMin", minRaw), nil
	}
	if hasMax {
		return nil, single("ageMax", maxRaw)
	}
	return nil, nil
}

func normalizeDateRange(params RawParams, ve *ValidationError) (*time.Time, *time.Time) {
	fromRaw, hasFrom := params.first("dateFrom")
	toRaw, hasTo := params.first("dateTo")

	if hasFrom && hasTo {
		from, errFrom := ParseDate(fromRaw)
		to, errTo := ParseDate(toRaw)
		switch {
		case errFrom != nil || errTo != nil:
			ve.add("dateFrom", "Date range must be valid dates")
		case from.After(to):
			ve.add("dateFrom", "Start date cannot be after end date")
		default:
			return &from, &to
		}
		return nil, nil
	}

	single := func(field, raw string) *time.Time {
		t, err := ParseDate(raw)
		if err != nil {
			ve.add(field, field+" must be a valid date")
			return nil
		}
		return &t
	}
	if hasFrom {
		return single("dateFrom", fromRaw), nil
	}
	if hasTo {
		return nil, single("dateTo", toRaw)
	}
	return nil, nil
}
