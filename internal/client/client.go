// Package client provides a transport-agnostic interface for the sales API
// and an HTTP/JSON implementation of it.
package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/alfredjeanlab/salesdash/internal/model"
)

// SalesClient is the interface the salesd CLI commands use to talk to a
// running server.
type SalesClient interface {
	ListSales(ctx context.Context, req *ListSalesRequest) (*model.Page, error)
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)
	Health(ctx context.Context) (string, error)
	Close() error
}

// ListSalesRequest holds the query parameters for listing sales. Zero values
// are omitted so the server applies its defaults.
type ListSalesRequest struct {
	Search        string
	Regions       []string
	Genders       []string
	Categories    []string
	Tags          []string
	PaymentMethod []string
	AgeMin        *int
	AgeMax        *int
	DateFrom      string
	DateTo        string
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

// Values encodes the request as query parameters. Multi-select filters repeat
// their key once per value.
func (r *ListSalesRequest) Values() url.Values {
	q := url.Values{}
	set := func(key, v string) {
		if v != "" {
			q.Set(key, v)
		}
	}
	add := func(key string, vs []string) {
		for _, v := range vs {
			if v != "" {
				q.Add(key, v)
			}
		}
	}

	set("search", r.Search)
	add("region", r.Regions)
	add("gender", r.Genders)
	add("category", r.Categories)
	add("tags", r.Tags)
	add("paymentMethod", r.PaymentMethod)
	if r.AgeMin != nil {
		q.Set("ageMin", strconv.Itoa(*r.AgeMin))
	}
	if r.AgeMax != nil {
		q.Set("ageMax", strconv.Itoa(*r.AgeMax))
	}
	set("dateFrom", r.DateFrom)
	set("dateTo", r.DateTo)
	set("sortBy", r.SortBy)
	set("sortOrder", r.SortOrder)
	if r.Page > 0 {
		q.Set("page", strconv.Itoa(r.Page))
	}
	if r.Limit > 0 {
		q.Set("limit", strconv.Itoa(r.Limit))
	}
	return q
}
