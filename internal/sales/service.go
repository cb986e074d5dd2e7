// Package sales assembles paginated sales pages and filter dropdown options
// on top of a store.Store.
package sales

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/alfredjeanlab/salesdash/internal/model"
	"github.com/alfredjeanlab/salesdash/internal/store"
)

// Service answers sales listing and filter-option requests.
type Service struct {
	store store.Store
}

// NewService returns a Service reading from s.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// FetchPage normalizes params and returns one page of matching rows. A
// *model.ValidationError is returned as is and the store is not queried.
func (s *Service) FetchPage(ctx context.Context, params model.RawParams) (*model.Page, error) {
	filter, err := model.NormalizeFilter(params)
	if err != nil {
		return nil, err
	}
	return s.FetchFiltered(ctx, filter)
}

// FetchFiltered returns one page for an already normalized filter.
func (s *Service) FetchFiltered(ctx context.Context, filter *model.SalesFilter) (*model.Page, error) {
	rows, total, err := s.store.ListSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch sales page: %w", err)
	}
	return model.NewPage(rows, total, filter.Page, filter.Limit), nil
}

// FetchFilterOptions reads the distinct values behind each dropdown. The
// five reads run concurrently; any failure fails the whole call.
func (s *Service) FetchFilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	results := make([][]string, len(model.OptionFields))

	g, gctx := errgroup.WithContext(ctx)
	for i, field := range model.OptionFields {
		g.Go(func() error {
			values, err := s.store.DistinctValues(gctx, field)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", field, err)
			}
			results[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.FilterOptions{
		Regions:        nonNil(results[0]),
		Genders:        nonNil(results[1]),
		Categories:     nonNil(results[2]),
		PaymentMethods: nonNil(results[3]),
		Tags:           model.CollectTags(results[4]),
	}, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
