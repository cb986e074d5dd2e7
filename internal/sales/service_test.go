package sales

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/alfredjeanlab/salesdash/internal/model"
	"github.com/alfredjeanlab/salesdash/internal/store"
)

// mockStore is an in-memory store.Store for service tests.
type mockStore struct {
	mu       sync.Mutex
	rows     []*model.SaleRecord
	total    int
	distinct map[model.OptionField][]string

	listErr     error
	distinctErr map[model.OptionField]error

	listCalls   int
	lastFilter  *model.SalesFilter
	distinctHit map[model.OptionField]int
}

func newMockStore() *mockStore {
	return &mockStore{
		distinct:    make(map[model.OptionField][]string),
		distinctErr: make(map[model.OptionField]error),
		distinctHit: make(map[model.OptionField]int),
	}
}

func (m *mockStore) ListSales(_ context.Context, filter *model.SalesFilter) ([]*model.SaleRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.rows, m.total, nil
}

func (m *mockStore) DistinctValues(_ context.Context, field model.OptionField) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.distinctHit[field]++
	if err := m.distinctErr[field]; err != nil {
		return nil, err
	}
	return m.distinct[field], nil
}

func (m *mockStore) CountSales(context.Context) (int, error) { return len(m.rows), nil }
func (m *mockStore) InsertSales(context.Context, []*model.SaleRecord) error { return nil }
func (m *mockStore) TruncateSales(context.Context) error { return nil }
func (m *mockStore) Ping(context.Context) error { return nil }
func (m *mockStore) Close() error { return nil }
func (m *mockStore) RunInTransaction(ctx context.Context, fn func(store.Store) error) error {
	return fn(m)
}

func TestFetchPage(t *testing.T) {
	ms := newMockStore()
	ms.rows = []*model.SaleRecord{{CustomerID: "C-1"}, {CustomerID: "C-2"}}
	ms.total = 25
	svc := NewService(ms)

	page, err := svc.FetchPage(context.Background(), model.RawParams{
		"page":  model.Scalar("2"),
		"limit": model.Scalar("10"),
	})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if page.Total != 25 || page.Page != 2 || page.TotalPages != 3 || page.Limit != 10 || len(page.Data) != 2 {
		t.Errorf("page = %+v", page)
	}
	if ms.lastFilter.Offset() != 10 {
		t.Errorf("offset = %d, want 10", ms.lastFilter.Offset())
	}
}

func TestFetchPage_EmptyResult(t *testing.T) {
	svc := NewService(newMockStore())
	page, err := svc.FetchPage(context.Background(), model.RawParams{})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if page.TotalPages != 0 || page.Data == nil || len(page.Data) != 0 {
		t.Errorf("page = %+v", page)
	}
}

func TestFetchPage_ValidationSkipsStore(t *testing.T) {
	ms := newMockStore()
	svc := NewService(ms)

	_, err := svc.FetchPage(context.Background(), model.RawParams{
		"ageMin": model.Scalar("30"),
		"ageMax": model.Scalar("25"),
	})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ms.listCalls != 0 {
		t.Errorf("store called %d times on invalid input", ms.listCalls)
	}
}

func TestFetchPage_StoreError(t *testing.T) {
	ms := newMockStore()
	ms.listErr = errors.New("connection refused")
	svc := NewService(ms)

	_, err := svc.FetchPage(context.Background(), model.RawParams{})
	if err == nil || !errors.Is(err, ms.listErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		t.Error("store error must not look like a validation error")
	}
}

func TestFetchFilterOptions(t *testing.T) {
	ms := newMockStore()
	ms.distinct[model.OptionRegions] = []string{"East", "North"}
	ms.distinct[model.OptionGenders] = []string{"Female", "Male"}
	ms.distinct[model.OptionPaymentMethods] = []string{"UPI"}
	ms.distinct[model.OptionTags] = []string{"a, b", "b,c", ""}
	svc := NewService(ms)

	opts, err := svc.FetchFilterOptions(context.Background())
	if err != nil {
		t.Fatalf("FetchFilterOptions: %v", err)
	}
	want := &model.FilterOptions{
		Regions:        []string{"East", "North"},
		Genders:        []string{"Female", "Male"},
		Categories:     []string{},
		PaymentMethods: []string{"UPI"},
		Tags:           []string{"a", "b", "c"},
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("options = %+v, want %+v", opts, want)
	}
	for _, f := range model.OptionFields {
		if ms.distinctHit[f] != 1 {
			t.Errorf("%s queried %d times, want 1", f, ms.distinctHit[f])
		}
	}
}

func TestFetchFilterOptions_AnyFailureFailsAll(t *testing.T) {
	ms := newMockStore()
	ms.distinct[model.OptionRegions] = []string{"North"}
	ms.distinctErr[model.OptionCategories] = errors.New("timeout")
	svc := NewService(ms)

	opts, err := svc.FetchFilterOptions(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if opts != nil {
		t.Errorf("expected no partial result, got %+v", opts)
	}
}
