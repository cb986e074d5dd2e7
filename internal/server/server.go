package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/salesdash/internal/sales"
	"github.com/alfredjeanlab/salesdash/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// pingTimeout bounds each store ping made by the health endpoints.
const pingTimeout = 2 * time.Second

// Options configures a SalesServer.
type Options struct {
	Logger *slog.Logger

	// ExposeErrors adds the underlying error text to 500 responses.
	// Only set it in development.
	ExposeErrors bool

	// CORSOrigins lists the dashboard origins allowed to call the API.
	CORSOrigins []string

	// Registry receives the HTTP metrics. A fresh registry is created when nil.
	Registry *prometheus.Registry
}

// SalesServer serves the sales listing and filter-option endpoints.
type SalesServer struct {
	store        store.Store
	sales        *sales.Service
	logger       *slog.Logger
	exposeErrors bool
	corsOrigins  []string
	metrics      *metrics
}

// NewSalesServer returns a SalesServer backed by the given store.
func NewSalesServer(s store.Store, opts Options) *SalesServer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &SalesServer{
		store:        s,
		sales:        sales.NewService(s),
		logger:       logger,
		exposeErrors: opts.ExposeErrors,
		corsOrigins:  opts.CORSOrigins,
		metrics:      newMetrics(reg),
	}
}

// ping checks that the store answers within pingTimeout.
func (s *SalesServer) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.store.Ping(ctx)
}
