// Package server exposes the shop ledger over a JSON HTTP API.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/simonvc/shopledger/internal/backup"
	"github.com/simonvc/shopledger/internal/export"
	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/observability"
	"github.com/simonvc/shopledger/internal/report"
	"go.uber.org/zap"
)

// Options wires the server to the application services.
type Options struct {
	Ledger   *ledger.Engine
	Reports  *report.Service
	Backup   *backup.Gateway
	Renderer export.Renderer
	Metrics  *observability.Metrics
	Logger   *zap.Logger

	// Currency is printed on invoices.
	Currency string

	// RateLimitPerMinute caps requests per client IP. Zero disables it.
	RateLimitPerMinute int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	ledger   *ledger.Engine
	reports  *report.Service
	backup   *backup.Gateway
	renderer export.Renderer
	currency string
	logger   *zap.Logger
	router   chi.Router
	http     *http.Server
}

func New(opts Options, addr string) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(opts.Metrics.Middleware)
	if opts.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute))
	}

	s := &Server{
		ledger:   opts.Ledger,
		reports:  opts.Reports,
		backup:   opts.Backup,
		renderer: opts.Renderer,
		currency: opts.Currency,
		logger:   logger,
		router:   r,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}

	r.Get("/health", s.health)
	r.Handle("/metrics", opts.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Products
		r.Post("/products", s.createProduct)
		r.Get("/products", s.listProducts)
		r.Post("/products/import", s.importProducts)
		r.Get("/products/{id}", s.getProduct)
		r.Put("/products/{id}", s.updateProduct)
		r.Delete("/products/{id}", s.deleteProduct)

		// Sales and purchases
		r.Post("/sales", s.createSale)
		r.Get("/sales", s.listSales)
		r.Get("/sales/{id}", s.getSale)
		r.Delete("/sales/{id}", s.deleteSale)
		r.Get("/sales/{id}/invoice", s.saleInvoice)

		r.Post("/purchases", s.createPurchase)
		r.Get("/purchases", s.listPurchases)
		r.Get("/purchases/{id}", s.getPurchase)
		r.Delete("/purchases/{id}", s.deletePurchase)

		// Expenses
		r.Post("/expenses", s.createExpense)
		r.Get("/expenses", s.listExpenses)
		r.Get("/expenses/categories", s.listExpenseCategories)
		r.Delete("/expenses/{id}", s.deleteExpense)

		// Customers and suppliers
		r.Post("/customers", s.createCustomer)
		r.Get("/customers", s.listCustomers)
		r.Get("/customers/{id}", s.getCustomer)
		r.Delete("/customers/{id}", s.deleteCustomer)
		r.Post("/customers/{id}/payments", s.createCustomerPayment)

		r.Post("/suppliers", s.createSupplier)
		r.Get("/suppliers", s.listSuppliers)
		r.Get("/suppliers/{id}", s.getSupplier)
		r.Delete("/suppliers/{id}", s.deleteSupplier)
		r.Post("/suppliers/{id}/payments", s.createSupplierPayment)

		// Reports
		r.Get("/reports/daily", s.dailyReport)
		r.Get("/reports/range", s.rangeReport)
		r.Get("/reports/inventory", s.inventoryReport)
		r.Get("/reports/dashboard", s.dashboard)
		r.Get("/reports/export", s.exportReport)

		// Backup
		r.Get("/backup", s.exportBackup)
		r.Post("/backup/restore", s.restoreBackup)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("shopledger server listening", zap.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("shopledger server listening", zap.String("addr", ln.Addr().String()))
	return s.http.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
