package server

import (
	"fmt"
	"net/http"

	"github.com/simonvc/shopledger/internal/export"
	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/shop"
)

// parseFilter reads the common listing filters from the query string.
func parseFilter(r *http.Request) (ledger.Filter, error) {
	q := r.URL.Query()
	f := ledger.Filter{
		Date:   q.Get("date"),
		From:   q.Get("from"),
		To:     q.Get("to"),
		Search: q.Get("search"),
	}
	for _, d := range []string{f.Date, f.From, f.To} {
		if d != "" && !shop.ValidDate(d) {
			return f, fmt.Errorf("%w, got %q", shop.ErrInvalidDate, d)
		}
	}
	if raw := q.Get("category"); raw != "" {
		c, err := shop.ParseExpenseCategory(raw)
		if err != nil {
			return f, err
		}
		f.Category = c
	}
	if raw := q.Get("paymentType"); raw != "" {
		pt, err := shop.ParsePaymentType(raw)
		if err != nil {
			return f, err
		}
		f.PaymentType = pt
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return f, err
	}
	f.Limit = limit
	return f, nil
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var req ledger.SaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sale, err := s.ledger.RecordSale(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sales, err := s.ledger.ListSales(r.Context(), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (s *Server) getSale(w http.ResponseWriter, r *http.Request) {
	sale, err := s.ledger.GetSale(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (s *Server) deleteSale(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteSale(r.Context(), pathID(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saleInvoice(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sale, err := s.ledger.GetSale(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := s.renderer.Render(r.Context(), export.BuildInvoice(*sale, s.currency), format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeFile(w, format.ContentType(), export.InvoiceFilename(*sale, string(format)), body)
}

func (s *Server) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req ledger.PurchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.ledger.RecordPurchase(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listPurchases(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	purchases, err := s.ledger.ListPurchases(r.Context(), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, purchases)
}

func (s *Server) getPurchase(w http.ResponseWriter, r *http.Request) {
	p, err := s.ledger.GetPurchase(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deletePurchase(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeletePurchase(r.Context(), pathID(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req ledger.ExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	e, err := s.ledger.RecordExpense(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	expenses, err := s.ledger.ListExpenses(r.Context(), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) listExpenseCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, shop.AllExpenseCategories)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteExpense(r.Context(), pathID(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
