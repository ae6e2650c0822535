package server

import (
	"net/http"

	"github.com/simonvc/shopledger/internal/importer"
	"github.com/simonvc/shopledger/internal/ledger"
)

// maxImportBytes bounds uploaded product spreadsheets.
const maxImportBytes = 16 << 20

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ledger.ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.ledger.CreateProduct(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.ledger.ListProducts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.ledger.GetProduct(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req ledger.ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.ledger.UpdateProduct(r.Context(), pathID(r), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteProduct(r.Context(), pathID(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// importProducts takes a raw xlsx workbook as the request body.
func (s *Server) importProducts(w http.ResponseWriter, r *http.Request) {
	reqs, err := importer.ParseProducts(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	products, err := s.ledger.ImportProducts(r.Context(), reqs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, products)
}
