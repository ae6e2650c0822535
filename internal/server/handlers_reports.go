package server

import (
	"context"
	"net/http"

	"github.com/simonvc/shopledger/internal/export"
	"github.com/simonvc/shopledger/internal/report"
)

func (s *Server) dailyReport(w http.ResponseWriter, r *http.Request) {
	sum, err := s.reports.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// rangeFromQuery resolves ?preset= or ?start=&end=. Explicit dates without a
// preset are a custom range; no parameters at all mean today.
func (s *Server) rangeFromQuery(ctx context.Context, r *http.Request) (*report.RangeReport, error) {
	q := r.URL.Query()
	preset := report.Preset(q.Get("preset"))
	start, end := q.Get("start"), q.Get("end")
	if preset == "" && (start != "" || end != "") {
		preset = report.PresetCustom
	}
	return s.reports.Preset(ctx, preset, start, end)
}

func (s *Server) rangeReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.rangeFromQuery(r.Context(), r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) inventoryReport(w http.ResponseWriter, r *http.Request) {
	inv, err := s.reports.Inventory(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.reports.Dashboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rep, err := s.rangeFromQuery(r.Context(), r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	inv, err := s.reports.Inventory(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := s.renderer.Render(r.Context(), export.BuildReport(rep, *inv), format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeFile(w, format.ContentType(), export.ReportFilename(rep, string(format)), body)
}
