package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/simonvc/shopledger/internal/backup"
	"github.com/simonvc/shopledger/internal/store"
)

func (s *Server) exportBackup(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.backup.Export(r.Context(), &buf); err != nil {
		s.fail(w, r, err)
		return
	}
	writeFile(w, "application/json", backup.Filename(time.Now()), buf.Bytes())
}

type restoreResponse struct {
	Restored []store.Collection `json:"restored"`
}

func (s *Server) restoreBackup(w http.ResponseWriter, r *http.Request) {
	replaced, err := s.backup.Import(r.Context(), r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if replaced == nil {
		replaced = []store.Collection{}
	}
	writeJSON(w, http.StatusOK, restoreResponse{Restored: replaced})
}
