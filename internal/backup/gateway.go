// Package backup exports and restores the whole store as one JSON document.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
	"go.uber.org/zap"
)

// FilePrefix starts the name of every backup file written to a directory.
const FilePrefix = "shopledger-backup-"

// maxDocumentSize caps what Import will read.
const maxDocumentSize = 64 << 20

// document fixes the key order of a backup file.
type document struct {
	Products         json.RawMessage `json:"products"`
	Sales            json.RawMessage `json:"sales"`
	Purchases        json.RawMessage `json:"purchases"`
	Expenses         json.RawMessage `json:"expenses"`
	Customers        json.RawMessage `json:"customers"`
	CustomerPayments json.RawMessage `json:"customerPayments"`
	Suppliers        json.RawMessage `json:"suppliers"`
	SupplierPayments json.RawMessage `json:"supplierPayments"`
}

type Gateway struct {
	store  *store.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewGateway(s *store.Store, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{store: s, now: time.Now, logger: logger}
}

// Export writes every collection as an indented JSON object.
func (g *Gateway) Export(ctx context.Context, w io.Writer) error {
	snap, err := g.store.ExportAll(ctx)
	if err != nil {
		return err
	}
	doc := document{
		Products:         snap[store.Products],
		Sales:            snap[store.Sales],
		Purchases:        snap[store.Purchases],
		Expenses:         snap[store.Expenses],
		Customers:        snap[store.Customers],
		CustomerPayments: snap[store.CustomerPayments],
		Suppliers:        snap[store.Suppliers],
		SupplierPayments: snap[store.SupplierPayments],
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Import restores the collections named in the document. Collections the
// document does not mention keep their current contents.
func (g *Gateway) Import(ctx context.Context, r io.Reader) ([]store.Collection, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("%w: backup larger than %d bytes", shop.ErrInvalidInput, maxDocumentSize)
	}

	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, fmt.Errorf("%w: backup must be a JSON object", shop.ErrInvalidInput)
	}

	snap := make(store.Snapshot, len(raw))
	for k, v := range raw {
		snap[store.Collection(k)] = v
	}
	replaced, err := g.store.ImportAll(ctx, snap)
	if err != nil {
		return nil, err
	}
	g.logger.Info("backup restored", zap.Int("collections", len(replaced)))
	return replaced, nil
}

// WriteFile saves a backup named after today's date into dir, replacing an
// earlier backup from the same day.
func (g *Gateway) WriteFile(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	var buf bytes.Buffer
	if err := g.Export(ctx, &buf); err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(g.now()))
	tmp, err := os.CreateTemp(dir, ".backup-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename backup: %w", err)
	}

	g.logger.Info("backup written", zap.String("path", path), zap.Int("bytes", buf.Len()))
	return path, nil
}

// Prune keeps the newest keep backups in dir and removes the rest. A keep of
// zero or less disables pruning.
func (g *Gateway) Prune(dir string, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), FilePrefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil, nil
	}
	sort.Strings(names)

	var removed []string
	for _, name := range names[:len(names)-keep] {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", name, err)
		}
		removed = append(removed, path)
	}
	g.logger.Info("old backups pruned", zap.Int("removed", len(removed)))
	return removed, nil
}

// Filename is the backup file name for the date of t.
func Filename(t time.Time) string {
	return FilePrefix + shop.FormatDate(t) + ".json"
}
