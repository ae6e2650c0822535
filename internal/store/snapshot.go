package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/simonvc/shopledger/internal/shop"
	"go.uber.org/zap"
)

// Snapshot holds collections keyed by name as raw JSON arrays.
type Snapshot map[Collection]json.RawMessage

// ExportAll returns every collection, absent ones as empty arrays.
func (s *Store) ExportAll(ctx context.Context) (Snapshot, error) {
	st, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	snap := make(Snapshot, len(AllCollections))
	for _, c := range AllCollections {
		doc, err := encode(st.target(c))
		if err != nil {
			return nil, fmt.Errorf("%w: encode %s: %w", shop.ErrStorage, c, err)
		}
		snap[c] = doc
	}
	return snap, nil
}

// ImportAll replaces each collection present in snap and leaves the others
// untouched. The write waits for any in-flight Update to commit. Every present collection is decoded first; if any fails nothing
// is written. Unknown keys are ignored.
func (s *Store) ImportAll(ctx context.Context, snap Snapshot) ([]Collection, error) {
	decoded := &State{}
	docs := make(map[Collection][]byte)
	var replaced []Collection
	for _, c := range AllCollections {
		raw, ok := snap[c]
		if !ok {
			continue
		}
		if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return nil, fmt.Errorf("%w: collection %s is empty", shop.ErrInvalidInput, c)
		}
		if err := json.Unmarshal(raw, decoded.target(c)); err != nil {
			return nil, fmt.Errorf("%w: collection %s: %v", shop.ErrInvalidInput, c, err)
		}
		doc, err := encode(decoded.target(c))
		if err != nil {
			return nil, fmt.Errorf("%w: encode %s: %w", shop.ErrStorage, c, err)
		}
		docs[c] = doc
		replaced = append(replaced, c)
	}
	for c := range snap {
		if !ValidCollection(c) {
			s.logger.Warn("ignoring unknown collection in snapshot", zap.String("collection", string(c)))
		}
	}
	if len(docs) == 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Put(ctx, docs); err != nil {
		s.logger.Error("import failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", shop.ErrStorage, err)
	}
	s.logger.Info("snapshot imported", zap.Int("collections", len(replaced)))
	return replaced, nil
}
