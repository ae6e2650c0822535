package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/simonvc/shopledger/internal/shop"
	"go.uber.org/zap"
)

// Store loads and commits whole collections on top of a Backend. All writes
// go through one lock, so read-modify-write cycles and snapshot imports never
// interleave.
type Store struct {
	backend Backend
	logger  *zap.Logger
	mu      sync.Mutex
}

func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Open returns a Store backed by the sqlite file at dbPath, or by memory when
// dbPath is ":memory:".
func Open(dbPath string, logger *zap.Logger) (*Store, error) {
	if dbPath == ":memory:" {
		return New(NewMemory(), logger), nil
	}
	backend, err := OpenSQLite(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return New(backend, logger), nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// State reads every collection from one consistent backend read. Absent or
// undecodable collections come back empty; only backend read failures are
// returned.
func (s *Store) State(ctx context.Context) (*State, error) {
	docs, err := s.backend.GetAll(ctx)
	if err != nil {
		s.logger.Error("load failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", shop.ErrStorage, err)
	}
	return &State{
		Products:         decode[shop.Product](s, Products, docs[Products]),
		Sales:            decode[shop.Sale](s, Sales, docs[Sales]),
		Purchases:        decode[shop.Purchase](s, Purchases, docs[Purchases]),
		Expenses:         decode[shop.Expense](s, Expenses, docs[Expenses]),
		Customers:        decode[shop.Customer](s, Customers, docs[Customers]),
		CustomerPayments: decode[shop.CustomerPayment](s, CustomerPayments, docs[CustomerPayments]),
		Suppliers:        decode[shop.Supplier](s, Suppliers, docs[Suppliers]),
		SupplierPayments: decode[shop.SupplierPayment](s, SupplierPayments, docs[SupplierPayments]),
	}, nil
}

// Update loads the state, applies fn and commits the collections fn reports
// as changed, all under the store's write lock. Nothing is written when fn
// fails.
func (s *Store) Update(ctx context.Context, fn func(st *State) ([]Collection, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.State(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(st)
	if err != nil {
		return err
	}
	return s.commit(ctx, st, changed)
}

// Commit writes the named collections of st in one atomic backend write.
func (s *Store) Commit(ctx context.Context, st *State, changed ...Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, st, changed)
}

func (s *Store) commit(ctx context.Context, st *State, changed []Collection) error {
	if len(changed) == 0 {
		return nil
	}
	docs := make(map[Collection][]byte, len(changed))
	for _, c := range changed {
		doc, err := encode(st.target(c))
		if err != nil {
			return fmt.Errorf("%w: encode %s: %w", shop.ErrStorage, c, err)
		}
		docs[c] = doc
	}
	if err := s.backend.Put(ctx, docs); err != nil {
		s.logger.Error("commit failed", zap.Error(err), zap.Int("collections", len(docs)))
		return fmt.Errorf("%w: %w", shop.ErrStorage, err)
	}
	return nil
}

// Load returns the records of one collection in insertion order. A missing
// or undecodable collection is empty, not an error.
func Load[T any](ctx context.Context, s *Store, c Collection) ([]T, error) {
	doc, err := s.read(ctx, c)
	if err != nil {
		return nil, err
	}
	return decode[T](s, c, doc), nil
}

func decode[T any](s *Store, c Collection, doc []byte) []T {
	records := []T{}
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return records
	}
	var decoded []T
	if err := json.Unmarshal(doc, &decoded); err != nil {
		s.logger.Warn("corrupt collection treated as empty",
			zap.String("collection", string(c)), zap.Error(err))
		return records
	}
	if decoded != nil {
		records = decoded
	}
	return records
}

// Save replaces one collection.
func Save[T any](ctx context.Context, s *Store, c Collection, records []T) error {
	doc, err := encode(&records)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", shop.ErrStorage, c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Put(ctx, map[Collection][]byte{c: doc}); err != nil {
		return fmt.Errorf("%w: %w", shop.ErrStorage, err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, c Collection) ([]byte, error) {
	doc, ok, err := s.backend.Get(ctx, c)
	if err != nil {
		s.logger.Error("load failed", zap.String("collection", string(c)), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", shop.ErrStorage, err)
	}
	if !ok {
		return nil, nil
	}
	return doc, nil
}

// encode never produces null; collections are always arrays.
func encode(v any) ([]byte, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(doc, []byte("null")) {
		return []byte("[]"), nil
	}
	return doc, nil
}
