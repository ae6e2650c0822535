package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	*Memory
	failPut bool
	failGet bool
}

func (f *failingBackend) Get(ctx context.Context, c Collection) ([]byte, bool, error) {
	if f.failGet {
		return nil, false, errors.New("disk on fire")
	}
	return f.Memory.Get(ctx, c)
}

func (f *failingBackend) GetAll(ctx context.Context) (map[Collection][]byte, error) {
	if f.failGet {
		return nil, errors.New("disk on fire")
	}
	return f.Memory.GetAll(ctx)
}

// countingBackend records how State and ExportAll read the backend.
type countingBackend struct {
	*Memory
	gets, getAlls int
}

func (c *countingBackend) Get(ctx context.Context, col Collection) ([]byte, bool, error) {
	c.gets++
	return c.Memory.Get(ctx, col)
}

func (c *countingBackend) GetAll(ctx context.Context) (map[Collection][]byte, error) {
	c.getAlls++
	return c.Memory.GetAll(ctx)
}

func (f *failingBackend) Put(ctx context.Context, docs map[Collection][]byte) error {
	if f.failPut {
		return errors.New("disk full")
	}
	return f.Memory.Put(ctx, docs)
}

func TestLoadAbsentCollectionIsEmpty(t *testing.T) {
	s := New(NewMemory(), nil)
	products, err := Load[shop.Product](context.Background(), s, Products)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestLoadCorruptCollectionIsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Put(ctx, map[Collection][]byte{Sales: []byte(`{not json`)}))

	s := New(mem, nil)
	sales, err := Load[shop.Sale](ctx, s, Sales)
	require.NoError(t, err)
	assert.Empty(t, sales)

	st, err := s.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Sales)
}

func TestSaveLoadPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), nil)
	in := []shop.Product{
		{ID: "b", Name: "Tea", BuyPrice: shop.MustMoney("10"), Stock: 4},
		{ID: "a", Name: "Coffee", BuyPrice: shop.MustMoney("2.50"), Stock: 7},
	}
	require.NoError(t, Save(ctx, s, Products, in))

	out, err := Load[shop.Product](ctx, s, Products)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCommitWritesOnlyNamedCollections(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), nil)

	st := &State{
		Products: []shop.Product{{ID: "p1", Name: "Soap"}},
		Expenses: []shop.Expense{{ID: "e1", Description: "rent", Category: shop.CategoryRent}},
	}
	require.NoError(t, s.Commit(ctx, st, Products))

	got, err := s.State(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Products, 1)
	assert.Empty(t, got.Expenses)
}

func TestCommitFailureWrapsStorage(t *testing.T) {
	ctx := context.Background()
	fb := &failingBackend{Memory: NewMemory(), failPut: true}
	s := New(fb, nil)

	err := s.Commit(ctx, &State{}, Products, Sales)
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrStorage)

	fb.failPut = false
	fb.failGet = true
	_, err = s.State(ctx)
	assert.ErrorIs(t, err, shop.ErrStorage)
}

func TestStateReadsAllCollectionsAtOnce(t *testing.T) {
	ctx := context.Background()
	cb := &countingBackend{Memory: NewMemory()}
	s := New(cb, nil)
	require.NoError(t, s.Commit(ctx, &State{
		Products: []shop.Product{{ID: "p1", Name: "Oil", Stock: 3}},
		Sales:    []shop.Sale{{ID: "s1", ProductID: "p1", Quantity: 1}},
	}, Products, Sales))

	st, err := s.State(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Products, 1)
	assert.Len(t, st.Sales, 1)

	_, err = s.ExportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cb.getAlls)
	assert.Zero(t, cb.gets)
}

func TestUpdateSkipsWriteOnError(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), nil)
	err := s.Update(ctx, func(st *State) ([]Collection, error) {
		st.Products = append(st.Products, shop.Product{ID: "p1", Name: "Tea"})
		return nil, shop.ErrInvalidInput
	})
	require.ErrorIs(t, err, shop.ErrInvalidInput)

	st, err := s.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Products)
}

func TestExportAllHasEveryCollection(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), nil)
	require.NoError(t, Save(ctx, s, Customers, []shop.Customer{{ID: "c1", Name: "Mona"}}))

	snap, err := s.ExportAll(ctx)
	require.NoError(t, err)
	assert.Len(t, snap, len(AllCollections))
	assert.JSONEq(t, `[]`, string(snap[Sales]))

	var customers []shop.Customer
	require.NoError(t, json.Unmarshal(snap[Customers], &customers))
	assert.Equal(t, "Mona", customers[0].Name)
}

func TestImportAllLeavesAbsentCollections(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), nil)
	require.NoError(t, Save(ctx, s, Expenses, []shop.Expense{{ID: "e1", Description: "water", Category: shop.CategoryWater}}))
	require.NoError(t, Save(ctx, s, Products, []shop.Product{{ID: "old"}}))

	replaced, err := s.ImportAll(ctx, Snapshot{
		Products: json.RawMessage(`[{"id":"new","name":"Rice","buyPrice":1,"sellPrice":2,"stock":3,"unit":"kg","createdAt":"2024-01-01"}]`),
		"widgets": json.RawMessage(`[]`),
	})
	require.NoError(t, err)
	assert.Equal(t, []Collection{Products}, replaced)

	st, err := s.State(ctx)
	require.NoError(t, err)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "new", st.Products[0].ID)
	require.Len(t, st.Expenses, 1)
	assert.Equal(t, "e1", st.Expenses[0].ID)
}

func TestImportAllRejectsBadCollectionWithoutWriting(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), nil)
	require.NoError(t, Save(ctx, s, Products, []shop.Product{{ID: "keep"}}))

	_, err := s.ImportAll(ctx, Snapshot{
		Products: json.RawMessage(`[{"id":"new"}]`),
		Sales:    json.RawMessage(`{"id":"not an array"}`),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrInvalidInput)

	products, err := Load[shop.Product](ctx, s, Products)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "keep", products[0].ID)
}

func TestPurchaseLegacySupplierKey(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Put(ctx, map[Collection][]byte{
		Purchases: []byte(`[{"id":"x","productId":"p","productName":"Tea","quantity":2,"unitPrice":5,"totalPrice":10,"date":"2024-03-01","supplier":"Cairo Wholesale"}]`),
	}))
	purchases, err := Load[shop.Purchase](ctx, New(mem, nil), Purchases)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Cairo Wholesale", purchases[0].SupplierName)
	assert.Equal(t, shop.MustMoney("10"), purchases[0].TotalPrice)
}

func TestSQLiteRoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	st := &State{
		Products:  []shop.Product{{ID: "p1", Name: "Sugar", BuyPrice: shop.MustMoney("12.5"), Stock: 40, Unit: "kg"}},
		Customers: []shop.Customer{{ID: "c1", Name: "Ali", TotalDebt: shop.MustMoney("-20")}},
	}
	require.NoError(t, s.Commit(ctx, st, Products, Customers))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Products, got.Products)
	assert.Equal(t, st.Customers, got.Customers)
	assert.Empty(t, got.Sales)
}

func TestSQLiteRejectsNonArrayDocument(t *testing.T) {
	ctx := context.Background()
	backend, err := OpenSQLite(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.Put(ctx, map[Collection][]byte{
		Products: []byte(`[]`),
		Sales:    []byte(`{"oops":true}`),
	})
	require.Error(t, err)

	_, ok, err := backend.Get(ctx, Products)
	require.NoError(t, err)
	assert.False(t, ok, "failed multi-collection put must not leave a partial write")
}

func TestSQLiteGetAllReadsEveryCollection(t *testing.T) {
	ctx := context.Background()
	backend, err := OpenSQLite(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.Put(ctx, map[Collection][]byte{
		Products: []byte(`[{"id":"p1"}]`),
		Sales:    []byte(`[]`),
	}))

	docs, err := backend.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(docs[Products]))
	assert.JSONEq(t, `[]`, string(docs[Sales]))
}
