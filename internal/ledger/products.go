package ledger

import (
	"context"
	"fmt"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
	"go.uber.org/zap"
)

func (e *Engine) CreateProduct(ctx context.Context, req ProductRequest) (*shop.Product, error) {
	req.normalize()
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("create_product", err)
		return nil, err
	}

	var p shop.Product
	err := e.mutate(ctx, "create_product", func(st *store.State) ([]store.Collection, error) {
		p = e.newProduct(req)
		st.Products = append(st.Products, p)
		return []store.Collection{store.Products}, nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("product created", zap.String("id", p.ID), zap.String("name", p.Name))
	return &p, nil
}

// UpdateProduct replaces the editable fields of a product, stock included.
// Snapshots on existing sales and purchases are left as they were.
func (e *Engine) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*shop.Product, error) {
	req.normalize()
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("update_product", err)
		return nil, err
	}

	var p shop.Product
	err := e.mutate(ctx, "update_product", func(st *store.State) ([]store.Collection, error) {
		i := st.FindProduct(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrProductNotFound, id)
		}
		st.Products[i].Name = req.Name
		st.Products[i].BuyPrice = req.BuyPrice
		st.Products[i].SellPrice = req.SellPrice
		st.Products[i].Stock = req.Stock
		st.Products[i].Unit = req.Unit
		p = st.Products[i]
		return []store.Collection{store.Products}, nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("product updated", zap.String("id", p.ID), zap.Int64("stock", p.Stock))
	return &p, nil
}

// DeleteProduct removes the product only. Its sales and purchases stay in the
// log with their name snapshots.
func (e *Engine) DeleteProduct(ctx context.Context, id string) error {
	err := e.mutate(ctx, "delete_product", func(st *store.State) ([]store.Collection, error) {
		i := st.FindProduct(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrProductNotFound, id)
		}
		st.Products = removeAt(st.Products, i)
		return []store.Collection{store.Products}, nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("product deleted", zap.String("id", id))
	return nil
}

// ImportProducts creates all products in one commit. The first invalid row
// rejects the whole batch; the error names its 1-based position.
func (e *Engine) ImportProducts(ctx context.Context, reqs []ProductRequest) ([]shop.Product, error) {
	for i := range reqs {
		reqs[i].normalize()
		if err := e.check(reqs[i]); err != nil {
			e.recorder.ObserveOperation("import_products", err)
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	var created []shop.Product
	err := e.mutate(ctx, "import_products", func(st *store.State) ([]store.Collection, error) {
		created = make([]shop.Product, 0, len(reqs))
		for _, req := range reqs {
			p := e.newProduct(req)
			st.Products = append(st.Products, p)
			created = append(created, p)
		}
		return []store.Collection{store.Products}, nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("products imported", zap.Int("count", len(created)))
	return created, nil
}

func (e *Engine) newProduct(req ProductRequest) shop.Product {
	return shop.Product{
		ID:        e.ids(),
		Name:      req.Name,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		Unit:      req.Unit,
		CreatedAt: e.Today(),
	}
}
