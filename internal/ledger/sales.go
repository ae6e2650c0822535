package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
	"go.uber.org/zap"
)

// RecordSale appends a sale, takes the quantity out of stock (stock may go
// negative) and, for credit sales, adds the total to the customer's debt.
func (e *Engine) RecordSale(ctx context.Context, req SaleRequest) (*shop.Sale, error) {
	req.Notes = strings.TrimSpace(req.Notes)
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("record_sale", err)
		return nil, err
	}
	paymentType, _ := shop.ParsePaymentType(string(req.PaymentType))

	var sale shop.Sale
	err := e.mutate(ctx, "record_sale", func(st *store.State) ([]store.Collection, error) {
		pi := st.FindProduct(req.ProductID)
		if pi < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrProductNotFound, req.ProductID)
		}
		product := st.Products[pi]

		var customer *shop.Customer
		if req.CustomerID != "" {
			if ci := st.FindCustomer(req.CustomerID); ci >= 0 {
				customer = &st.Customers[ci]
			} else if paymentType != shop.PaymentCredit {
				return nil, fmt.Errorf("%w: %s", shop.ErrUnknownCustomer, req.CustomerID)
			}
		}
		if paymentType == shop.PaymentCredit && customer == nil {
			return nil, shop.ErrCreditWithoutCustomer
		}

		unitPrice := product.SellPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		date := req.Date
		if date == "" {
			date = e.Today()
		}

		sale = shop.Sale{
			ID:          e.ids(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  unitPrice.Times(req.Quantity),
			Profit:      (unitPrice - product.BuyPrice).Times(req.Quantity),
			Date:        date,
			PaymentType: paymentType,
			Notes:       req.Notes,
		}
		if customer != nil {
			sale.CustomerID = customer.ID
			sale.CustomerName = customer.Name
		}
		return applySale(st, sale), nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("sale recorded",
		zap.String("id", sale.ID),
		zap.String("product", sale.ProductID),
		zap.Int64("quantity", sale.Quantity),
		zap.Stringer("total", sale.TotalPrice),
		zap.String("payment", string(sale.PaymentType)),
	)
	return &sale, nil
}

// DeleteSale removes a sale and reverses its stock and debt effects.
func (e *Engine) DeleteSale(ctx context.Context, id string) error {
	err := e.mutate(ctx, "delete_sale", func(st *store.State) ([]store.Collection, error) {
		idx := st.FindSale(id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrSaleNotFound, id)
		}
		return reverseSale(st, idx), nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("sale deleted", zap.String("id", id))
	return nil
}

// RecordPurchase appends a purchase, adds the quantity to stock and, for
// credit purchases, adds the total to what the shop owes the supplier.
func (e *Engine) RecordPurchase(ctx context.Context, req PurchaseRequest) (*shop.Purchase, error) {
	req.Notes = strings.TrimSpace(req.Notes)
	req.SupplierName = strings.TrimSpace(req.SupplierName)
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("record_purchase", err)
		return nil, err
	}
	paymentType, _ := shop.ParsePaymentType(string(req.PaymentType))

	var purchase shop.Purchase
	err := e.mutate(ctx, "record_purchase", func(st *store.State) ([]store.Collection, error) {
		pi := st.FindProduct(req.ProductID)
		if pi < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrProductNotFound, req.ProductID)
		}
		product := st.Products[pi]

		var supplier *shop.Supplier
		if req.SupplierID != "" {
			if si := st.FindSupplier(req.SupplierID); si >= 0 {
				supplier = &st.Suppliers[si]
			} else if paymentType != shop.PaymentCredit {
				return nil, fmt.Errorf("%w: %s", shop.ErrUnknownSupplier, req.SupplierID)
			}
		}
		if paymentType == shop.PaymentCredit && supplier == nil {
			return nil, shop.ErrCreditWithoutSupplier
		}

		unitPrice := product.BuyPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		date := req.Date
		if date == "" {
			date = e.Today()
		}

		purchase = shop.Purchase{
			ID:           e.ids(),
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     req.Quantity,
			UnitPrice:    unitPrice,
			TotalPrice:   unitPrice.Times(req.Quantity),
			Date:         date,
			PaymentType:  paymentType,
			SupplierName: req.SupplierName,
			Notes:        req.Notes,
		}
		if supplier != nil {
			purchase.SupplierID = supplier.ID
			purchase.SupplierName = supplier.Name
		}
		return applyPurchase(st, purchase), nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("purchase recorded",
		zap.String("id", purchase.ID),
		zap.String("product", purchase.ProductID),
		zap.Int64("quantity", purchase.Quantity),
		zap.Stringer("total", purchase.TotalPrice),
		zap.String("payment", string(purchase.PaymentType)),
	)
	return &purchase, nil
}

// DeletePurchase removes a purchase and reverses its stock and debt effects.
func (e *Engine) DeletePurchase(ctx context.Context, id string) error {
	err := e.mutate(ctx, "delete_purchase", func(st *store.State) ([]store.Collection, error) {
		idx := st.FindPurchase(id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrPurchaseNotFound, id)
		}
		return reversePurchase(st, idx), nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("purchase deleted", zap.String("id", id))
	return nil
}

func (e *Engine) RecordExpense(ctx context.Context, req ExpenseRequest) (*shop.Expense, error) {
	req.normalize()
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("record_expense", err)
		return nil, err
	}

	var expense shop.Expense
	err := e.mutate(ctx, "record_expense", func(st *store.State) ([]store.Collection, error) {
		date := req.Date
		if date == "" {
			date = e.Today()
		}
		expense = shop.Expense{
			ID:          e.ids(),
			Description: req.Description,
			Amount:      req.Amount,
			Category:    req.Category,
			Date:        date,
			Notes:       req.Notes,
		}
		st.Expenses = append(st.Expenses, expense)
		return []store.Collection{store.Expenses}, nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("expense recorded",
		zap.String("id", expense.ID),
		zap.String("category", string(expense.Category)),
		zap.Stringer("amount", expense.Amount),
	)
	return &expense, nil
}

func (e *Engine) DeleteExpense(ctx context.Context, id string) error {
	err := e.mutate(ctx, "delete_expense", func(st *store.State) ([]store.Collection, error) {
		idx := st.FindExpense(id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrExpenseNotFound, id)
		}
		st.Expenses = removeAt(st.Expenses, idx)
		return []store.Collection{store.Expenses}, nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("expense deleted", zap.String("id", id))
	return nil
}
