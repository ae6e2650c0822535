package ledger

import (
	"context"
	"fmt"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
	"go.uber.org/zap"
)

func (e *Engine) CreateCustomer(ctx context.Context, req PartyRequest) (*shop.Customer, error) {
	req.normalize()
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("create_customer", err)
		return nil, err
	}

	var c shop.Customer
	err := e.mutate(ctx, "create_customer", func(st *store.State) ([]store.Collection, error) {
		c = shop.Customer{
			ID:        e.ids(),
			Name:      req.Name,
			Phone:     req.Phone,
			Address:   req.Address,
			Notes:     req.Notes,
			CreatedAt: e.Today(),
		}
		st.Customers = append(st.Customers, c)
		return []store.Collection{store.Customers}, nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("customer created", zap.String("id", c.ID), zap.String("name", c.Name))
	return &c, nil
}

// RecordCustomerPayment lowers the customer's debt by the paid amount. Paying
// more than is owed leaves a negative balance.
func (e *Engine) RecordCustomerPayment(ctx context.Context, customerID string, req PaymentRequest) (*shop.CustomerPayment, error) {
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("customer_payment", err)
		return nil, err
	}

	var p shop.CustomerPayment
	var debt shop.Money
	err := e.mutate(ctx, "customer_payment", func(st *store.State) ([]store.Collection, error) {
		ci := st.FindCustomer(customerID)
		if ci < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrCustomerNotFound, customerID)
		}
		date := req.Date
		if date == "" {
			date = e.Today()
		}
		p = shop.CustomerPayment{
			ID:           e.ids(),
			CustomerID:   customerID,
			CustomerName: st.Customers[ci].Name,
			Amount:       req.Amount,
			Date:         date,
			Notes:        req.Notes,
		}
		changed := applyCustomerPayment(st, ci, p)
		debt = st.Customers[ci].TotalDebt
		return changed, nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("customer payment recorded",
		zap.String("customer", customerID),
		zap.Stringer("amount", p.Amount),
		zap.Stringer("debt", debt),
	)
	return &p, nil
}

// DeleteCustomer removes the customer and its payments. Sales keep their
// customer name snapshot.
func (e *Engine) DeleteCustomer(ctx context.Context, id string) error {
	removed := 0
	err := e.mutate(ctx, "delete_customer", func(st *store.State) ([]store.Collection, error) {
		ci := st.FindCustomer(id)
		if ci < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrCustomerNotFound, id)
		}
		st.Customers = removeAt(st.Customers, ci)
		kept := st.CustomerPayments[:0:0]
		for _, p := range st.CustomerPayments {
			if p.CustomerID == id {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		st.CustomerPayments = kept
		return []store.Collection{store.Customers, store.CustomerPayments}, nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("customer deleted", zap.String("id", id), zap.Int("payments_removed", removed))
	return nil
}

func (e *Engine) CreateSupplier(ctx context.Context, req PartyRequest) (*shop.Supplier, error) {
	req.normalize()
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("create_supplier", err)
		return nil, err
	}

	var s shop.Supplier
	err := e.mutate(ctx, "create_supplier", func(st *store.State) ([]store.Collection, error) {
		s = shop.Supplier{
			ID:        e.ids(),
			Name:      req.Name,
			Phone:     req.Phone,
			Address:   req.Address,
			Notes:     req.Notes,
			CreatedAt: e.Today(),
		}
		st.Suppliers = append(st.Suppliers, s)
		return []store.Collection{store.Suppliers}, nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("supplier created", zap.String("id", s.ID), zap.String("name", s.Name))
	return &s, nil
}

// RecordSupplierPayment lowers what the shop owes the supplier.
func (e *Engine) RecordSupplierPayment(ctx context.Context, supplierID string, req PaymentRequest) (*shop.SupplierPayment, error) {
	if err := e.check(req); err != nil {
		e.recorder.ObserveOperation("supplier_payment", err)
		return nil, err
	}

	var p shop.SupplierPayment
	var debt shop.Money
	err := e.mutate(ctx, "supplier_payment", func(st *store.State) ([]store.Collection, error) {
		si := st.FindSupplier(supplierID)
		if si < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrSupplierNotFound, supplierID)
		}
		date := req.Date
		if date == "" {
			date = e.Today()
		}
		p = shop.SupplierPayment{
			ID:           e.ids(),
			SupplierID:   supplierID,
			SupplierName: st.Suppliers[si].Name,
			Amount:       req.Amount,
			Date:         date,
			Notes:        req.Notes,
		}
		changed := applySupplierPayment(st, si, p)
		debt = st.Suppliers[si].TotalDebt
		return changed, nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("supplier payment recorded",
		zap.String("supplier", supplierID),
		zap.Stringer("amount", p.Amount),
		zap.Stringer("debt", debt),
	)
	return &p, nil
}

func (e *Engine) DeleteSupplier(ctx context.Context, id string) error {
	removed := 0
	err := e.mutate(ctx, "delete_supplier", func(st *store.State) ([]store.Collection, error) {
		si := st.FindSupplier(id)
		if si < 0 {
			return nil, fmt.Errorf("%w: %s", shop.ErrSupplierNotFound, id)
		}
		st.Suppliers = removeAt(st.Suppliers, si)
		kept := st.SupplierPayments[:0:0]
		for _, p := range st.SupplierPayments {
			if p.SupplierID == id {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		st.SupplierPayments = kept
		return []store.Collection{store.Suppliers, store.SupplierPayments}, nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("supplier deleted", zap.String("id", id), zap.Int("payments_removed", removed))
	return nil
}
