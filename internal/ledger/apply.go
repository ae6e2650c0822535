package ledger

import (
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
)

// The apply and reverse functions mutate st in memory only. Reversals skip
// products and counterparties that no longer exist.

func applySale(st *store.State, s shop.Sale) []store.Collection {
	st.Sales = append(st.Sales, s)
	if i := st.FindProduct(s.ProductID); i >= 0 {
		st.Products[i].Stock -= s.Quantity
	}
	if s.IsCredit() {
		if i := st.FindCustomer(s.CustomerID); i >= 0 {
			st.Customers[i].TotalDebt += s.TotalPrice
		}
	}
	return []store.Collection{store.Sales, store.Products, store.Customers}
}

func reverseSale(st *store.State, idx int) []store.Collection {
	s := st.Sales[idx]
	if i := st.FindProduct(s.ProductID); i >= 0 {
		st.Products[i].Stock += s.Quantity
	}
	if s.IsCredit() {
		if i := st.FindCustomer(s.CustomerID); i >= 0 {
			st.Customers[i].TotalDebt -= s.TotalPrice
		}
	}
	st.Sales = removeAt(st.Sales, idx)
	return []store.Collection{store.Sales, store.Products, store.Customers}
}

func applyPurchase(st *store.State, p shop.Purchase) []store.Collection {
	st.Purchases = append(st.Purchases, p)
	if i := st.FindProduct(p.ProductID); i >= 0 {
		st.Products[i].Stock += p.Quantity
	}
	if p.IsCredit() {
		if i := st.FindSupplier(p.SupplierID); i >= 0 {
			st.Suppliers[i].TotalDebt += p.TotalPrice
		}
	}
	return []store.Collection{store.Purchases, store.Products, store.Suppliers}
}

func reversePurchase(st *store.State, idx int) []store.Collection {
	p := st.Purchases[idx]
	if i := st.FindProduct(p.ProductID); i >= 0 {
		st.Products[i].Stock -= p.Quantity
	}
	if p.IsCredit() {
		if i := st.FindSupplier(p.SupplierID); i >= 0 {
			st.Suppliers[i].TotalDebt -= p.TotalPrice
		}
	}
	st.Purchases = removeAt(st.Purchases, idx)
	return []store.Collection{store.Purchases, store.Products, store.Suppliers}
}

func applyCustomerPayment(st *store.State, ci int, p shop.CustomerPayment) []store.Collection {
	st.CustomerPayments = append(st.CustomerPayments, p)
	st.Customers[ci].TotalDebt -= p.Amount
	return []store.Collection{store.CustomerPayments, store.Customers}
}

func applySupplierPayment(st *store.State, si int, p shop.SupplierPayment) []store.Collection {
	st.SupplierPayments = append(st.SupplierPayments, p)
	st.Suppliers[si].TotalDebt -= p.Amount
	return []store.Collection{store.SupplierPayments, store.Suppliers}
}
