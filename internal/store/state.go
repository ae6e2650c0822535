package store

import "github.com/simonvc/shopledger/internal/shop"

// State is an in-memory copy of every collection. Mutations are local until
// passed to Store.Commit.
type State struct {
	Products         []shop.Product         `json:"products"`
	Sales            []shop.Sale            `json:"sales"`
	Purchases        []shop.Purchase        `json:"purchases"`
	Expenses         []shop.Expense         `json:"expenses"`
	Customers        []shop.Customer        `json:"customers"`
	CustomerPayments []shop.CustomerPayment `json:"customerPayments"`
	Suppliers        []shop.Supplier        `json:"suppliers"`
	SupplierPayments []shop.SupplierPayment `json:"supplierPayments"`
}

func (st *State) target(c Collection) any {
	switch c {
	case Products:
		return &st.Products
	case Sales:
		return &st.Sales
	case Purchases:
		return &st.Purchases
	case Expenses:
		return &st.Expenses
	case Customers:
		return &st.Customers
	case CustomerPayments:
		return &st.CustomerPayments
	case Suppliers:
		return &st.Suppliers
	case SupplierPayments:
		return &st.SupplierPayments
	}
	panic("store: unknown collection " + string(c))
}

// The Find helpers return -1 when the id is absent.

func (st *State) FindProduct(id string) int {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *State) FindSale(id string) int {
	for i := range st.Sales {
		if st.Sales[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *State) FindPurchase(id string) int {
	for i := range st.Purchases {
		if st.Purchases[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *State) FindExpense(id string) int {
	for i := range st.Expenses {
		if st.Expenses[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *State) FindCustomer(id string) int {
	for i := range st.Customers {
		if st.Customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *State) FindSupplier(id string) int {
	for i := range st.Suppliers {
		if st.Suppliers[i].ID == id {
			return i
		}
	}
	return -1
}
