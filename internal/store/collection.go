package store

// Collection names one persisted entity collection. The names double as the
// top-level keys of the backup document.
type Collection string

const (
	Products         Collection = "products"
	Sales            Collection = "sales"
	Purchases        Collection = "purchases"
	Expenses         Collection = "expenses"
	Customers        Collection = "customers"
	CustomerPayments Collection = "customerPayments"
	Suppliers        Collection = "suppliers"
	SupplierPayments Collection = "supplierPayments"
)

// AllCollections in backup document order.
var AllCollections = []Collection{
	Products,
	Sales,
	Purchases,
	Expenses,
	Customers,
	CustomerPayments,
	Suppliers,
	SupplierPayments,
}

func ValidCollection(c Collection) bool {
	for _, known := range AllCollections {
		if known == c {
			return true
		}
	}
	return false
}
