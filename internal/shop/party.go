package shop

// Customer owes the shop TotalDebt. A negative balance means the shop owes
// the customer after an overpayment.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	TotalDebt Money  `json:"totalDebt"`
	CreatedAt string `json:"createdAt"`
}

type CustomerPayment struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	Amount       Money  `json:"amount"`
	Date         string `json:"date"`
	Notes        string `json:"notes,omitempty"`
}

// Supplier is owed TotalDebt by the shop for credit purchases.
type Supplier struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	TotalDebt Money  `json:"totalDebt"`
	CreatedAt string `json:"createdAt"`
}

type SupplierPayment struct {
	ID           string `json:"id"`
	SupplierID   string `json:"supplierId"`
	SupplierName string `json:"supplierName"`
	Amount       Money  `json:"amount"`
	Date         string `json:"date"`
	Notes        string `json:"notes,omitempty"`
}
