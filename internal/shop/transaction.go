package shop

import "encoding/json"

type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentCredit PaymentType = "credit"
)

// ParsePaymentType maps "" to cash.
func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case "", PaymentCash:
		return PaymentCash, nil
	case PaymentCredit:
		return PaymentCredit, nil
	default:
		return "", ErrInvalidPaymentType
	}
}

// Sale records a product sold. ProductName and CustomerName are snapshots
// taken when the sale was recorded and are never refreshed.
type Sale struct {
	ID           string      `json:"id"`
	ProductID    string      `json:"productId"`
	ProductName  string      `json:"productName"`
	Quantity     int64       `json:"quantity"`
	UnitPrice    Money       `json:"unitPrice"`
	TotalPrice   Money       `json:"totalPrice"`
	Profit       Money       `json:"profit"`
	Date         string      `json:"date"`
	PaymentType  PaymentType `json:"paymentType"`
	CustomerID   string      `json:"customerId,omitempty"`
	CustomerName string      `json:"customerName,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

func (s Sale) IsCredit() bool {
	return s.PaymentType == PaymentCredit
}

type Purchase struct {
	ID           string      `json:"id"`
	ProductID    string      `json:"productId"`
	ProductName  string      `json:"productName"`
	Quantity     int64       `json:"quantity"`
	UnitPrice    Money       `json:"unitPrice"`
	TotalPrice   Money       `json:"totalPrice"`
	Date         string      `json:"date"`
	PaymentType  PaymentType `json:"paymentType"`
	SupplierID   string      `json:"supplierId,omitempty"`
	SupplierName string      `json:"supplierName,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

func (p Purchase) IsCredit() bool {
	return p.PaymentType == PaymentCredit
}

// UnmarshalJSON also accepts the older free-text "supplier" key.
func (p *Purchase) UnmarshalJSON(data []byte) error {
	type plain Purchase
	aux := struct {
		*plain
		Supplier string `json:"supplier"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.SupplierName == "" {
		p.SupplierName = aux.Supplier
	}
	return nil
}

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      Money           `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes,omitempty"`
}
