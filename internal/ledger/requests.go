package ledger

import (
	"strings"

	"github.com/simonvc/shopledger/internal/shop"
)

// Quantity and money bounds keep quantity × price inside int64 minor units.

// SaleRequest records a sale. UnitPrice defaults to the product's sell price,
// Date to today and PaymentType to cash.
type SaleRequest struct {
	ProductID   string           `json:"productId"`
	Quantity    int64            `json:"quantity" validate:"gt=0,lte=1000000"`
	UnitPrice   *shop.Money      `json:"unitPrice,omitempty" validate:"omitempty,gte=0,lte=100000000000"`
	Date        string           `json:"date,omitempty" validate:"omitempty,isodate"`
	PaymentType shop.PaymentType `json:"paymentType,omitempty" validate:"omitempty,oneof=cash credit"`
	CustomerID  string           `json:"customerId,omitempty"`
	Notes       string           `json:"notes,omitempty" validate:"max=1000"`
}

// PurchaseRequest records a purchase. UnitPrice defaults to the product's buy
// price. SupplierName is free text used when no SupplierID is given.
type PurchaseRequest struct {
	ProductID    string           `json:"productId"`
	Quantity     int64            `json:"quantity" validate:"gt=0,lte=1000000"`
	UnitPrice    *shop.Money      `json:"unitPrice,omitempty" validate:"omitempty,gte=0,lte=100000000000"`
	Date         string           `json:"date,omitempty" validate:"omitempty,isodate"`
	PaymentType  shop.PaymentType `json:"paymentType,omitempty" validate:"omitempty,oneof=cash credit"`
	SupplierID   string           `json:"supplierId,omitempty"`
	SupplierName string           `json:"supplierName,omitempty" validate:"max=200"`
	Notes        string           `json:"notes,omitempty" validate:"max=1000"`
}

type ExpenseRequest struct {
	Description string               `json:"description" validate:"required,max=500"`
	Amount      shop.Money           `json:"amount" validate:"gte=0,lte=100000000000"`
	Category    shop.ExpenseCategory `json:"category" validate:"required,category"`
	Date        string               `json:"date,omitempty" validate:"omitempty,isodate"`
	Notes       string               `json:"notes,omitempty" validate:"max=1000"`
}

// PaymentRequest settles part of a customer's or supplier's debt.
type PaymentRequest struct {
	Amount shop.Money `json:"amount" validate:"gt=0,lte=100000000000"`
	Date   string     `json:"date,omitempty" validate:"omitempty,isodate"`
	Notes  string     `json:"notes,omitempty" validate:"max=1000"`
}

type ProductRequest struct {
	Name      string     `json:"name" validate:"required,max=200"`
	BuyPrice  shop.Money `json:"buyPrice" validate:"gte=0,lte=100000000000"`
	SellPrice shop.Money `json:"sellPrice" validate:"gte=0,lte=100000000000"`
	Stock     int64      `json:"stock" validate:"gte=-1000000000,lte=1000000000"`
	Unit      string     `json:"unit,omitempty" validate:"max=50"`
}

// PartyRequest creates a customer or a supplier.
type PartyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Address string `json:"address,omitempty" validate:"max=300"`
	Notes   string `json:"notes,omitempty" validate:"max=1000"`
}

func (r *ProductRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Unit = strings.TrimSpace(r.Unit)
	if r.Unit == "" {
		r.Unit = shop.DefaultUnit
	}
}

func (r *PartyRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r *ExpenseRequest) normalize() {
	r.Description = strings.TrimSpace(r.Description)
	r.Notes = strings.TrimSpace(r.Notes)
	if c, err := shop.ParseExpenseCategory(string(r.Category)); err == nil {
		r.Category = c
	}
}
