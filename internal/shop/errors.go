package shop

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the ledger wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStorage      = errors.New("storage failure")
)

var (
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrSaleNotFound     = fmt.Errorf("sale %w", ErrNotFound)
	ErrPurchaseNotFound = fmt.Errorf("purchase %w", ErrNotFound)
	ErrExpenseNotFound  = fmt.Errorf("expense %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrSupplierNotFound = fmt.Errorf("supplier %w", ErrNotFound)

	ErrInvalidQuantity       = fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidInput)
	ErrInvalidPrice          = fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	ErrInvalidAmount         = fmt.Errorf("%w: amount out of range", ErrInvalidInput)
	ErrInvalidCategory       = fmt.Errorf("%w: unknown expense category", ErrInvalidInput)
	ErrInvalidDate           = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	ErrInvalidPaymentType    = fmt.Errorf("%w: payment type must be cash or credit", ErrInvalidInput)
	ErrCreditWithoutCustomer = fmt.Errorf("%w: credit sale requires an existing customer", ErrInvalidInput)
	ErrCreditWithoutSupplier = fmt.Errorf("%w: credit purchase requires an existing supplier", ErrInvalidInput)
	ErrUnknownCustomer       = fmt.Errorf("%w: customer does not exist", ErrInvalidInput)
	ErrUnknownSupplier       = fmt.Errorf("%w: supplier does not exist", ErrInvalidInput)
	ErrEmptyName             = fmt.Errorf("%w: name is required", ErrInvalidInput)
	ErrEmptyDescription      = fmt.Errorf("%w: description is required", ErrInvalidInput)
	ErrRangeTooLong          = fmt.Errorf("%w: date range too long", ErrInvalidInput)
)
