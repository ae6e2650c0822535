package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/simonvc/shopledger/internal/shop"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return shop.ValidDate(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return shop.ValidExpenseCategory(shop.ExpenseCategory(fl.Field().String()))
	})
	return v
}

var fieldErrors = map[string]error{
	"quantity":    shop.ErrInvalidQuantity,
	"unitPrice":   shop.ErrInvalidPrice,
	"buyPrice":    shop.ErrInvalidPrice,
	"sellPrice":   shop.ErrInvalidPrice,
	"amount":      shop.ErrInvalidAmount,
	"date":        shop.ErrInvalidDate,
	"paymentType": shop.ErrInvalidPaymentType,
	"category":    shop.ErrInvalidCategory,
	"name":        shop.ErrEmptyName,
	"description": shop.ErrEmptyDescription,
}

// check validates req and translates the first failing field into one of the
// shop input errors.
func (e *Engine) check(req any) error {
	err := e.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", shop.ErrInvalidInput, err)
	}
	fe := verrs[0]
	if known, ok := fieldErrors[fe.Field()]; ok {
		if fe.Tag() == "required" {
			return known
		}
		return fmt.Errorf("%w, got %v", known, fe.Value())
	}
	return fmt.Errorf("%w: %s failed %s", shop.ErrInvalidInput, fe.Field(), fe.Tag())
}
