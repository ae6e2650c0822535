package shop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpenseCategory(t *testing.T) {
	c, err := ParseExpenseCategory("rent")
	require.NoError(t, err)
	assert.Equal(t, CategoryRent, c)

	c, err = ParseExpenseCategory("كهرباء")
	require.NoError(t, err)
	assert.Equal(t, CategoryElectricity, c)

	_, err = ParseExpenseCategory("Snacks")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParsePaymentType(t *testing.T) {
	pt, err := ParsePaymentType("")
	require.NoError(t, err)
	assert.Equal(t, PaymentCash, pt)

	_, err = ParsePaymentType("barter")
	assert.ErrorIs(t, err, ErrInvalidPaymentType)
}

func TestExpenseCategoryJSONAliases(t *testing.T) {
	var x Expense
	require.NoError(t, json.Unmarshal([]byte(`{"category":"صيانة"}`), &x))
	assert.Equal(t, CategoryMaintenance, x.Category)

	require.NoError(t, json.Unmarshal([]byte(`{"category":"Misc"}`), &x))
	assert.Equal(t, ExpenseCategory("Misc"), x.Category)
}
