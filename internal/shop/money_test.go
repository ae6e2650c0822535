package shop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"0", 0},
		{"15", 1500},
		{"10.5", 1050},
		{"0.005", 1},
		{"-20", -2000},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMoney("ten")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "75.00", Money(7500).String())
	assert.Equal(t, "-0.50", Money(-50).String())
	assert.Equal(t, "0.00", Money(0).String())
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{MustMoney("30")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":30.00}`, string(b))

	var v struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":30.000000000000004,"b":"12.25","c":null}`), &v))
	assert.Equal(t, Money(3000), v.A)
	assert.Equal(t, Money(1225), v.B)
	assert.Equal(t, Money(0), v.C)
}

func TestProductMargin(t *testing.T) {
	p := Product{BuyPrice: MustMoney("10"), SellPrice: MustMoney("15"), Stock: 3}
	assert.InDelta(t, 50.0, p.MarginPercent(), 0.001)
	assert.Equal(t, MustMoney("30"), p.Value())
	assert.True(t, p.LowStock())

	assert.Zero(t, Product{SellPrice: MustMoney("5")}.MarginPercent())
}
