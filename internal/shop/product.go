package shop

// LowStockThreshold flags products whose stock is strictly below it.
const LowStockThreshold = 10

// DefaultUnit is used when a product is created without a unit label.
const DefaultUnit = "piece"

type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BuyPrice  Money  `json:"buyPrice"`
	SellPrice Money  `json:"sellPrice"`
	Stock     int64  `json:"stock"`
	Unit      string `json:"unit"`
	CreatedAt string `json:"createdAt"`
}

// Value is the inventory valuation at buy price. Negative stock yields a
// negative value.
func (p Product) Value() Money {
	return p.BuyPrice.Times(p.Stock)
}

func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}

// MarginPercent is (sell-buy)/buy*100 rounded to one decimal; zero when the
// buy price is zero.
func (p Product) MarginPercent() float64 {
	if p.BuyPrice == 0 {
		return 0
	}
	d := (p.SellPrice - p.BuyPrice).Decimal().Div(p.BuyPrice.Decimal()).Shift(2).Round(1)
	f, _ := d.Float64()
	return f
}
