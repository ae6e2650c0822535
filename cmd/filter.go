package cmd

import (
	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/spf13/cobra"
)

// listFilter holds the flags shared by the list commands.
type listFilter struct {
	date     string
	from     string
	to       string
	search   string
	category string
	payment  string
	limit    int
}

func (f *listFilter) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Only this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.from, "from", "", "From date (inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "To date (inclusive)")
	cmd.Flags().StringVar(&f.search, "search", "", "Text search")
	cmd.Flags().StringVar(&f.payment, "payment", "", "cash or credit")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Maximum rows (0 = all)")
}

func (f *listFilter) registerCategory(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "", "Expense category")
}

func (f *listFilter) build() (ledger.Filter, error) {
	out := ledger.Filter{
		Date:   f.date,
		From:   f.from,
		To:     f.to,
		Search: f.search,
		Limit:  f.limit,
	}
	if f.category != "" {
		c, err := shop.ParseExpenseCategory(f.category)
		if err != nil {
			return out, err
		}
		out.Category = c
	}
	if f.payment != "" {
		pt, err := shop.ParsePaymentType(f.payment)
		if err != nil {
			return out, err
		}
		out.PaymentType = pt
	}
	return out, nil
}
