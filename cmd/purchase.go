package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/spf13/cobra"
)

var purchaseCmd = &cobra.Command{
	Use:     "purchase",
	Aliases: []string{"purchases"},
	Short:   "Record and review stock purchases",
}

var (
	purProduct      string
	purQty          int64
	purPrice        string
	purDate         string
	purCredit       bool
	purSupplier     string
	purSupplierName string
	purNotes        string
)

var purchaseRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a purchase and add the units to stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := optionalMoneyFlag("price", purPrice)
		if err != nil {
			return err
		}
		req := ledger.PurchaseRequest{
			ProductID:    purProduct,
			Quantity:     purQty,
			UnitPrice:    price,
			Date:         purDate,
			PaymentType:  shop.PaymentCash,
			SupplierID:   purSupplier,
			SupplierName: purSupplierName,
			Notes:        purNotes,
		}
		if purCredit {
			req.PaymentType = shop.PaymentCredit
		}
		p, err := newClient().RecordPurchase(context.Background(), req)
		if err != nil {
			return err
		}
		fmt.Printf("Purchase recorded: %s %d x %s @ %s = %s [%s]\n",
			p.ID, p.Quantity, p.ProductName, p.UnitPrice, amount(p.TotalPrice), p.PaymentType)
		return nil
	},
}

var purFilter listFilter

var purchaseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List purchases, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := purFilter.build()
		if err != nil {
			return err
		}
		purchases, err := newClient().ListPurchases(context.Background(), f)
		if err != nil {
			return err
		}
		if len(purchases) == 0 {
			fmt.Println("No purchases found.")
			return nil
		}

		fmt.Printf("%-36s %-10s %-22s %6s %10s %-6s %s\n", "ID", "DATE", "PRODUCT", "QTY", "TOTAL", "PAY", "SUPPLIER")
		fmt.Printf("%-36s %-10s %-22s %6s %10s %-6s %s\n", "----", "----", "-------", "---", "-----", "---", "--------")
		var total shop.Money
		for _, p := range purchases {
			fmt.Printf("%-36s %-10s %-22s %6d %10s %-6s %s\n",
				p.ID, p.Date, truncate(p.ProductName, 22), p.Quantity, p.TotalPrice, p.PaymentType, p.SupplierName)
			total += p.TotalPrice
		}
		fmt.Printf("\n%d purchases, total %s\n", len(purchases), amount(total))
		return nil
	},
}

var purchaseDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a purchase and take its units back out of stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeletePurchase(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Purchase deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	purchaseRecordCmd.Flags().StringVar(&purProduct, "product", "", "Product ID")
	purchaseRecordCmd.Flags().Int64Var(&purQty, "qty", 1, "Quantity")
	purchaseRecordCmd.Flags().StringVar(&purPrice, "price", "", "Unit price (default: product buy price)")
	purchaseRecordCmd.Flags().StringVar(&purDate, "date", "", "Date YYYY-MM-DD (default: today)")
	purchaseRecordCmd.Flags().BoolVar(&purCredit, "credit", false, "Buy on credit (requires --supplier)")
	purchaseRecordCmd.Flags().StringVar(&purSupplier, "supplier", "", "Supplier ID")
	purchaseRecordCmd.Flags().StringVar(&purSupplierName, "supplier-name", "", "Free-text supplier name when no ID is given")
	purchaseRecordCmd.Flags().StringVar(&purNotes, "notes", "", "Notes")
	purchaseRecordCmd.MarkFlagRequired("product")

	purFilter.register(purchaseListCmd)

	purchaseCmd.AddCommand(purchaseRecordCmd)
	purchaseCmd.AddCommand(purchaseListCmd)
	purchaseCmd.AddCommand(purchaseDeleteCmd)

	rootCmd.AddCommand(purchaseCmd)
}
