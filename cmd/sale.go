package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/spf13/cobra"
)

var saleCmd = &cobra.Command{
	Use:     "sale",
	Aliases: []string{"sales"},
	Short:   "Record and review sales",
}

var (
	saleProduct  string
	saleQty      int64
	salePrice    string
	saleDate     string
	saleCredit   bool
	saleCustomer string
	saleNotes    string
)

var saleRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a sale and take the units out of stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := optionalMoneyFlag("price", salePrice)
		if err != nil {
			return err
		}
		req := ledger.SaleRequest{
			ProductID:   saleProduct,
			Quantity:    saleQty,
			UnitPrice:   price,
			Date:        saleDate,
			PaymentType: shop.PaymentCash,
			CustomerID:  saleCustomer,
			Notes:       saleNotes,
		}
		if saleCredit {
			req.PaymentType = shop.PaymentCredit
		}
		s, err := newClient().RecordSale(context.Background(), req)
		if err != nil {
			return err
		}
		fmt.Printf("Sale recorded: %s %d x %s @ %s = %s (profit %s) [%s]\n",
			s.ID, s.Quantity, s.ProductName, s.UnitPrice, amount(s.TotalPrice), s.Profit, s.PaymentType)
		return nil
	},
}

var saleFilter listFilter

var saleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sales, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := saleFilter.build()
		if err != nil {
			return err
		}
		sales, err := newClient().ListSales(context.Background(), f)
		if err != nil {
			return err
		}
		if len(sales) == 0 {
			fmt.Println("No sales found.")
			return nil
		}

		fmt.Printf("%-36s %-10s %-22s %6s %10s %10s %-6s %s\n", "ID", "DATE", "PRODUCT", "QTY", "TOTAL", "PROFIT", "PAY", "CUSTOMER")
		fmt.Printf("%-36s %-10s %-22s %6s %10s %10s %-6s %s\n", "----", "----", "-------", "---", "-----", "------", "---", "--------")
		var total shop.Money
		for _, s := range sales {
			fmt.Printf("%-36s %-10s %-22s %6d %10s %10s %-6s %s\n",
				s.ID, s.Date, truncate(s.ProductName, 22), s.Quantity, s.TotalPrice, s.Profit, s.PaymentType, s.CustomerName)
			total += s.TotalPrice
		}
		fmt.Printf("\n%d sales, total %s\n", len(sales), amount(total))
		return nil
	},
}

var saleGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show sale details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().GetSale(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ID:         %s\n", s.ID)
		fmt.Printf("Date:       %s\n", s.Date)
		fmt.Printf("Product:    %s (%s)\n", s.ProductName, s.ProductID)
		fmt.Printf("Quantity:   %d\n", s.Quantity)
		fmt.Printf("Unit price: %s\n", amount(s.UnitPrice))
		fmt.Printf("Total:      %s\n", amount(s.TotalPrice))
		fmt.Printf("Profit:     %s\n", amount(s.Profit))
		fmt.Printf("Payment:    %s\n", s.PaymentType)
		if s.CustomerName != "" {
			fmt.Printf("Customer:   %s (%s)\n", s.CustomerName, s.CustomerID)
		}
		if s.Notes != "" {
			fmt.Printf("Notes:      %s\n", s.Notes)
		}
		return nil
	},
}

var saleDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a sale and return its units to stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteSale(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Sale deleted: %s\n", args[0])
		return nil
	},
}

var (
	invoiceFormat string
	invoiceOut    string
)

var saleInvoiceCmd = &cobra.Command{
	Use:   "invoice [id]",
	Short: "Export an invoice for a sale (txt, csv, xlsx, pdf)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newClient().Invoice(context.Background(), args[0], invoiceFormat)
		if err != nil {
			return err
		}
		if invoiceFormat == "txt" && invoiceOut == "" {
			invoiceOut = "-"
		}
		path, err := saveFile(f, invoiceOut)
		if err != nil {
			return err
		}
		if path != "-" {
			fmt.Printf("Invoice written to %s\n", path)
		}
		return nil
	},
}

func init() {
	saleRecordCmd.Flags().StringVar(&saleProduct, "product", "", "Product ID")
	saleRecordCmd.Flags().Int64Var(&saleQty, "qty", 1, "Quantity")
	saleRecordCmd.Flags().StringVar(&salePrice, "price", "", "Unit price (default: product sell price)")
	saleRecordCmd.Flags().StringVar(&saleDate, "date", "", "Date YYYY-MM-DD (default: today)")
	saleRecordCmd.Flags().BoolVar(&saleCredit, "credit", false, "Sell on credit (requires --customer)")
	saleRecordCmd.Flags().StringVar(&saleCustomer, "customer", "", "Customer ID")
	saleRecordCmd.Flags().StringVar(&saleNotes, "notes", "", "Notes")
	saleRecordCmd.MarkFlagRequired("product")

	saleFilter.register(saleListCmd)

	saleInvoiceCmd.Flags().StringVar(&invoiceFormat, "format", "txt", "Output format: txt, csv, xlsx or pdf")
	saleInvoiceCmd.Flags().StringVarP(&invoiceOut, "output", "o", "", "Output file, - for stdout (default: invoice-<id>.<format>)")

	saleCmd.AddCommand(saleRecordCmd)
	saleCmd.AddCommand(saleListCmd)
	saleCmd.AddCommand(saleGetCmd)
	saleCmd.AddCommand(saleDeleteCmd)
	saleCmd.AddCommand(saleInvoiceCmd)

	rootCmd.AddCommand(saleCmd)
}
