package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var supplierCmd = &cobra.Command{
	Use:     "supplier",
	Aliases: []string{"suppliers"},
	Short:   "Manage suppliers and what the shop owes them",
}

var supplierCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a supplier",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().CreateSupplier(context.Background(), partyRequest())
		if err != nil {
			return err
		}
		fmt.Printf("Supplier created: %s (%s)\n", s.ID, s.Name)
		return nil
	},
}

var supplierListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suppliers, largest debt first",
	RunE: func(cmd *cobra.Command, args []string) error {
		suppliers, err := newClient().ListSuppliers(context.Background(), partySearch)
		if err != nil {
			return err
		}
		if len(suppliers) == 0 {
			fmt.Println("No suppliers found.")
			return nil
		}

		fmt.Printf("%-36s %-26s %-14s %12s\n", "ID", "NAME", "PHONE", "OWED")
		fmt.Printf("%-36s %-26s %-14s %12s\n", "----", "----", "-----", "----")
		for _, s := range suppliers {
			fmt.Printf("%-36s %-26s %-14s %12s\n", s.ID, truncate(s.Name, 26), s.Phone, s.TotalDebt)
		}
		return nil
	},
}

var supplierGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a supplier statement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stmt, err := newClient().SupplierStatement(context.Background(), args[0])
		if err != nil {
			return err
		}
		s := stmt.Supplier
		fmt.Printf("ID:      %s\n", s.ID)
		fmt.Printf("Name:    %s\n", s.Name)
		if s.Phone != "" {
			fmt.Printf("Phone:   %s\n", s.Phone)
		}
		fmt.Printf("Owed:    %s\n", amount(s.TotalDebt))

		fmt.Printf("\nCredit purchases (%s):\n", amount(stmt.TotalCredit))
		for _, p := range stmt.CreditPurchases {
			fmt.Printf("  %s  %-22s %6d %10s\n", p.Date, truncate(p.ProductName, 22), p.Quantity, p.TotalPrice)
		}
		fmt.Printf("\nPayments (%s):\n", amount(stmt.TotalPaid))
		for _, p := range stmt.Payments {
			fmt.Printf("  %s  %10s  %s\n", p.Date, p.Amount, p.Notes)
		}
		return nil
	},
}

var supplierPayCmd = &cobra.Command{
	Use:   "pay [id]",
	Short: "Record a payment made to a supplier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := paymentRequest()
		if err != nil {
			return err
		}
		p, err := newClient().RecordSupplierPayment(context.Background(), args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("Payment recorded: %s %s to %s on %s\n", p.ID, amount(p.Amount), p.SupplierName, p.Date)
		return nil
	},
}

var supplierDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a supplier and its payments (purchases are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteSupplier(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Supplier deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	partyFlags(supplierCreateCmd)
	paymentFlags(supplierPayCmd)
	supplierListCmd.Flags().StringVar(&partySearch, "search", "", "Filter by name or phone")

	supplierCmd.AddCommand(supplierCreateCmd)
	supplierCmd.AddCommand(supplierListCmd)
	supplierCmd.AddCommand(supplierGetCmd)
	supplierCmd.AddCommand(supplierPayCmd)
	supplierCmd.AddCommand(supplierDeleteCmd)

	rootCmd.AddCommand(supplierCmd)
}
