package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/spf13/cobra"
)

var customerCmd = &cobra.Command{
	Use:     "customer",
	Aliases: []string{"customers"},
	Short:   "Manage customers and their credit",
}

// shared by customer and supplier create
var (
	partyName    string
	partyPhone   string
	partyAddress string
	partyNotes   string
	partySearch  string
)

// shared by customer and supplier pay
var (
	payAmount string
	payDate   string
	payNotes  string
)

func partyRequest() ledger.PartyRequest {
	return ledger.PartyRequest{Name: partyName, Phone: partyPhone, Address: partyAddress, Notes: partyNotes}
}

func paymentRequest() (ledger.PaymentRequest, error) {
	amt, err := parseMoneyFlag("amount", payAmount)
	if err != nil {
		return ledger.PaymentRequest{}, err
	}
	return ledger.PaymentRequest{Amount: amt, Date: payDate, Notes: payNotes}, nil
}

var customerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient().CreateCustomer(context.Background(), partyRequest())
		if err != nil {
			return err
		}
		fmt.Printf("Customer created: %s (%s)\n", c.ID, c.Name)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers, largest debt first",
	RunE: func(cmd *cobra.Command, args []string) error {
		customers, err := newClient().ListCustomers(context.Background(), partySearch)
		if err != nil {
			return err
		}
		if len(customers) == 0 {
			fmt.Println("No customers found.")
			return nil
		}

		fmt.Printf("%-36s %-26s %-14s %12s\n", "ID", "NAME", "PHONE", "DEBT")
		fmt.Printf("%-36s %-26s %-14s %12s\n", "----", "----", "-----", "----")
		for _, c := range customers {
			fmt.Printf("%-36s %-26s %-14s %12s\n", c.ID, truncate(c.Name, 26), c.Phone, c.TotalDebt)
		}
		return nil
	},
}

var customerGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a customer statement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stmt, err := newClient().CustomerStatement(context.Background(), args[0])
		if err != nil {
			return err
		}
		c := stmt.Customer
		fmt.Printf("ID:      %s\n", c.ID)
		fmt.Printf("Name:    %s\n", c.Name)
		if c.Phone != "" {
			fmt.Printf("Phone:   %s\n", c.Phone)
		}
		if c.Address != "" {
			fmt.Printf("Address: %s\n", c.Address)
		}
		fmt.Printf("Debt:    %s\n", amount(c.TotalDebt))
		fmt.Printf("Since:   %s\n", c.CreatedAt)

		fmt.Printf("\nCredit sales (%s):\n", amount(stmt.TotalCredit))
		for _, s := range stmt.CreditSales {
			fmt.Printf("  %s  %-22s %6d %10s\n", s.Date, truncate(s.ProductName, 22), s.Quantity, s.TotalPrice)
		}
		fmt.Printf("\nPayments (%s):\n", amount(stmt.TotalPaid))
		for _, p := range stmt.Payments {
			fmt.Printf("  %s  %10s  %s\n", p.Date, p.Amount, p.Notes)
		}
		return nil
	},
}

var customerPayCmd = &cobra.Command{
	Use:   "pay [id]",
	Short: "Record a payment received from a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := paymentRequest()
		if err != nil {
			return err
		}
		p, err := newClient().RecordCustomerPayment(context.Background(), args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("Payment recorded: %s %s from %s on %s\n", p.ID, amount(p.Amount), p.CustomerName, p.Date)
		return nil
	},
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a customer and their payments (sales are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteCustomer(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Customer deleted: %s\n", args[0])
		return nil
	},
}

func partyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&partyName, "name", "", "Name")
	cmd.Flags().StringVar(&partyPhone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&partyAddress, "address", "", "Address")
	cmd.Flags().StringVar(&partyNotes, "notes", "", "Notes")
	cmd.MarkFlagRequired("name")
}

func paymentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&payAmount, "amount", "", "Amount paid")
	cmd.Flags().StringVar(&payDate, "date", "", "Date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&payNotes, "notes", "", "Notes")
	cmd.MarkFlagRequired("amount")
}

func init() {
	partyFlags(customerCreateCmd)
	paymentFlags(customerPayCmd)
	customerListCmd.Flags().StringVar(&partySearch, "search", "", "Filter by name or phone")

	customerCmd.AddCommand(customerCreateCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerGetCmd)
	customerCmd.AddCommand(customerPayCmd)
	customerCmd.AddCommand(customerDeleteCmd)

	rootCmd.AddCommand(customerCmd)
}
