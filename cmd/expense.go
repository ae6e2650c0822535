package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/spf13/cobra"
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Record and review operating expenses",
}

var (
	expDescription string
	expAmount      string
	expCategory    string
	expDate        string
	expNotes       string
)

var expenseRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an expense",
	RunE: func(cmd *cobra.Command, args []string) error {
		amt, err := parseMoneyFlag("amount", expAmount)
		if err != nil {
			return err
		}
		e, err := newClient().RecordExpense(context.Background(), ledger.ExpenseRequest{
			Description: expDescription,
			Amount:      amt,
			Category:    shop.ExpenseCategory(expCategory),
			Date:        expDate,
			Notes:       expNotes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Expense recorded: %s %s %s (%s) on %s\n", e.ID, e.Description, amount(e.Amount), e.Category, e.Date)
		return nil
	},
}

var expFilter listFilter

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := expFilter.build()
		if err != nil {
			return err
		}
		expenses, err := newClient().ListExpenses(context.Background(), f)
		if err != nil {
			return err
		}
		if len(expenses) == 0 {
			fmt.Println("No expenses found.")
			return nil
		}

		fmt.Printf("%-36s %-10s %-28s %-12s %10s\n", "ID", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT")
		fmt.Printf("%-36s %-10s %-28s %-12s %10s\n", "----", "----", "-----------", "--------", "------")
		var total shop.Money
		for _, e := range expenses {
			fmt.Printf("%-36s %-10s %-28s %-12s %10s\n",
				e.ID, e.Date, truncate(e.Description, 28), e.Category, e.Amount)
			total += e.Amount
		}
		fmt.Printf("\n%d expenses, total %s\n", len(expenses), amount(total))
		return nil
	},
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteExpense(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Expense deleted: %s\n", args[0])
		return nil
	},
}

var expenseCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List expense categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := newClient().ExpenseCategories(context.Background())
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	expenseRecordCmd.Flags().StringVar(&expDescription, "description", "", "What the money was spent on")
	expenseRecordCmd.Flags().StringVar(&expAmount, "amount", "", "Amount")
	expenseRecordCmd.Flags().StringVar(&expCategory, "category", string(shop.CategoryOther), "Category (see 'expense categories')")
	expenseRecordCmd.Flags().StringVar(&expDate, "date", "", "Date YYYY-MM-DD (default: today)")
	expenseRecordCmd.Flags().StringVar(&expNotes, "notes", "", "Notes")
	expenseRecordCmd.MarkFlagRequired("description")
	expenseRecordCmd.MarkFlagRequired("amount")

	expFilter.register(expenseListCmd)
	expFilter.registerCategory(expenseListCmd)

	expenseCmd.AddCommand(expenseRecordCmd)
	expenseCmd.AddCommand(expenseListCmd)
	expenseCmd.AddCommand(expenseDeleteCmd)
	expenseCmd.AddCommand(expenseCategoriesCmd)

	rootCmd.AddCommand(expenseCmd)
}
