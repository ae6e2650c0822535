package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/simonvc/shopledger/internal/export"
	"github.com/simonvc/shopledger/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"reports"},
	Short:   "Profit, inventory and dashboard reports",
}

var reportDate string

var reportDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Totals for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := newClient().DailyReport(context.Background(), reportDate)
		if err != nil {
			return err
		}
		fmt.Printf("Daily report %s\n\n", sum.Date)
		printSummary(*sum)
		return nil
	},
}

var (
	reportPreset string
	reportStart  string
	reportEnd    string
)

func reportRangeArgs() (report.Preset, string, string) {
	preset := report.Preset(reportPreset)
	if preset == "" && (reportStart != "" || reportEnd != "") {
		preset = report.PresetCustom
	}
	return preset, reportStart, reportEnd
}

var reportRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Full report for a period: totals, daily breakdown, top products",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		ctx := context.Background()
		preset, start, end := reportRangeArgs()
		r, err := c.RangeReport(ctx, preset, start, end)
		if err != nil {
			return err
		}
		inv, err := c.Inventory(ctx)
		if err != nil {
			return err
		}

		if err := export.WriteText(os.Stdout, export.BuildReport(r, *inv)); err != nil {
			return err
		}

		if len(r.TopProducts) > 0 {
			fmt.Printf("\nTop products\n")
			fmt.Printf("  %-26s %8s %12s %12s\n", "PRODUCT", "QTY", "REVENUE", "PROFIT")
			for _, p := range r.TopProducts {
				fmt.Printf("  %-26s %8d %12s %12s\n", truncate(p.ProductName, 26), p.Quantity, p.Total, p.Profit)
			}
		}
		fmt.Printf("\nDaily breakdown\n")
		for _, d := range r.Daily {
			fmt.Printf("  %s  sales %10s  purchases %10s  expenses %10s  profit %10s\n",
				d.Date, d.TotalSales, d.TotalPurchases, d.TotalExpenses, d.TotalProfit)
		}
		return nil
	},
}

var reportInventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Stock on hand and its value at buy price",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := newClient().Inventory(context.Background())
		if err != nil {
			return err
		}
		if len(inv.Items) == 0 {
			fmt.Println("No products.")
			return nil
		}

		fmt.Printf("%-26s %8s %-8s %10s %12s %s\n", "PRODUCT", "STOCK", "UNIT", "BUY", "VALUE", "")
		fmt.Printf("%-26s %8s %-8s %10s %12s %s\n", "-------", "-----", "----", "---", "-----", "")
		for _, it := range inv.Items {
			flag := ""
			if it.LowStock {
				flag = "LOW"
			}
			fmt.Printf("%-26s %8d %-8s %10s %12s %s\n",
				truncate(it.Name, 26), it.Stock, it.Unit, it.BuyPrice, it.Value, flag)
		}
		fmt.Printf("\nTotal value: %s   Low stock: %d\n", amount(inv.TotalValue), inv.LowStockCount)
		return nil
	},
}

var reportDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Today at a glance",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newClient().Dashboard(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Today (%s)\n", d.Today.Date)
		printSummary(d.Today)
		fmt.Printf("\nProducts:        %d (%d low on stock)\n", d.ProductsCount, d.LowStockCount)
		fmt.Printf("Inventory value: %s\n", amount(d.InventoryValue))
		fmt.Printf("Customers owe:   %s\n", amount(d.CustomerDebt))
		fmt.Printf("Owed suppliers:  %s\n", amount(d.SupplierDebt))
		if len(d.RecentSales) > 0 {
			fmt.Printf("\nRecent sales\n")
			for _, s := range d.RecentSales {
				fmt.Printf("  %s  %-22s %6d %10s\n", s.Date, truncate(s.ProductName, 22), s.Quantity, s.TotalPrice)
			}
		}
		return nil
	},
}

var (
	reportFormat string
	reportOut    string
)

var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a period report as txt, csv, xlsx or pdf",
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, start, end := reportRangeArgs()
		f, err := newClient().ExportReport(context.Background(), reportFormat, preset, start, end)
		if err != nil {
			return err
		}
		path, err := saveFile(f, reportOut)
		if err != nil {
			return err
		}
		if path != "-" {
			fmt.Printf("Report written to %s\n", path)
		}
		return nil
	},
}

func printSummary(s report.Summary) {
	fmt.Printf("Sales:     %-18s (%d)\n", amount(s.TotalSales), s.SalesCount)
	fmt.Printf("Purchases: %-18s (%d)\n", amount(s.TotalPurchases), s.PurchasesCount)
	fmt.Printf("Expenses:  %-18s (%d)\n", amount(s.TotalExpenses), s.ExpensesCount)
	fmt.Printf("Profit:    %s\n", amount(s.TotalProfit))
}

func rangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportPreset, "preset", "", "daily, weekly, monthly or custom")
	cmd.Flags().StringVar(&reportStart, "start", "", "Start date for a custom range")
	cmd.Flags().StringVar(&reportEnd, "end", "", "End date for a custom range")
}

func init() {
	reportDailyCmd.Flags().StringVar(&reportDate, "date", "", "Date YYYY-MM-DD (default: today)")
	rangeFlags(reportRangeCmd)
	rangeFlags(reportExportCmd)
	reportExportCmd.Flags().StringVar(&reportFormat, "format", "xlsx", "Output format: txt, csv, xlsx or pdf")
	reportExportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "Output file, - for stdout")

	reportCmd.AddCommand(reportDailyCmd)
	reportCmd.AddCommand(reportRangeCmd)
	reportCmd.AddCommand(reportInventoryCmd)
	reportCmd.AddCommand(reportDashboardCmd)
	reportCmd.AddCommand(reportExportCmd)

	rootCmd.AddCommand(reportCmd)
}
