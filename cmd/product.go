package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/spf13/cobra"
)

var productCmd = &cobra.Command{
	Use:     "product",
	Aliases: []string{"products"},
	Short:   "Manage the product catalog",
}

var (
	prodName  string
	prodBuy   string
	prodSell  string
	prodStock int64
	prodUnit  string
)

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		buy, err := parseMoneyFlag("buy", prodBuy)
		if err != nil {
			return err
		}
		sell, err := parseMoneyFlag("sell", prodSell)
		if err != nil {
			return err
		}
		p, err := newClient().CreateProduct(context.Background(), ledger.ProductRequest{
			Name:      prodName,
			BuyPrice:  buy,
			SellPrice: sell,
			Stock:     prodStock,
			Unit:      prodUnit,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Product created: %s (%s) buy %s sell %s stock %d %s\n",
			p.ID, p.Name, p.BuyPrice, p.SellPrice, p.Stock, p.Unit)
		return nil
	},
}

var prodSearch string

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := newClient().ListProducts(context.Background(), prodSearch)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products found.")
			return nil
		}

		fmt.Printf("%-36s %-26s %10s %10s %8s %-8s\n", "ID", "NAME", "BUY", "SELL", "STOCK", "UNIT")
		fmt.Printf("%-36s %-26s %10s %10s %8s %-8s\n", "----", "----", "---", "----", "-----", "----")
		for _, p := range products {
			fmt.Printf("%-36s %-26s %10s %10s %8d %-8s\n",
				p.ID, truncate(p.Name, 26), p.BuyPrice, p.SellPrice, p.Stock, p.Unit)
		}
		return nil
	},
}

var productGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newClient().GetProduct(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ID:         %s\n", p.ID)
		fmt.Printf("Name:       %s\n", p.Name)
		fmt.Printf("Buy price:  %s\n", amount(p.BuyPrice))
		fmt.Printf("Sell price: %s\n", amount(p.SellPrice))
		fmt.Printf("Margin:     %.1f%%\n", p.MarginPercent())
		fmt.Printf("Stock:      %d %s\n", p.Stock, p.Unit)
		fmt.Printf("Value:      %s\n", amount(p.Value()))
		fmt.Printf("Created:    %s\n", p.CreatedAt)
		return nil
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Edit a product; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		ctx := context.Background()
		cur, err := c.GetProduct(ctx, args[0])
		if err != nil {
			return err
		}
		req := ledger.ProductRequest{
			Name:      cur.Name,
			BuyPrice:  cur.BuyPrice,
			SellPrice: cur.SellPrice,
			Stock:     cur.Stock,
			Unit:      cur.Unit,
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			req.Name = prodName
		}
		if flags.Changed("buy") {
			if req.BuyPrice, err = parseMoneyFlag("buy", prodBuy); err != nil {
				return err
			}
		}
		if flags.Changed("sell") {
			if req.SellPrice, err = parseMoneyFlag("sell", prodSell); err != nil {
				return err
			}
		}
		if flags.Changed("stock") {
			req.Stock = prodStock
		}
		if flags.Changed("unit") {
			req.Unit = prodUnit
		}
		p, err := c.UpdateProduct(ctx, args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("Product updated: %s (%s) buy %s sell %s stock %d %s\n",
			p.ID, p.Name, p.BuyPrice, p.SellPrice, p.Stock, p.Unit)
		return nil
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a product (past sales and purchases are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteProduct(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Product deleted: %s\n", args[0])
		return nil
	},
}

var productImportCmd = &cobra.Command{
	Use:   "import [file.xlsx]",
	Short: "Import products from the first sheet of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		products, err := newClient().ImportProducts(context.Background(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d products.\n", len(products))
		return nil
	},
}

func productFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&prodName, "name", "", "Product name")
	cmd.Flags().StringVar(&prodBuy, "buy", "0", "Buy price")
	cmd.Flags().StringVar(&prodSell, "sell", "0", "Sell price")
	cmd.Flags().Int64Var(&prodStock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&prodUnit, "unit", "piece", "Unit of measure")
}

func init() {
	productFlags(productCreateCmd)
	productCreateCmd.MarkFlagRequired("name")
	productFlags(productUpdateCmd)
	productListCmd.Flags().StringVar(&prodSearch, "search", "", "Filter by name")

	productCmd.AddCommand(productCreateCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productGetCmd)
	productCmd.AddCommand(productUpdateCmd)
	productCmd.AddCommand(productDeleteCmd)
	productCmd.AddCommand(productImportCmd)

	rootCmd.AddCommand(productCmd)
}
