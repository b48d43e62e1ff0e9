package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// productsCmd represents the products command group
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List and inspect products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE:  runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

func init() {
	rootCmd.AddCommand(productsCmd)

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	products, err := client.GetProducts(context.Background())
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}

	fmt.Printf("\nFound %d products:\n", len(products))
	fmt.Println(strings.Repeat("-", 80))

	for _, product := range products {
		fmt.Printf("• %s (ID %d): %.2f %s\n", product.Name, product.ID, product.Price, product.Currency)
	}

	return nil
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	product, err := client.GetProduct(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("Product %s (ID %d)\n", product.Name, product.ID)
	fmt.Printf("Price: %.2f %s\n", product.Price, product.Currency)
	if product.VATRate != 0 {
		fmt.Printf("VAT rate: %.0f%%\n", product.VATRate)
	}
	if product.Code != "" {
		fmt.Printf("Code: %s\n", product.Code)
	}
	if product.Stock != 0 {
		fmt.Printf("Stock: %.2f %s\n", product.Stock, product.Unit)
	}

	return nil
}
