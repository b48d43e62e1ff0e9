package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// clientsCmd represents the clients command group
var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List and manage client records",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE:  runClientsList,
}

var clientsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsGet,
}

var clientsDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsDisable,
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsDelete,
}

func init() {
	rootCmd.AddCommand(clientsCmd)

	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsGetCmd)
	clientsCmd.AddCommand(clientsDisableCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
}

func runClientsList(cmd *cobra.Command, args []string) error {
	customers, err := client.GetCustomers(context.Background())
	if err != nil {
		return err
	}

	if len(customers) == 0 {
		fmt.Println("No clients found.")
		return nil
	}

	fmt.Printf("\nFound %d clients:\n", len(customers))
	fmt.Println(strings.Repeat("-", 80))

	for _, customer := range customers {
		fmt.Printf("• %s (ID %d)", customer.Name, customer.ID)
		if customer.Email != "" {
			fmt.Printf(" <%s>", customer.Email)
		}
		fmt.Println()
		if cfg.Output.ShowDetails && customer.VATID != "" {
			fmt.Printf("  VAT ID: %s\n", customer.VATID)
		}
	}

	return nil
}

func runClientsGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	customer, err := client.GetCustomer(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("Client %s (ID %d)\n", customer.Name, customer.ID)
	if customer.Email != "" {
		fmt.Printf("Email: %s\n", customer.Email)
	}
	if customer.Phone != "" {
		fmt.Printf("Phone: %s\n", customer.Phone)
	}
	if customer.Street != "" || customer.City != "" {
		fmt.Printf("Address: %s, %s %s, %s\n", customer.Street, customer.Zip, customer.City, customer.CountryCode)
	}
	if customer.VATID != "" {
		fmt.Printf("VAT ID: %s\n", customer.VATID)
	}

	return nil
}

func runClientsDisable(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := client.DisableCustomer(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("✓ Disabled client %d\n", id)
	return nil
}

func runClientsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := client.DeleteCustomer(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted client %d\n", id)
	return nil
}
