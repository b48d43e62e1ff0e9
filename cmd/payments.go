package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// paymentsCmd represents the payments command group
var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Payment helpers",
}

var paymentsProcessCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Upload a bank statement file for automatic payment matching",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaymentsProcess,
}

func init() {
	rootCmd.AddCommand(paymentsCmd)
	paymentsCmd.AddCommand(paymentsProcessCmd)
}

func runPaymentsProcess(cmd *cobra.Command, args []string) error {
	payments, err := client.ProcessPaymentFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	if len(payments) == 0 {
		fmt.Println("No payments recognized in the file.")
		return nil
	}

	fmt.Printf("Recognized %d payments:\n", len(payments))
	for _, payment := range payments {
		fmt.Printf("• %.2f %s → invoice %d\n", payment.Amount, payment.Currency, payment.InvoiceID)
	}
	return nil
}
