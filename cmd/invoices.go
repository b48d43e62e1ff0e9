package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakturo/fakturo-go/fakturo"
	"github.com/fakturo/fakturo-go/filter"
)

var (
	listStates []string
	exportDir  string
	mailTo     string
	mailCc     string
	mailSubj   string
	mailMsg    string
	payAmount  float64
	payDate    string
)

// invoicesCmd represents the invoices command group
var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "List, inspect and act on invoices",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices matching the filter criteria",
	Long: `List invoices, optionally restricted server-side by state filters and
locally by a filter expression, e.g.:

  fakturo invoices list --state sent -f 'Invoice.TotalWithVAT > 100 && isOverdue()'`,
	RunE: runInvoicesList,
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single invoice with its items and payments",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesGet,
}

var invoicesPDFCmd = &cobra.Command{
	Use:   "pdf <id>...",
	Short: "Download invoice PDFs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInvoicesPDF,
}

var invoicesSendCmd = &cobra.Command{
	Use:   "send <id>",
	Short: "Email an invoice, or mark it as sent with --no-email",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesSend,
}

var invoicesPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Record a payment against an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesPay,
}

var invoicesRemindCmd = &cobra.Command{
	Use:   "remind <id>",
	Short: "Send a payment reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesRemind,
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesDelete,
}

var noEmail bool

func init() {
	rootCmd.AddCommand(invoicesCmd)

	invoicesListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	invoicesListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	invoicesListCmd.Flags().StringSliceVar(&listStates, "state", nil,
		fmt.Sprintf("server-side list filter (allowed: %s), repeatable", strings.Join(fakturo.AllowedInvoiceFilters(), ", ")))

	invoicesPDFCmd.Flags().StringVar(&exportDir, "out", "", "directory to write PDFs to (default from config)")

	invoicesSendCmd.Flags().StringVar(&mailTo, "to", "", "recipient address")
	invoicesSendCmd.Flags().StringVar(&mailCc, "cc", "", "carbon copy address")
	invoicesSendCmd.Flags().StringVar(&mailSubj, "subject", "", "mail subject")
	invoicesSendCmd.Flags().StringVar(&mailMsg, "message", "", "mail body")
	invoicesSendCmd.Flags().BoolVar(&noEmail, "no-email", false, "only flag the invoice as sent")

	invoicesPayCmd.Flags().Float64Var(&payAmount, "amount", 0, "payment amount")
	invoicesPayCmd.Flags().StringVar(&payDate, "date", "", "payment date (YYYY-MM-DD, default today)")

	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesGetCmd)
	invoicesCmd.AddCommand(invoicesPDFCmd)
	invoicesCmd.AddCommand(invoicesSendCmd)
	invoicesCmd.AddCommand(invoicesPayCmd)
	invoicesCmd.AddCommand(invoicesRemindCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}

	compiled, err := filter.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	ctx := context.Background()
	invoices, err := operations.GetAllInvoices(ctx, listStates...)
	if err != nil {
		return err
	}

	if compiled != nil {
		logger.Info().Str("filter", expr).Msg("Filtering invoices")
		invoices, err = filter.NewConcurrentEvaluator().Evaluate(ctx, compiled, invoices)
		if err != nil {
			return err
		}
	}

	if len(invoices) == 0 {
		fmt.Println("No invoices found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d invoices:\n", len(invoices))
	fmt.Println(strings.Repeat("-", 80))

	for _, inv := range invoices {
		fmt.Printf("• %s", inv.Number)
		if inv.CustomerName != "" {
			fmt.Printf(" — %s", inv.CustomerName)
		}
		fmt.Printf(" (%.2f %s)", inv.TotalWithVAT, inv.Currency)
		if inv.Overdue {
			fmt.Printf(" [OVERDUE]")
		}
		fmt.Println()
		if cfg.Output.ShowDetails {
			fmt.Printf("  State: %s\n", inv.State)
			if !inv.IssuedOn.IsZero() {
				fmt.Printf("  Issued: %s\n", inv.IssuedOn.Format("2006-01-02"))
			}
			if !inv.DueOn.IsZero() {
				fmt.Printf("  Due: %s\n", inv.DueOn.Format("2006-01-02"))
			}
		}
	}

	return nil
}

func runInvoicesGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	inv, err := client.GetInvoice(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("Invoice %s (ID %d)\n", inv.Number, inv.ID)
	if inv.Customer != nil {
		fmt.Printf("Client: %s\n", inv.Customer.Name)
	} else if inv.CustomerID != 0 {
		fmt.Printf("Client ID: %d\n", inv.CustomerID)
	}
	if !inv.State.IsZero() {
		fmt.Printf("State: %s\n", inv.State)
	}
	fmt.Printf("Total: %.2f %s (VAT %.2f)\n", inv.TotalWithVAT, inv.Currency, inv.TotalVAT)

	if len(inv.Items) > 0 {
		fmt.Printf("\nItems:\n")
		for _, item := range inv.Items {
			fmt.Printf("  • %s: %.2f × %.2f\n", item.Name, item.Quantity, item.UnitPrice)
		}
	}
	if len(inv.Payments) > 0 {
		fmt.Printf("\nPayments:\n")
		for _, payment := range inv.Payments {
			fmt.Printf("  • %.2f %s on %s\n", payment.Amount, payment.Currency,
				payment.PaidOn.Format("2006-01-02"))
		}
	}

	return nil
}

func runInvoicesPDF(cmd *cobra.Command, args []string) error {
	dir := exportDir
	if dir == "" {
		dir = cfg.Output.ExportDir
	}

	invoices := make([]fakturo.InvoiceInfo, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		invoices = append(invoices, fakturo.InvoiceInfo{ID: id})
	}

	result := operations.ExportPDFs(context.Background(), invoices, dir)

	for _, path := range result.Written {
		fmt.Printf("✓ %s\n", path)
	}
	for _, failure := range result.Failed {
		fmt.Printf("✗ %v\n", failure)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("failed to export %d of %d invoices", len(result.Failed), result.Requested)
	}
	return nil
}

func runInvoicesSend(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	if noEmail {
		if err := client.MarkSent(ctx, id); err != nil {
			return err
		}
		fmt.Printf("✓ Invoice %d marked as sent\n", id)
		return nil
	}

	if mailTo == "" {
		return fmt.Errorf("--to is required unless --no-email is set")
	}

	mail := &fakturo.Mail{
		To:      mailTo,
		Cc:      mailCc,
		Subject: mailSubj,
		Message: mailMsg,
	}
	if err := client.SendMail(ctx, id, mail); err != nil {
		return err
	}

	fmt.Printf("✓ Invoice %d sent to %s\n", id, mailTo)
	return nil
}

func runInvoicesPay(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if payAmount <= 0 {
		return fmt.Errorf("--amount must be positive")
	}

	paidOn := time.Now()
	if payDate != "" {
		paidOn, err = time.Parse("2006-01-02", payDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	payment := &fakturo.Payment{Amount: payAmount, PaidOn: paidOn}
	stored, err := client.AddPayment(context.Background(), id, payment)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Recorded payment of %.2f against invoice %d\n", stored.Amount, id)
	return nil
}

func runInvoicesRemind(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := client.SendReminder(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("✓ Reminder sent for invoice %d\n", id)
	return nil
}

func runInvoicesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := client.DeleteInvoice(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted invoice %d\n", id)
	return nil
}

// parseID parses a numeric resource id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id '%s': must be a positive integer", arg)
	}
	return id, nil
}
