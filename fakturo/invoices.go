package fakturo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// allowedInvoiceFilters is the closed set of list filters the API accepts.
var allowedInvoiceFilters = map[string]bool{
	"created": true,
	"sent":    true,
	"paid":    true,
	"overdue": true,
	"unpaid":  true,
}

// AllowedInvoiceFilters returns the valid values for GetInvoices filters.
func AllowedInvoiceFilters() []string {
	return []string{"created", "sent", "paid", "overdue", "unpaid"}
}

// GetInvoices retrieves invoices, optionally restricted by list filters.
// Filters outside the allowed set fail with ErrInvalidArgument before any
// request is made.
func (c *Client) GetInvoices(ctx context.Context, filters ...string) ([]*Invoice, error) {
	var params map[string]any
	if len(filters) > 0 {
		values := make([]any, 0, len(filters))
		for _, f := range filters {
			if !allowedInvoiceFilters[f] {
				return nil, fmt.Errorf("%w: invoice filter %q (allowed: %s)",
					ErrInvalidArgument, f, strings.Join(AllowedInvoiceFilters(), ", "))
			}
			values = append(values, f)
		}
		params = map[string]any{"filters": values}
	}

	list, err := c.callList(ctx, http.MethodGet, "invoices.json", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}

	invoices := make([]*Invoice, 0, len(list))
	for _, data := range list {
		invoices = append(invoices, InvoiceFromMap(data))
	}

	c.logger.Debug().Int("count", len(invoices)).Strs("filters", filters).
		Msg("Retrieved invoices from Fakturo")
	return invoices, nil
}

// GetInvoice retrieves a single invoice by id
func (c *Client) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	obj, err := c.callMap(ctx, http.MethodGet, fmt.Sprintf("invoices/%d.json", id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %d: %w", id, err)
	}
	return InvoiceFromMap(obj), nil
}

// GetInvoiceByNumber retrieves an invoice by its sequential public number
func (c *Client) GetInvoiceByNumber(ctx context.Context, iid int64) (*Invoice, error) {
	path := fmt.Sprintf("invoices/by_iid/%d.json", iid)
	obj, err := c.callMap(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice by iid %d: %w", iid, err)
	}
	return InvoiceFromMap(obj), nil
}

// CreateInvoice creates an invoice and returns the stored version with
// server-assigned fields populated.
func (c *Client) CreateInvoice(ctx context.Context, invoice *Invoice) (*Invoice, error) {
	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	obj, err := c.callMap(ctx, http.MethodPost, "invoices.json", invoice.Serialize(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	created := InvoiceFromMap(obj)
	c.logger.Info().Int64("invoice_id", created.ID).Str("number", created.Number).
		Msg("Created invoice")
	return created, nil
}

// UpdateInvoice updates an invoice. Success is judged by status code.
func (c *Client) UpdateInvoice(ctx context.Context, invoice *Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	path := fmt.Sprintf("invoices/%d.json", invoice.ID)
	status, _, err := c.callStatus(ctx, http.MethodPut, path, invoice.Serialize(true))
	if err != nil {
		return fmt.Errorf("failed to update invoice %d: %w", invoice.ID, err)
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("unexpected status %d updating invoice %d", status, invoice.ID)
	}
	return nil
}

// DeleteInvoice deletes an invoice
func (c *Client) DeleteInvoice(ctx context.Context, id int64) error {
	status, _, err := c.callStatus(ctx, http.MethodDelete, fmt.Sprintf("invoices/%d.json", id), nil)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %d: %w", id, err)
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("unexpected status %d deleting invoice %d", status, id)
	}

	c.logger.Info().Int64("invoice_id", id).Msg("Deleted invoice")
	return nil
}

// DownloadPDF retrieves the rendered PDF of an invoice as raw bytes.
func (c *Client) DownloadPDF(ctx context.Context, id int64) ([]byte, error) {
	decoded, err := c.call(ctx, http.MethodGet, fmt.Sprintf("invoices/%d.pdf", id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download PDF for invoice %d: %w", id, err)
	}
	pdf, ok := decoded.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: expected raw PDF body", ErrInvalidResponse)
	}
	return pdf, nil
}

// CreateCreditNote issues a credit note against an invoice.
func (c *Client) CreateCreditNote(ctx context.Context, invoiceID int64, reason string) (*Invoice, error) {
	path := fmt.Sprintf("invoices/%d/credit_notes.json", invoiceID)
	params := map[string]any{"credit_note": map[string]any{"reason": emptyAsNil(reason)}}

	obj, err := c.callMap(ctx, http.MethodPost, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create credit note for invoice %d: %w", invoiceID, err)
	}
	return InvoiceFromMap(obj), nil
}

// SendMail emails an invoice to the given recipient.
func (c *Client) SendMail(ctx context.Context, invoiceID int64, mail *Mail) error {
	path := fmt.Sprintf("invoices/%d/mails.json", invoiceID)
	if _, _, err := c.callStatus(ctx, http.MethodPost, path, mail.Serialize(true)); err != nil {
		return fmt.Errorf("failed to send invoice %d: %w", invoiceID, err)
	}

	c.logger.Info().Int64("invoice_id", invoiceID).Str("to", mail.To).Msg("Sent invoice mail")
	return nil
}

// MarkSent flags an invoice as sent without emailing it.
func (c *Client) MarkSent(ctx context.Context, invoiceID int64) error {
	path := fmt.Sprintf("invoices/%d/sent", invoiceID)
	if _, _, err := c.callStatus(ctx, http.MethodPost, path, nil); err != nil {
		return fmt.Errorf("failed to mark invoice %d as sent: %w", invoiceID, err)
	}
	return nil
}

// AddPayment records a payment against an invoice and returns the stored
// version.
func (c *Client) AddPayment(ctx context.Context, invoiceID int64, payment *Payment) (*Payment, error) {
	path := fmt.Sprintf("invoices/%d/payments.json", invoiceID)
	obj, err := c.callMap(ctx, http.MethodPost, path, payment.Serialize(true))
	if err != nil {
		return nil, fmt.Errorf("failed to add payment to invoice %d: %w", invoiceID, err)
	}

	stored := PaymentFromMap(obj)
	c.logger.Info().Int64("invoice_id", invoiceID).Float64("amount", stored.Amount).
		Msg("Recorded payment")
	return stored, nil
}

// SendReminder sends a payment reminder for an overdue invoice.
func (c *Client) SendReminder(ctx context.Context, invoiceID int64) error {
	path := fmt.Sprintf("invoices/%d/reminders", invoiceID)
	if _, _, err := c.callStatus(ctx, http.MethodPost, path, nil); err != nil {
		return fmt.Errorf("failed to send reminder for invoice %d: %w", invoiceID, err)
	}
	return nil
}

// VATRequired reports whether the account must charge VAT on new invoices.
func (c *Client) VATRequired(ctx context.Context) (bool, error) {
	obj, err := c.callMap(ctx, http.MethodGet, "invoices/vat_required.json", nil)
	if err != nil {
		return false, err
	}
	return rawBool(obj["vat_required"]), nil
}
