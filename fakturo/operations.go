package fakturo

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// InvoiceInfo is the flattened invoice view used for filtering and display.
type InvoiceInfo struct {
	ID           int64
	IID          int64
	Number       string
	CustomerID   int64
	CustomerName string
	State        string
	IssuedOn     time.Time
	DueOn        time.Time
	Currency     string

	TotalWithoutVAT float64
	TotalVAT        float64
	TotalWithVAT    float64

	Paid         bool
	Overdue      bool
	ItemCount    int
	PaymentCount int
}

// NewInvoiceInfo flattens an invoice into its filter/display view.
func NewInvoiceInfo(inv *Invoice) InvoiceInfo {
	info := InvoiceInfo{
		ID:              inv.ID,
		IID:             inv.IID,
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		State:           inv.State.String(),
		IssuedOn:        inv.IssuedOn,
		DueOn:           inv.DueOn,
		Currency:        inv.Currency,
		TotalWithoutVAT: inv.TotalWithoutVAT,
		TotalVAT:        inv.TotalVAT,
		TotalWithVAT:    inv.TotalWithVAT,
		Paid:            inv.IsPaid(),
		Overdue:         inv.IsOverdue(),
		ItemCount:       len(inv.Items),
		PaymentCount:    len(inv.Payments),
	}
	if inv.Customer != nil {
		info.CustomerName = inv.Customer.Name
	}
	return info
}

// Operations handles invoice search and export operations for the CLI.
type Operations struct {
	client *Client
	logger zerolog.Logger
}

// NewOperations creates a new Operations instance
func NewOperations(client *Client, logger zerolog.Logger) *Operations {
	return &Operations{
		client: client,
		logger: logger,
	}
}

// GetAllInvoices returns all invoices matching the list filters, enriched
// with customer names.
func (o *Operations) GetAllInvoices(ctx context.Context, filters ...string) ([]InvoiceInfo, error) {
	invoices, err := o.client.GetInvoices(ctx, filters...)
	if err != nil {
		return nil, err
	}

	if err := o.client.EnrichWithCustomers(ctx, invoices); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to enrich invoices with customer data")
	}

	results := make([]InvoiceInfo, 0, len(invoices))
	for _, inv := range invoices {
		results = append(results, NewInvoiceInfo(inv))
	}
	return results, nil
}

// SearchInvoices returns the invoices matching both the server-side list
// filters and the local filter function.
func (o *Operations) SearchInvoices(ctx context.Context, filterFunc func(InvoiceInfo) bool, filters ...string) ([]InvoiceInfo, error) {
	invoices, err := o.GetAllInvoices(ctx, filters...)
	if err != nil {
		return nil, err
	}

	var matched []InvoiceInfo
	for _, info := range invoices {
		if filterFunc == nil || filterFunc(info) {
			matched = append(matched, info)
		}
	}

	o.logger.Debug().Int("total", len(invoices)).Int("matched", len(matched)).
		Msg("Filtered invoices")
	return matched, nil
}

// ExportPDFs downloads the PDFs of the given invoices into dir.
func (o *Operations) ExportPDFs(ctx context.Context, invoices []InvoiceInfo, dir string) BatchExportResult {
	return o.client.BatchDownloadPDFs(ctx, invoices, dir)
}
