package fakturo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Concurrency limits for fan-out operations.
const (
	DefaultConcurrency = 10
	exportConcurrency  = 5
)

// EnrichWithCustomers fills in the full customer record on invoices that
// only reference their customer by id, fetching each referenced customer
// once with bounded concurrency.
func (c *Client) EnrichWithCustomers(ctx context.Context, invoices []*Invoice) error {
	ids := make(map[int64]bool)
	for _, inv := range invoices {
		if inv.Customer == nil && inv.CustomerID != 0 {
			ids[inv.CustomerID] = true
		}
	}
	if len(ids) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)

	var mu sync.Mutex
	customers := make(map[int64]*Customer, len(ids))

	for id := range ids {
		id := id
		g.Go(func() error {
			customer, err := c.GetCustomer(ctx, id)
			if err != nil {
				c.logger.Warn().Err(err).Int64("client_id", id).
					Msg("Failed to get client details")
				// Continue enriching the others
				return nil
			}

			mu.Lock()
			customers[id] = customer
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, inv := range invoices {
		if inv.Customer == nil {
			inv.Customer = customers[inv.CustomerID]
		}
	}
	return nil
}

// BatchExportResult contains the results of a batch PDF export
type BatchExportResult struct {
	Requested int
	Written   []string
	Failed    []ExportError
}

// ExportError contains information about a failed PDF export
type ExportError struct {
	InvoiceID int64
	Number    string
	Err       error
}

// Error implements the error interface
func (e ExportError) Error() string {
	return fmt.Sprintf("failed to export invoice %s (ID: %d): %v", e.Number, e.InvoiceID, e.Err)
}

// BatchDownloadPDFs downloads invoice PDFs into dir concurrently,
// aggregating per-invoice failures instead of stopping at the first one.
func (c *Client) BatchDownloadPDFs(ctx context.Context, invoices []InvoiceInfo, dir string) BatchExportResult {
	result := BatchExportResult{
		Requested: len(invoices),
	}
	if len(invoices) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)

	writtenChan := make(chan string, len(invoices))
	errorChan := make(chan ExportError, len(invoices))

	for _, inv := range invoices {
		inv := inv
		g.Go(func() error {
			pdf, err := c.DownloadPDF(ctx, inv.ID)
			if err == nil {
				name := fmt.Sprintf("invoice-%d.pdf", inv.ID)
				if inv.Number != "" {
					name = fmt.Sprintf("invoice-%s.pdf", sanitizeFileName(inv.Number))
				}
				path := filepath.Join(dir, name)
				if writeErr := os.WriteFile(path, pdf, 0o644); writeErr == nil {
					writtenChan <- path
					return nil
				} else {
					err = writeErr
				}
			}

			errorChan <- ExportError{
				InvoiceID: inv.ID,
				Number:    inv.Number,
				Err:       err,
			}
			return nil // Don't stop on individual errors
		})
	}

	g.Wait()
	close(writtenChan)
	close(errorChan)

	for path := range writtenChan {
		result.Written = append(result.Written, path)
	}
	for err := range errorChan {
		result.Failed = append(result.Failed, err)
	}

	return result
}

// sanitizeFileName keeps invoice numbers like "2026/08/14" from escaping
// the export directory.
func sanitizeFileName(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch r {
		case '/', '\\', ':':
			out[i] = '-'
		}
	}
	return string(out)
}
