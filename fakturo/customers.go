package fakturo

import (
	"context"
	"fmt"
	"net/http"
)

// GetCustomers retrieves all client records
func (c *Client) GetCustomers(ctx context.Context) ([]*Customer, error) {
	list, err := c.callList(ctx, http.MethodGet, "clients.json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}

	customers := make([]*Customer, 0, len(list))
	for _, data := range list {
		customers = append(customers, CustomerFromMap(data))
	}

	c.logger.Debug().Int("count", len(customers)).Msg("Retrieved clients from Fakturo")
	return customers, nil
}

// GetCustomer retrieves a single client record by id
func (c *Client) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	obj, err := c.callMap(ctx, http.MethodGet, fmt.Sprintf("clients/%d.json", id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}
	return CustomerFromMap(obj), nil
}

// CreateCustomer creates a client record and returns the stored version
func (c *Client) CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	obj, err := c.callMap(ctx, http.MethodPost, "clients.json", customer.Serialize(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return CustomerFromMap(obj), nil
}

// UpdateCustomer updates a client record. Success is judged by status code.
func (c *Client) UpdateCustomer(ctx context.Context, customer *Customer) error {
	path := fmt.Sprintf("clients/%d.json", customer.ID)
	status, _, err := c.callStatus(ctx, http.MethodPut, path, customer.Serialize(true))
	if err != nil {
		return fmt.Errorf("failed to update client %d: %w", customer.ID, err)
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("unexpected status %d updating client %d", status, customer.ID)
	}
	return nil
}

// DeleteCustomer deletes a client record
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	status, _, err := c.callStatus(ctx, http.MethodDelete, fmt.Sprintf("clients/%d.json", id), nil)
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("unexpected status %d deleting client %d", status, id)
	}

	c.logger.Info().Int64("client_id", id).Msg("Deleted client")
	return nil
}

// DisableCustomer disables a client record. The API answers 201 on success.
func (c *Client) DisableCustomer(ctx context.Context, id int64) error {
	path := fmt.Sprintf("clients/%d/disable.json", id)
	status, _, err := c.callStatus(ctx, http.MethodPost, path, nil)
	if err != nil {
		return fmt.Errorf("failed to disable client %d: %w", id, err)
	}
	if status != http.StatusCreated {
		return fmt.Errorf("unexpected status %d disabling client %d", status, id)
	}

	c.logger.Info().Int64("client_id", id).Msg("Disabled client")
	return nil
}

// IsEuropean reports whether a country code belongs to the EU VAT area.
func (c *Client) IsEuropean(ctx context.Context, countryCode string) (bool, error) {
	params := map[string]any{"country_code": countryCode}
	obj, err := c.callMap(ctx, http.MethodGet, "clients/is_european.json", params)
	if err != nil {
		return false, err
	}
	return rawBool(obj["european"]), nil
}

// GetCustomerInvoices retrieves all invoices issued to a client
func (c *Client) GetCustomerInvoices(ctx context.Context, id int64) ([]*Invoice, error) {
	path := fmt.Sprintf("clients/%d/invoices.json", id)
	list, err := c.callList(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices for client %d: %w", id, err)
	}

	invoices := make([]*Invoice, 0, len(list))
	for _, data := range list {
		invoices = append(invoices, InvoiceFromMap(data))
	}
	return invoices, nil
}
