package fakturo

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInvoicesFilters(t *testing.T) {
	t.Run("valid filters are sent as an array", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/invoices.json", r.URL.Path)
			assert.Equal(t, []string{"paid", "overdue"}, r.URL.Query()["filters[]"])
			w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
		})

		invoices, err := client.GetInvoices(context.Background(), "paid", "overdue")
		require.NoError(t, err)
		assert.Len(t, invoices, 2)
	})

	t.Run("invalid filter fails before any request", func(t *testing.T) {
		requested := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requested = true
		})

		_, err := client.GetInvoices(context.Background(), "bogus")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.False(t, requested)
	})
}

func TestInvoiceValidate(t *testing.T) {
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		invoice Invoice
		wantErr bool
	}{
		{"no delivery period", Invoice{}, false},
		{"full delivery period", Invoice{DeliveryFrom: day, DeliveryTo: day.AddDate(0, 1, 0)}, false},
		{"only delivery_from", Invoice{DeliveryFrom: day}, true},
		{"only delivery_to", Invoice{DeliveryTo: day}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.invoice.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreateInvoiceValidatesFirst(t *testing.T) {
	requested := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	_, err := client.CreateInvoice(context.Background(), &Invoice{
		DeliveryFrom: time.Now(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, requested)
}

func TestUpdateInvoiceStatus(t *testing.T) {
	t.Run("204 succeeds", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/v1/invoices/9.json", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		err := client.UpdateInvoice(context.Background(), &Invoice{ID: 9, Note: "updated"})
		require.NoError(t, err)
	})

	t.Run("unexpected status fails", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		err := client.UpdateInvoice(context.Background(), &Invoice{ID: 9})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 200")
	})
}

func TestMarkSent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/invoices/3/sent", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.MarkSent(context.Background(), 3))
}

func TestGetInvoiceByNumber(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invoices/by_iid/17.json", r.URL.Path)
		w.Write([]byte(`{"id": 201, "iid": 17}`))
	})

	inv, err := client.GetInvoiceByNumber(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, int64(201), inv.ID)
	assert.Equal(t, int64(17), inv.IID)
}

func TestAddPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invoices/8/payments.json", r.URL.Path)
		w.Write([]byte(`{"id": 33, "invoice_id": 8, "amount": "50.00"}`))
	})

	stored, err := client.AddPayment(context.Background(), 8, &Payment{Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(33), stored.ID)
	assert.Equal(t, 50.0, stored.Amount)
}

func TestDisableCustomerStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/clients/4/disable.json", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, client.DisableCustomer(context.Background(), 4))
}

func TestIsEuropean(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/clients/is_european.json", r.URL.Path)
		assert.Equal(t, "DE", r.URL.Query().Get("country_code"))
		w.Write([]byte(`{"european": true}`))
	})

	european, err := client.IsEuropean(context.Background(), "DE")
	require.NoError(t, err)
	assert.True(t, european)
}
