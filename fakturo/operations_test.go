package fakturo

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchInvoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/invoices.json":
			w.Write([]byte(`[
				{"id": 1, "client_id": 7, "total_with_vat": "50.00"},
				{"id": 2, "client_id": 7, "total_with_vat": "150.00"}
			]`))
		case "/api/v1/clients/7.json":
			w.Write([]byte(`{"id": 7, "name": "ACME"}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	})
	operations := NewOperations(client, zerolog.Nop())

	matched, err := operations.SearchInvoices(context.Background(), func(info InvoiceInfo) bool {
		return info.TotalWithVAT > 100
	})
	require.NoError(t, err)

	require.Len(t, matched, 1)
	assert.Equal(t, int64(2), matched[0].ID)
	assert.Equal(t, "ACME", matched[0].CustomerName)
}

func TestSearchInvoicesNilFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	})
	operations := NewOperations(client, zerolog.Nop())

	matched, err := operations.SearchInvoices(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, matched, 2)
}
