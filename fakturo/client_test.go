package fakturo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:3000",
			apiKey:  "test-key",
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "URL is required",
		},
		{
			name:    "missing API key",
			baseURL: "http://localhost:3000",
			apiKey:  "",
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.apiKey, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.baseURL, client.baseURL)
			assert.Equal(t, tt.apiKey, client.apiKey)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:3000", "test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("http://localhost:3000", "test-key", logger, WithUserAgent("custom/1.0"))
		require.NoError(t, err)
		assert.Equal(t, "custom/1.0", client.userAgent)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:3000", "test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("http://localhost:3000/", "test-key", logger)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", client.baseURL)
	})
}

func TestAPIKeyInjection(t *testing.T) {
	t.Run("GET puts api_key in the query string", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/clients.json", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			w.Write([]byte(`[]`))
		})

		_, err := client.GetCustomers(context.Background())
		require.NoError(t, err)
	})

	t.Run("POST puts api_key in the JSON body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Empty(t, r.URL.Query().Get("api_key"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "test-key", body["api_key"])
			assert.Contains(t, body, "client")

			w.Write([]byte(`{"id": 5, "name": "ACME"}`))
		})

		created, err := client.CreateCustomer(context.Background(), &Customer{Name: "ACME"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), created.ID)
	})
}

func TestJSONBodyOmitsNullFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		nested := body["client"].(map[string]any)
		assert.Equal(t, "ACME", nested["name"])
		// Unset fields are omitted, never sent as explicit nulls
		assert.NotContains(t, nested, "email")
		assert.NotContains(t, nested, "vat_id")
		for key, value := range nested {
			assert.NotNil(t, value, "field %q must be omitted, not null", key)
		}

		w.Write([]byte(`{"id": 5, "name": "ACME"}`))
	})

	_, err := client.CreateCustomer(context.Background(), &Customer{Name: "ACME"})
	require.NoError(t, err)
}

func TestUploadSentinelRejectedOnQueryPath(t *testing.T) {
	client, err := NewClient("http://localhost:3000", "test-key", zerolog.Nop())
	require.NoError(t, err)

	params := map[string]any{"file": "@/tmp/statement.csv"}
	_, _, err = client.doRequest(context.Background(), http.MethodGet, "payments.json", params, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestUnsupportedMethod(t *testing.T) {
	client, err := NewClient("http://localhost:3000", "test-key", zerolog.Nop())
	require.NoError(t, err)

	_, _, err = client.doRequest(context.Background(), "PATCH", "clients.json", nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedMethod))
}

func TestErrorClassification(t *testing.T) {
	t.Run("422 with unparseable body is a validation error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`this is not json`))
		})

		_, err := client.GetCustomer(context.Background(), 1)
		require.Error(t, err)

		var valErr *ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Equal(t, 422, valErr.StatusCode)
	})

	t.Run("structured errors object becomes a validation error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errors": {"name": ["can't be blank"], "email": ["is invalid", "is taken"]}}`))
		})

		_, err := client.GetCustomer(context.Background(), 1)
		require.Error(t, err)

		var valErr *ValidationError
		require.True(t, errors.As(err, &valErr))
		// Fields sorted, messages joined, one line per field
		assert.Equal(t, "email: is invalid, is taken\nname: can't be blank", valErr.Message)
		assert.Equal(t, []string{"can't be blank"}, valErr.Fields["name"])
	})

	t.Run("message body becomes an API error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "record not found"}`))
		})

		_, err := client.GetCustomer(context.Background(), 999)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsNotFound())
		assert.Equal(t, "record not found", apiErr.Message)
	})

	t.Run("unparseable non-422 body becomes an API error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`<html>boom</html>`))
		})

		_, err := client.GetCustomer(context.Background(), 1)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 500, apiErr.StatusCode)
		assert.Contains(t, apiErr.Message, "unparseable error body")
	})

	t.Run("401 is unauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "bad api key"}`))
		})

		_, err := client.GetCustomer(context.Background(), 1)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsUnauthorized())
	})
}

func TestInvalidSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	_, err := client.GetCustomer(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

func TestDownloadPDF(t *testing.T) {
	raw := []byte("%PDF-1.4 fake body")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invoices/42.pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(raw)
	})

	pdf, err := client.DownloadPDF(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, raw, pdf)
}

func TestGetAPIToken(t *testing.T) {
	t.Run("requires basic auth credentials", func(t *testing.T) {
		client, err := NewClient("http://localhost:3000", "test-key", zerolog.Nop())
		require.NoError(t, err)

		_, err = client.GetAPIToken(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("authenticates with basic auth, not api key", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			login, password, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "user@example.com", login)
			assert.Equal(t, "hunter2", password)
			assert.Empty(t, r.URL.Query().Get("api_key"))

			w.Write([]byte(`{"api_token": "fresh-token"}`))
		}, WithBasicAuth("user@example.com", "hunter2"))

		token, err := client.GetAPIToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", token)
	})
}

func TestNumericCoercionOnResponses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 7, "number": "2026-0007", "total_with_vat": "121.00", "total_vat": 21, "items": [{"name": "Widget", "price": "100.00"}]}`))
	})

	inv, err := client.GetInvoice(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), inv.ID)
	assert.Equal(t, 121.0, inv.TotalWithVAT)
	assert.Equal(t, 21.0, inv.TotalVAT)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 100.0, inv.Items[0].UnitPrice)
}
