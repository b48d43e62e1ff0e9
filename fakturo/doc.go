// Package fakturo provides a client for interacting with the Fakturo
// invoicing API.
//
// Fakturo is an invoicing service exposing a REST+JSON API for clients,
// invoices, payments and products. This package implements a clean,
// idiomatic Go client for that API plus the parameter transcoding it
// requires.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the API client with method dispatch, api-key injection and
//     response classification
//   - Params: recursive flattening of nested parameter structures into
//     bracket-notation keys for query-string encoding
//   - CoerceNumbers: recursive numeric coercion of decoded responses
//   - Types: domain models (Customer, Invoice, Payment, Product) with
//     hydration from decoded JSON and serialization back to request form
//   - Operations: search, enrichment and PDF export for the CLI
//   - Errors: structured error types for better error handling
//
// # Usage
//
// Create a new client with your Fakturo URL and API key:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := fakturo.NewClient(
//		"https://app.fakturo.example",
//		"your-api-key",
//		logger,
//		fakturo.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	invoices, err := client.GetInvoices(ctx, "paid")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Wire format
//
// Requests go to https://<host>/api/v1/<resource>.json (.pdf for binary
// export) with the api_key parameter attached to every call. GET and
// DELETE parameters are encoded into the query string with nesting in
// bracket notation and list values in the empty-index form
// (items[]=a&items[]=b); POST and PUT parameters travel as a JSON body. A
// parameter value starting with "@" names a local file and switches the
// request to a multipart upload.
//
// # Error Handling
//
// The package defines several error values and types:
//
//   - ErrInvalidValue: a value outside a closed set (invoice states)
//   - ErrUnsupportedMethod: a method outside GET/POST/PUT/DELETE
//   - ErrInvalidResponse: a body that is not valid JSON
//   - ErrInvalidArgument: inconsistent caller input, detected before any
//     network call
//   - ValidationError: HTTP 422 or a structured "errors" body
//   - APIError: other error responses, with status code and message
//
// API errors include helper methods for classification:
//
//	var apiErr *fakturo.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// Handle missing resource
//	}
package fakturo
