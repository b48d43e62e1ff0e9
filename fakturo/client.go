package fakturo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultUserAgent = "fakturo-go"

// Client is a Fakturo API client. It holds only per-instance configuration
// set at construction time, so it is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	login      string
	password   string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Fakturo client
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("fakturo URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("fakturo API key is required")
	}

	options := clientOptions{
		timeout:   30 * time.Second,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		login:      options.login,
		password:   options.password,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// endpointURL builds the full URL for a relative resource path.
func (c *Client) endpointURL(path string) string {
	return fmt.Sprintf("%s/api/v1/%s", c.baseURL, path)
}

// call performs a request and returns the decoded response. JSON bodies are
// decoded into maps/slices/scalars and run through CoerceNumbers; paths
// naming a binary artifact (.pdf) return the raw body bytes unprocessed.
func (c *Client) call(ctx context.Context, method, path string, params map[string]any) (any, error) {
	body, _, err := c.doRequest(ctx, method, path, params, false)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".pdf") {
		return body, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return CoerceNumbers(decoded), nil
}

// callStatus performs a request and returns only the status code and
// headers. Used for mutation endpoints that return no body, where success
// is judged by status code alone.
func (c *Client) callStatus(ctx context.Context, method, path string, params map[string]any) (int, http.Header, error) {
	_, resp, err := c.doRequest(ctx, method, path, params, false)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, resp.Header, nil
}

// doRequest builds and performs a single API request. The configured API
// key is injected into the parameter structure before encoding; with
// basicAuth set the request authenticates with the client's login and
// password instead. GET and DELETE encode parameters into the query
// string, POST and PUT send a JSON body, or a multipart body when a
// parameter carries the file-upload sentinel. Nil-valued parameters are
// omitted on both paths; upload sentinels on the query path are rejected.
func (c *Client) doRequest(ctx context.Context, method, path string, params map[string]any, basicAuth bool) ([]byte, *http.Response, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	merged := make(map[string]any, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}
	if !basicAuth {
		merged["api_key"] = c.apiKey
	}

	requestURL := c.endpointURL(path)
	var body io.Reader
	contentType := ""

	switch method {
	case http.MethodGet, http.MethodDelete:
		flat := Flatten(merged)
		if flat.HasFileUpload() {
			return nil, nil, fmt.Errorf("%w: file uploads require POST or PUT", ErrInvalidArgument)
		}
		if query := flat.Values().Encode(); query != "" {
			requestURL += "?" + query
		}
	default:
		flat := Flatten(merged)
		if flat.HasFileUpload() {
			buf, mimeType, err := multipartBody(flat)
			if err != nil {
				return nil, nil, err
			}
			body = buf
			contentType = mimeType
		} else {
			encoded, err := json.Marshal(pruneNils(merged))
			if err != nil {
				return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			body = bytes.NewReader(encoded)
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if basicAuth {
		req.SetBasicAuth(c.login, c.password)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("Making Fakturo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, nil, classifyError(resp.StatusCode, respBody)
	}

	return respBody, resp, nil
}

// classifyError maps a failed response to the error taxonomy. A 422 is
// always a ValidationError, even with an unparseable body. Other statuses
// become a ValidationError when the body carries a structured "errors"
// object, otherwise an APIError with the body's message when present.
func classifyError(statusCode int, body []byte) error {
	var decoded map[string]any
	decodeErr := json.Unmarshal(body, &decoded)

	if decodeErr == nil {
		if fields := errorFields(decoded); len(fields) > 0 {
			return newFieldValidationError(statusCode, fields)
		}
	}

	if statusCode == http.StatusUnprocessableEntity {
		return &ValidationError{StatusCode: statusCode}
	}

	if decodeErr != nil {
		return &APIError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unparseable error body: %v", decodeErr),
			Body:       string(body),
		}
	}

	if msg, ok := decoded["message"].(string); ok && msg != "" {
		return &APIError{StatusCode: statusCode, Message: msg, Body: string(body)}
	}

	return &APIError{StatusCode: statusCode, Message: "invalid response", Body: string(body)}
}

// errorFields extracts a structured "errors" object into field -> messages.
func errorFields(decoded map[string]any) map[string][]string {
	raw, ok := decoded["errors"].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}

	fields := make(map[string][]string, len(raw))
	for name, messages := range raw {
		switch val := messages.(type) {
		case string:
			fields[name] = []string{val}
		case []any:
			for _, msg := range val {
				if s, ok := msg.(string); ok {
					fields[name] = append(fields[name], s)
				}
			}
		}
	}
	return fields
}

// multipartBody builds a multipart request body from flattened parameters,
// attaching the contents of the file named by the upload-sentinel value.
func multipartBody(flat Params) (*bytes.Buffer, string, error) {
	field, filePath, rest, ok := flat.SplitFile()
	if !ok {
		return nil, "", fmt.Errorf("%w: no file parameter in upload request", ErrInvalidArgument)
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, values := range rest.Values() {
		for _, value := range values {
			if err := writer.WriteField(key, value); err != nil {
				return nil, "", fmt.Errorf("failed to write form field: %w", err)
			}
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload file: %w", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile(field, file.Name())
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read upload file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}

// callMap performs a request whose success response must be a JSON object.
func (c *Client) callMap(ctx context.Context, method, path string, params map[string]any) (map[string]any, error) {
	decoded, err := c.call(ctx, method, path, params)
	if err != nil {
		return nil, err
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", ErrInvalidResponse, decoded)
	}
	return obj, nil
}

// callList performs a request whose success response must be a JSON array
// of objects.
func (c *Client) callList(ctx context.Context, method, path string, params map[string]any) ([]map[string]any, error) {
	decoded, err := c.call(ctx, method, path, params)
	if err != nil {
		return nil, err
	}
	list, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %T", ErrInvalidResponse, decoded)
	}
	return rawList(list), nil
}
