package fakturo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetAPIToken retrieves the account's API token. This is the only endpoint
// authenticated with HTTP basic auth; the credentials come from
// WithBasicAuth.
func (c *Client) GetAPIToken(ctx context.Context) (string, error) {
	if c.login == "" || c.password == "" {
		return "", fmt.Errorf("%w: basic auth credentials are required for token retrieval", ErrInvalidArgument)
	}

	body, _, err := c.doRequest(ctx, http.MethodGet, "account/api_token.json", nil, true)
	if err != nil {
		return "", err
	}

	var decoded struct {
		APIToken string `json:"api_token"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if decoded.APIToken == "" {
		return "", fmt.Errorf("%w: response carries no api_token", ErrInvalidResponse)
	}
	return decoded.APIToken, nil
}

// VerifyVAT checks a VAT identifier against the registry.
func (c *Client) VerifyVAT(ctx context.Context, vatID string) (bool, error) {
	obj, err := c.callMap(ctx, http.MethodGet, "vat/verify.json", map[string]any{"vat_id": vatID})
	if err != nil {
		return false, err
	}
	return rawBool(obj["valid"]), nil
}
