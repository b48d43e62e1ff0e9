package fakturo

import (
	"context"
	"fmt"
	"net/http"
)

// ProcessPaymentFile uploads a bank statement file for automatic payment
// matching and returns the payments the server recognized. The upload is
// driven by the @-sentinel: the value names a local file whose contents are
// attached as a multipart part.
func (c *Client) ProcessPaymentFile(ctx context.Context, filePath string) ([]*Payment, error) {
	params := map[string]any{"file": string(uploadSentinel) + filePath}

	obj, err := c.callMap(ctx, http.MethodPost, "payments/process_file.json", params)
	if err != nil {
		return nil, fmt.Errorf("failed to process payment file: %w", err)
	}

	var payments []*Payment
	for _, data := range rawList(obj["payments"]) {
		payments = append(payments, PaymentFromMap(data))
	}

	c.logger.Info().Int("count", len(payments)).Str("file", filePath).
		Msg("Processed payment file")
	return payments, nil
}
