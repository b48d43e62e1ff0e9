package filter

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakturo/fakturo-go/fakturo"
)

func makeInvoices(n int) []fakturo.InvoiceInfo {
	invoices := make([]fakturo.InvoiceInfo, 0, n)
	for i := 1; i <= n; i++ {
		invoices = append(invoices, fakturo.InvoiceInfo{
			ID:           int64(i),
			Number:       fmt.Sprintf("2026-%04d", i),
			TotalWithVAT: float64(i * 10),
		})
	}
	return invoices
}

func TestEvaluateSequential(t *testing.T) {
	compiled, err := Parse("Invoice.TotalWithVAT > 50")
	require.NoError(t, err)

	evaluator := NewConcurrentEvaluator()
	matches, err := evaluator.Evaluate(context.Background(), compiled, makeInvoices(10))
	require.NoError(t, err)

	require.Len(t, matches, 5)
	assert.Equal(t, int64(6), matches[0].ID)
}

func TestEvaluateConcurrentPreservesOrder(t *testing.T) {
	compiled, err := Parse("Invoice.ID % 2 == 0")
	require.NoError(t, err)

	// Small batch size forces the concurrent path
	evaluator := NewConcurrentEvaluator(WithWorkers(4), WithBatchSize(10))
	matches, err := evaluator.Evaluate(context.Background(), compiled, makeInvoices(500))
	require.NoError(t, err)

	require.Len(t, matches, 250)
	for i, match := range matches {
		assert.Equal(t, int64((i+1)*2), match.ID)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	compiled, err := Parse("isPaid()")
	require.NoError(t, err)

	matches, err := NewConcurrentEvaluator().Evaluate(context.Background(), compiled, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
