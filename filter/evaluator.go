package filter

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fakturo/fakturo-go/fakturo"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of concurrent evaluation goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the chunk size for concurrent evaluation
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates filters over invoice lists, chunking large
// lists across goroutines.
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate evaluates a single filter against all invoices
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, invoices []fakturo.InvoiceInfo) ([]fakturo.InvoiceInfo, error) {
	if len(invoices) == 0 {
		return []fakturo.InvoiceInfo{}, nil
	}

	// Small lists and non-thread-safe filters are evaluated sequentially
	if len(invoices) < e.batchSize || !filter.IsThreadSafe() {
		return evaluateSequential(filter, invoices), nil
	}

	return e.evaluateConcurrent(ctx, filter, invoices)
}

// evaluateSequential evaluates a filter against all invoices in order
func evaluateSequential(filter CompiledFilter, invoices []fakturo.InvoiceInfo) []fakturo.InvoiceInfo {
	matches := make([]fakturo.InvoiceInfo, 0, len(invoices)/10)
	for _, invoice := range invoices {
		if filter.Evaluate(invoice) {
			matches = append(matches, invoice)
		}
	}
	return matches
}

// evaluateConcurrent chunks the invoice list and evaluates chunks in
// parallel, preserving input order in the combined result.
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, invoices []fakturo.InvoiceInfo) ([]fakturo.InvoiceInfo, error) {
	chunkSize := max(len(invoices)/e.workerCount, e.batchSize)
	chunkCount := (len(invoices) + chunkSize - 1) / chunkSize

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	var mu sync.Mutex
	chunkMatches := make([][]fakturo.InvoiceInfo, chunkCount)

	for index := 0; index*chunkSize < len(invoices); index++ {
		start := index * chunkSize
		end := min(start+chunkSize, len(invoices))
		chunk := invoices[start:end]
		index := index

		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			matches := evaluateSequential(filter, chunk)

			mu.Lock()
			chunkMatches[index] = matches
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, matches := range chunkMatches {
		total += len(matches)
	}

	allMatches := make([]fakturo.InvoiceInfo, 0, total)
	for _, matches := range chunkMatches {
		allMatches = append(allMatches, matches...)
	}

	return allMatches, nil
}
