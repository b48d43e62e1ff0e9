package filter

import (
	"context"

	"github.com/fakturo/fakturo-go/fakturo"
)

// Filter defines the basic interface for invoice filters
type Filter interface {
	// Evaluate checks if an invoice matches the filter criteria
	Evaluate(invoice fakturo.InvoiceInfo) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string

	// IsThreadSafe indicates if the filter can be evaluated concurrently
	IsThreadSafe() bool
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator evaluates filters against invoices
type Evaluator interface {
	// Evaluate evaluates a filter against all invoices
	Evaluate(ctx context.Context, filter CompiledFilter, invoices []fakturo.InvoiceInfo) ([]fakturo.InvoiceInfo, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
