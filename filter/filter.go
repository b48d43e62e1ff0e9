package filter

import (
	"strings"

	"github.com/fakturo/fakturo-go/fakturo"
)

// defaultCompiler is shared by ParseAndCreateFilter so repeated expressions
// (presets, defaults) compile once.
var defaultCompiler = NewExprCompiler(WithCache(100))

// ParseAndCreateFilter parses a filter expression and returns a filter
// function over invoices. An empty expression matches everything.
func ParseAndCreateFilter(expression string) (func(fakturo.InvoiceInfo) bool, error) {
	compiled, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	if compiled == nil {
		return func(fakturo.InvoiceInfo) bool { return true }, nil
	}
	return compiled.Evaluate, nil
}

// Parse compiles a filter expression. It returns a nil filter for an empty
// expression.
func Parse(expression string) (CompiledFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}
	return defaultCompiler.Compile(expression)
}
