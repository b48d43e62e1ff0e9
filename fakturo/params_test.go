package fakturo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	params := Flatten(map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": []any{10, 20},
		},
	})

	pairs := params.Pairs()
	assert.Equal(t, map[string]string{
		"a[b]":    "1",
		"a[c][0]": "10",
		"a[c][1]": "20",
	}, pairs)
}

func TestFlattenOrdering(t *testing.T) {
	params := Flatten(map[string]any{
		"zeta":  1,
		"alpha": 2,
		"mid":   map[string]any{"y": 3, "x": 4},
	})

	keys := make([]string, 0, len(params))
	for _, p := range params {
		keys = append(keys, p.Key())
	}
	// Map keys sorted at every level
	assert.Equal(t, []string{"alpha", "mid[x]", "mid[y]", "zeta"}, keys)
}

func TestFlattenOmitsNil(t *testing.T) {
	params := Flatten(map[string]any{
		"name": "ACME",
		"note": nil,
		"client": map[string]any{
			"email": nil,
		},
	})

	pairs := params.Pairs()
	assert.Equal(t, map[string]string{"name": "ACME"}, pairs)
}

func TestPruneNils(t *testing.T) {
	pruned := pruneNils(map[string]any{
		"name": "ACME",
		"note": nil,
		"client": map[string]any{
			"email": nil,
			"city":  "Berlin",
		},
		"items": []any{
			map[string]any{"name": "Widget", "unit": nil},
			nil,
		},
	}).(map[string]any)

	assert.NotContains(t, pruned, "note")
	assert.Equal(t, map[string]any{"city": "Berlin"}, pruned["client"])
	assert.Equal(t, []any{map[string]any{"name": "Widget"}}, pruned["items"])
}

func TestFlattenScalars(t *testing.T) {
	issued := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	params := Flatten(map[string]any{
		"count":     int64(7),
		"paid":      true,
		"amount":    12.5,
		"issued_on": issued,
	})

	pairs := params.Pairs()
	assert.Equal(t, "7", pairs["count"])
	assert.Equal(t, "true", pairs["paid"])
	assert.Equal(t, "12.5", pairs["amount"])
	assert.Equal(t, "2026-03-14", pairs["issued_on"])
}

func TestValuesRewritesListIndexes(t *testing.T) {
	params := Flatten(map[string]any{
		"filters": []any{"paid", "overdue"},
	})

	values := params.Values()
	require.Contains(t, values, "filters[]")
	assert.Equal(t, []string{"paid", "overdue"}, values["filters[]"])
	assert.NotContains(t, values, "filters[0]")
}

func TestValuesKeepsMapKeysLiteral(t *testing.T) {
	// A map key that merely looks like an index must not be rewritten.
	params := Flatten(map[string]any{
		"weird": map[string]any{"0": "kept"},
	})

	values := params.Values()
	assert.Equal(t, "kept", values.Get("weird[0]"))
}

func TestFileUploadParams(t *testing.T) {
	params := Flatten(map[string]any{
		"file":    "@/tmp/statement.csv",
		"api_key": "secret",
	})

	require.True(t, params.HasFileUpload())

	field, path, rest, ok := params.SplitFile()
	require.True(t, ok)
	assert.Equal(t, "file", field)
	assert.Equal(t, "/tmp/statement.csv", path)
	assert.Equal(t, map[string]string{"api_key": "secret"}, rest.Pairs())
}

func TestNoFileUpload(t *testing.T) {
	params := Flatten(map[string]any{"name": "plain"})

	assert.False(t, params.HasFileUpload())
	_, _, rest, ok := params.SplitFile()
	assert.False(t, ok)
	assert.Len(t, rest, 1)
}
