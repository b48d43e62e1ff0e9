package fakturo

import "strconv"

// numericFields are the response keys whose values the API serializes
// inconsistently (sometimes strings, sometimes numbers). Their values are
// coerced to float64 wherever they appear.
var numericFields = map[string]bool{
	"amount":            true,
	"price":             true,
	"total_without_vat": true,
	"total_with_vat":    true,
	"total_vat":         true,
	"total":             true,
}

// CoerceNumbers walks a decoded JSON value and converts every scalar under
// a known numeric key to float64, at any nesting depth. All other values
// and the overall structure are returned unchanged.
func CoerceNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for key, elem := range val {
			if numericFields[key] {
				val[key] = toFloat(elem)
				continue
			}
			val[key] = CoerceNumbers(elem)
		}
		return val
	case []any:
		for i, elem := range val {
			val[i] = CoerceNumbers(elem)
		}
		return val
	default:
		return v
	}
}

// toFloat converts a scalar to float64 where possible, leaving values it
// cannot interpret untouched.
func toFloat(v any) any {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return v
		}
		return f
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return v
	}
}
